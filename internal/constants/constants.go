package constants

// 领取单状态常量
const (
	ClaimStatusPending    = "pending"
	ClaimStatusApproved   = "approved"
	ClaimStatusProcessing = "processing"
	ClaimStatusShipped    = "shipped"
	ClaimStatusDelivered  = "delivered"
	ClaimStatusRejected   = "rejected"
)

// ClaimStatuses 全部合法状态
var ClaimStatuses = []string{
	ClaimStatusPending,
	ClaimStatusApproved,
	ClaimStatusProcessing,
	ClaimStatusShipped,
	ClaimStatusDelivered,
	ClaimStatusRejected,
}

// 内置奖品分类；分类是开放标签，管理员可新增
const (
	CategoryAccessory = "Accessory"
	CategoryCar       = "Car"
	CategoryEwallet   = "E-wallet"
	CategoryGadget    = "Gadget"
	CategoryMerch     = "Merch"
)

// Categories 内置分类（用于大小写归一与演示数据）
var Categories = []string{
	CategoryAccessory,
	CategoryCar,
	CategoryEwallet,
	CategoryGadget,
	CategoryMerch,
}

// 奖品稀有度分层常量
const (
	TierBlackDiamond = "black-diamond"
	TierDiamond      = "diamond"
	TierGold         = "gold"
	TierSilver       = "silver"
	TierBronze       = "bronze"
)

// 库存状态常量
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// 库存常量
const (
	// DefaultLowStockThreshold 低库存默认阈值
	DefaultLowStockThreshold = 5
	// MaxGalleryImages 每个款式选项的画册图片上限
	MaxGalleryImages = 4
)

// 领取单编号常量
const (
	// ClaimIDPrefix 对外领取单编号前缀
	ClaimIDPrefix = "CLM"
	// ClaimIDTokenLength 编号随机段长度
	ClaimIDTokenLength = 9
	// ClaimIDAlphabet 随机段字符集（去除易混淆字符）
	ClaimIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

// 异步任务类型常量
const (
	TaskClaimStatusEmail  = "claim:status_email"
	TaskLowStockAlertScan = "inventory:low_stock_scan"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 验证码常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"

	CaptchaSceneAdminLogin  = "admin_login"
	CaptchaSceneSubmitClaim = "submit_claim"
)

// 排序方向常量
const (
	SortPointsHighToLow = "high-to-low"
	SortPointsLowToHigh = "low-to-high"
)
