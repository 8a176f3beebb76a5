package repository

// RewardListFilter 查询奖品列表的过滤条件
type RewardListFilter struct {
	Page       int
	PageSize   int
	Categories []string
	Search     string
	MinPoints  *int64
	MaxPoints  *int64
	OnlyActive bool
	SortPoints string // high-to-low / low-to-high
}

// ClaimListFilter 查询领取单列表的过滤条件
type ClaimListFilter struct {
	Page       int
	PageSize   int
	RewardID   uint
	Status     string
	Username   string
	WithReward bool
}

// RestockListFilter 查询补货记录的过滤条件
type RestockListFilter struct {
	Page     int
	PageSize int
	RewardID uint
}
