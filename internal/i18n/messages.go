package i18n

// messages 文案表，key 结构与处理器中的错误映射保持一致
var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":              "invalid request",
		"error.unauthorized":             "unauthorized",
		"error.forbidden":                "permission denied",
		"error.not_found":                "resource not found",
		"error.internal":                 "internal error",
		"error.jwt_secret_missing":       "server auth is not configured",
		"error.auth_header_missing":      "authorization header is missing",
		"error.auth_header_invalid":      "authorization header is invalid",
		"error.token_invalid":            "token is invalid",
		"error.token_revoked":            "token has been revoked",
		"error.invalid_credentials":      "invalid username or password",
		"error.login_too_many":           "too many login attempts, retry in %d seconds",
		"error.rate_limited":             "too many requests, retry in %d seconds",
		"error.claim_too_many":           "too many claim submissions, retry in %d seconds",
		"error.rate_limit_unavailable":   "rate limiter unavailable",
		"error.admin_id_invalid":         "admin id is invalid",
		"error.admin_id_type_invalid":    "admin id type is invalid",
		"error.captcha_required":         "captcha is required",
		"error.captcha_invalid":          "captcha verification failed",
		"error.captcha_config_invalid":   "captcha is not configured",
		"error.reward_invalid":           "reward payload is invalid",
		"error.reward_not_found":         "reward not found",
		"error.reward_fetch_failed":      "failed to fetch rewards",
		"error.reward_create_failed":     "failed to create reward",
		"error.reward_update_failed":     "failed to update reward",
		"error.reward_delete_failed":     "failed to delete reward",
		"error.gallery_too_large":        "each variant gallery holds at most 4 images",
		"error.variant_option_invalid":   "variant options are invalid",
		"error.claim_invalid":            "claim payload is invalid",
		"error.claim_not_found":          "claim not found",
		"error.claim_fetch_failed":       "failed to fetch claims",
		"error.claim_submit_failed":      "failed to submit claim",
		"error.claim_update_failed":      "failed to update claim",
		"error.claim_transition_invalid": "claim status transition is not allowed",
		"error.claim_reason_required":    "a rejection reason is required",
		"error.claim_address_required":   "delivery address is required",
		"error.claim_ewallet_required":   "e-wallet name and account are required",
		"error.reward_inactive":          "reward is not available",
		"error.restock_invalid":          "restock quantity must be positive",
		"error.bulk_update_invalid":      "bulk update entries are invalid",
		"error.inventory_fetch_failed":   "failed to fetch inventory",
		"error.queue_unavailable":        "task queue unavailable",
		"error.password_invalid":         "password is invalid or does not meet the policy",
		"error.admin_not_found":          "admin not found",

		"claim.status.pending":    "Pending Review",
		"claim.status.approved":   "Approved",
		"claim.status.processing": "Processing",
		"claim.status.shipped":    "Shipped",
		"claim.status.delivered":  "Delivered",
		"claim.status.rejected":   "Rejected",

		"claim.progress.pending":    "Your claim is being reviewed by our team.",
		"claim.progress.approved":   "Your claim has been approved! Preparing for shipment.",
		"claim.progress.processing": "Your reward is currently being processed.",
		"claim.progress.shipped":    "Your reward has been shipped! Track your delivery.",
		"claim.progress.delivered":  "Your reward has been delivered successfully!",
		"claim.progress.rejected":   "Your claim was rejected. Please contact support for details.",

		"email.claim_status.subject":        "Your reward claim is now %s",
		"email.claim_status.body":           "Hi %s,\n\nYour claim %s for \"%s\" is now %s.\n\nThank you.",
		"email.claim_status.body_rejected":  "Hi %s,\n\nYour claim %s for \"%s\" was rejected.\nReason: %s\n\nThank you.",
		"email.claim_status.body_delivered": "Hi %s,\n\nYour claim %s for \"%s\" has been delivered. Enjoy your reward!\n\nThank you.",
	},
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未授权",
		"error.forbidden":                "没有权限",
		"error.not_found":                "资源不存在",
		"error.internal":                 "内部错误",
		"error.jwt_secret_missing":       "服务端鉴权未配置",
		"error.auth_header_missing":      "缺少认证头",
		"error.auth_header_invalid":      "认证头格式错误",
		"error.token_invalid":            "token 无效",
		"error.token_revoked":            "token 已失效",
		"error.invalid_credentials":      "用户名或密码错误",
		"error.login_too_many":           "登录尝试过多，请 %d 秒后重试",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.claim_too_many":           "提交兑换过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.admin_id_invalid":         "管理员 ID 无效",
		"error.admin_id_type_invalid":    "管理员 ID 类型无效",
		"error.captcha_required":         "需要验证码",
		"error.captcha_invalid":          "验证码校验失败",
		"error.captcha_config_invalid":   "验证码未配置",
		"error.reward_invalid":           "奖品数据无效",
		"error.reward_not_found":         "奖品不存在",
		"error.reward_fetch_failed":      "获取奖品失败",
		"error.reward_create_failed":     "创建奖品失败",
		"error.reward_update_failed":     "更新奖品失败",
		"error.reward_delete_failed":     "删除奖品失败",
		"error.gallery_too_large":        "每个款式画册最多 4 张图片",
		"error.variant_option_invalid":   "款式选项无效",
		"error.claim_invalid":            "领取单数据无效",
		"error.claim_not_found":          "领取单不存在",
		"error.claim_fetch_failed":       "获取领取单失败",
		"error.claim_submit_failed":      "提交领取单失败",
		"error.claim_update_failed":      "更新领取单失败",
		"error.claim_transition_invalid": "领取单状态流转不合法",
		"error.claim_reason_required":    "驳回需要填写原因",
		"error.claim_address_required":   "需要填写收货地址",
		"error.claim_ewallet_required":   "需要填写电子钱包名称与账号",
		"error.reward_inactive":          "奖品已下架",
		"error.restock_invalid":          "补货数量必须为正数",
		"error.bulk_update_invalid":      "批量更新条目无效",
		"error.inventory_fetch_failed":   "获取库存失败",
		"error.queue_unavailable":        "任务队列不可用",
		"error.password_invalid":         "密码不正确或不符合安全要求",
		"error.admin_not_found":          "管理员不存在",

		"claim.status.pending":    "待审核",
		"claim.status.approved":   "已批准",
		"claim.status.processing": "处理中",
		"claim.status.shipped":    "已发货",
		"claim.status.delivered":  "已送达",
		"claim.status.rejected":   "已驳回",

		"claim.progress.pending":    "您的领取单正在审核中。",
		"claim.progress.approved":   "您的领取单已批准，正在备货。",
		"claim.progress.processing": "您的奖品正在处理中。",
		"claim.progress.shipped":    "您的奖品已发出，请留意物流信息。",
		"claim.progress.delivered":  "您的奖品已送达！",
		"claim.progress.rejected":   "您的领取单已被驳回，详情请联系客服。",

		"email.claim_status.subject":        "您的奖品领取单状态更新为 %s",
		"email.claim_status.body":           "您好 %s：\n\n您的领取单 %s（奖品「%s」）当前状态为 %s。\n\n感谢您的参与。",
		"email.claim_status.body_rejected":  "您好 %s：\n\n您的领取单 %s（奖品「%s」）已被驳回。\n原因：%s\n\n感谢您的参与。",
		"email.claim_status.body_delivered": "您好 %s：\n\n您的领取单 %s（奖品「%s」）已送达，祝您使用愉快！\n\n感谢您的参与。",
	},
}
