package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/time2claim/internal/authz"
	"github.com/time2claim/internal/cache"
	"github.com/time2claim/internal/config"
	adminhandlers "github.com/time2claim/internal/http/handlers/admin"
	publichandlers "github.com/time2claim/internal/http/handlers/public"
	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "t2c"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	claimSubmitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:claim_submit", redisPrefix),
		WindowSeconds: cfg.Security.ClaimRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ClaimRateLimit.MaxAttempts,
		MessageKey:    "error.claim_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（奖品图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/rewards", publicHandler.GetRewards)
			public.GET("/rewards/:id", publicHandler.GetRewardByID)
			public.POST("/claims", RateLimitMiddleware(redisClient, claimSubmitRule, KeyByIPAndJSONField("username")), publicHandler.SubmitClaim)
			public.GET("/claims/:claim_id", publicHandler.GetClaimStatus)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword) // 修改密码

				// 奖品管理
				authorized.GET("/rewards", adminHandler.GetAdminRewards)
				authorized.GET("/rewards/:id", adminHandler.GetAdminReward)
				authorized.POST("/rewards", adminHandler.CreateReward)
				authorized.PUT("/rewards/:id", adminHandler.UpdateReward)
				authorized.DELETE("/rewards/:id", adminHandler.DeleteReward)
				authorized.PATCH("/rewards/:id/active", adminHandler.ToggleRewardActive)

				// 兑换申请管理
				authorized.GET("/claims", adminHandler.GetAdminClaims)
				authorized.GET("/claims/:id", adminHandler.GetAdminClaim)
				authorized.PATCH("/claims/:id/status", adminHandler.AdminUpdateClaimStatus)

				// 库存管理
				authorized.POST("/rewards/:id/restock", adminHandler.RestockReward)
				authorized.POST("/inventory/bulk-update", adminHandler.BulkUpdateStock)
				authorized.GET("/inventory/alerts", adminHandler.GetStockAlerts)
				authorized.GET("/inventory/restock-history", adminHandler.GetRestockHistory)

				// 权限目录
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
