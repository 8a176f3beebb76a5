package provider

import (
	"github.com/time2claim/internal/authz"
	"github.com/time2claim/internal/cache"
	"github.com/time2claim/internal/config"
	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/queue"
	"github.com/time2claim/internal/repository"
	"github.com/time2claim/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo   repository.AdminRepository
	RewardRepo  repository.RewardRepository
	ClaimRepo   repository.ClaimRepository
	RestockRepo repository.RestockRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	EmailService     *service.EmailService
	CaptchaService   *service.CaptchaService
	RewardService    *service.RewardService
	ClaimService     *service.ClaimService
	InventoryService *service.InventoryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.RewardRepo = repository.NewRewardRepository(db)
	c.ClaimRepo = repository.NewClaimRepository(db)
	c.RestockRepo = repository.NewRestockRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.RewardService = service.NewRewardService(c.RewardRepo, c.ClaimRepo)
	c.ClaimService = service.NewClaimService(c.ClaimRepo, c.RewardRepo, c.QueueClient, c.Config.Claim.IDPrefix, c.Config.Claim.IDTokenLength)
	c.InventoryService = service.NewInventoryService(c.RewardRepo, c.RestockRepo, c.QueueClient, c.Config.Inventory.LowStockThreshold)
}
