package main

import (
	"github.com/time2claim/internal/config"
	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加奖品
	rewards := []models.Reward{
		{
			Name:           "BMW 320i Sedan",
			Category:       constants.CategoryCar,
			Points:         models.NewPointsFromInt(2500000),
			Quantity:       2,
			VariantKind:    "Color",
			VariantOptions: models.StringArray([]string{"Alpine White", "Black Sapphire"}),
			Galleries: models.GalleryMap{
				"Alpine White":   {"https://images.unsplash.com/photo-1555215695-3004980ad54e?w=800"},
				"Black Sapphire": {"https://images.unsplash.com/photo-1556189250-72ba954cfc2b?w=800"},
			},
			Image:       "https://images.unsplash.com/photo-1555215695-3004980ad54e?w=800",
			Description: "Brand new BMW 320i sedan. Registration and insurance for the first year are included.",
			IsActive:    true,
		},
		{
			Name:        "Rolex Submariner Date",
			Category:    constants.CategoryAccessory,
			Points:      models.NewPointsFromInt(120000),
			Quantity:    3,
			Image:       "https://images.unsplash.com/photo-1587836374828-4dbafa94cf0e?w=800",
			Description: "Oystersteel, 41mm, with original box and papers.",
			IsActive:    true,
		},
		{
			Name:           "iPhone 16 Pro",
			Category:       constants.CategoryGadget,
			Points:         models.NewPointsFromInt(45000),
			Quantity:       20,
			VariantKind:    "Storage",
			VariantOptions: models.StringArray([]string{"256GB", "512GB"}),
			Image:          "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=800",
			Description:    "Latest iPhone 16 Pro, factory unlocked.",
			IsActive:       true,
		},
		{
			Name:        "MacBook Air M3",
			Category:    constants.CategoryGadget,
			Points:      models.NewPointsFromInt(60000),
			Quantity:    10,
			Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800",
			Description: "13-inch MacBook Air with the M3 chip, 16GB unified memory.",
			IsActive:    true,
		},
		{
			Name:        "GCash Credit 5000",
			Category:    constants.CategoryEwallet,
			Points:      models.NewPointsFromInt(5000),
			Quantity:    200,
			Image:       "https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=800",
			Description: "Direct top-up to your e-wallet account within 24 hours of approval.",
			IsActive:    true,
		},
		{
			Name:           "Limited Edition Hoodie",
			Category:       constants.CategoryMerch,
			Points:         models.NewPointsFromInt(800),
			Quantity:       150,
			VariantKind:    "Size",
			VariantOptions: models.StringArray([]string{"S", "M", "L", "XL"}),
			Image:          "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=800",
			Description:    "Heavyweight cotton hoodie with embroidered logo.",
			IsActive:       true,
		},
		{
			Name:        "Stainless Tumbler",
			Category:    constants.CategoryMerch,
			Points:      models.NewPointsFromInt(300),
			Quantity:    4,
			Image:       "https://images.unsplash.com/photo-1570784332176-fdd73da66f03?w=800",
			Description: "Double-wall insulated tumbler, 600ml.",
			IsActive:    true,
		},
	}

	for _, reward := range rewards {
		var existing models.Reward
		if err := models.DB.Where("name = ?", reward.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&reward).Error; err != nil {
				stdLog.Printf("Failed to create reward %s: %v", reward.Name, err)
			} else {
				stdLog.Printf("Created reward: %s", reward.Name)
			}
		} else {
			stdLog.Printf("Reward already exists: %s", reward.Name)
		}
	}

	stdLog.Println("Seed completed")
}
