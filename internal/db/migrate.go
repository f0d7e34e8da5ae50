package db

import (
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in migration order. New product variants must be
// added here as well as to the product registry.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Customer{},
		&model.Category{},
		&model.Laptop{},
		&model.Smartphone{},
		&model.Cart{},
		&model.CartLine{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// defaultCategories are the categories the admin tooling expects to exist,
// one per shipped variant.
var defaultCategories = []model.Category{
	{Name: "Laptops", Slug: "laptops"},
	{Name: "Smartphones", Slug: "smartphones"},
}

// Seed adds the default categories if the table is empty.
func Seed() error {
	return seedCategories(DB)
}

func seedCategories(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding category data...")

	for _, category := range defaultCategories {
		category := category
		if err := conn.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"slug": category.Slug,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(defaultCategories),
	})
	return nil
}
