// Package seed loads the demo catalog used for local development.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cmfsamples/catalog-api/pkg/db/models"
	"github.com/cmfsamples/catalog-api/pkg/logger"
)

func strPtr(s string) *string { return &s }

// Products returns the canonical demo rows, including one inactive product so
// client tooling has an is_active=false case to render.
func Products() []models.Product {
	return []models.Product{
		{
			Name:        "Smartphone X",
			Description: strPtr("Latest smartphone with advanced features"),
			Price:       decimal.RequireFromString("999.99"),
			Stock:       50,
			IsActive:    true,
		},
		{
			Name:        "Laptop Pro",
			Description: strPtr("High-performance laptop for professionals"),
			Price:       decimal.RequireFromString("1499.99"),
			Stock:       30,
			IsActive:    true,
		},
		{
			Name:        "Wireless Headphones",
			Description: strPtr("Premium noise-cancelling wireless headphones"),
			Price:       decimal.RequireFromString("249.99"),
			Stock:       100,
			IsActive:    true,
		},
		{
			Name:        "Smart Watch",
			Description: strPtr("Fitness and health tracking smartwatch"),
			Price:       decimal.RequireFromString("199.99"),
			Stock:       75,
			IsActive:    true,
		},
		{
			Name:        "Tablet Mini",
			Description: strPtr("Compact tablet for entertainment and productivity"),
			Price:       decimal.RequireFromString("349.99"),
			Stock:       45,
			IsActive:    true,
		},
		{
			Name:        "Discontinued Product",
			Description: strPtr("This product is no longer available"),
			Price:       decimal.RequireFromString("99.99"),
			Stock:       0,
			IsActive:    false,
		},
	}
}

// Run inserts the demo rows. A non-empty catalog is left untouched so the
// seeder can run on every boot without duplicating rows.
func Run(ctx context.Context, conn *gorm.DB, logg *logger.Logger) error {
	if conn == nil {
		return fmt.Errorf("db connection required")
	}

	var count int64
	if err := conn.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		if logg != nil {
			ctx = logg.WithField(ctx, "rows", count)
			logg.Info(ctx, "catalog already seeded, skipping")
		}
		return nil
	}

	rows := Products()
	if err := conn.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("inserting demo products: %w", err)
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "rows", len(rows))
		logg.Info(ctx, "catalog seeded")
	}
	return nil
}
