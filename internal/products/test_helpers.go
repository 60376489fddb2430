package products

import (
	"testing"

	"github.com/cmfsamples/catalog-api/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, name string, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
