package products

import (
	"context"

	"github.com/cmfsamples/catalog-api/pkg/db/models"
	"gorm.io/gorm"
)

// Repository owns product row persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns every row in insertion order.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a single product. Returns gorm.ErrRecordNotFound for a
// missing id; the service layer translates that into the typed error.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row and fills in the assigned id and
// timestamps.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct saves an existing product row, refreshing updated_at.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by id and reports how many rows went away,
// so callers can distinguish a no-op delete from a real one.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return res.RowsAffected, res.Error
}
