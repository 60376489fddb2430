package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmfsamples/catalog-api/pkg/db/models"
	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the product store operations.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  *Repository
	cache Cache
}

// NewService constructs the product store. cache may be nil, in which case
// every read goes straight to the database.
func NewService(repo *Repository, cache Cache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if rows, ok := s.cache.GetList(ctx); ok {
			return rows, nil
		}
	}

	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	if s.cache != nil {
		s.cache.SetList(ctx, rows)
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if fields := input.validate(); fields != nil {
		return nil, pkgerrors.Validation(fields)
	}

	product := &models.Product{
		Name:        strings.TrimSpace(*input.Name),
		Description: input.Description,
		Price:       *input.Price,
		Stock:       *input.Stock,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	s.invalidate(ctx, created.ID)
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, id); ok {
			return product, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err)
	}

	if s.cache != nil {
		s.cache.SetProduct(ctx, product)
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	if fields := input.validate(); fields != nil {
		return nil, pkgerrors.Validation(fields)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err)
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.DescriptionSet {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func translateLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
}
