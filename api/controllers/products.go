package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cmfsamples/catalog-api/api/responses"
	"github.com/cmfsamples/catalog-api/api/validators"
	productsvc "github.com/cmfsamples/catalog-api/internal/products"
	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
	"github.com/cmfsamples/catalog-api/pkg/logger"
)

// ListProducts returns every catalog row.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"), listMessages)
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, listMessages)
			return
		}

		responses.WriteData(w, http.StatusOK, rows)
	}
}

// CreateProduct handles product creation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"), createMessages)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err, createMessages)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, createMessages)
			return
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, createMessages)
			return
		}

		responses.WriteMessageData(w, http.StatusCreated, "Product created successfully", product)
	}
}

// GetProduct returns a single product by id.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"), getMessages)
			return
		}

		id, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, getMessages)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}

		product, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err, getMessages)
			return
		}

		responses.WriteData(w, http.StatusOK, product)
	}
}

// UpdateProduct applies a partial mutation to a product.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"), updateMessages)
			return
		}

		id, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, updateMessages)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err, updateMessages)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err, updateMessages)
			return
		}

		product, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err, updateMessages)
			return
		}

		responses.WriteMessageData(w, http.StatusOK, "Product updated successfully", product)
	}
}

// DeleteProduct removes a product permanently.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product store unavailable"), deleteMessages)
			return
		}

		id, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, deleteMessages)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, id)
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err, deleteMessages)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "Product deleted successfully")
	}
}

var (
	listMessages = responses.ErrorMessages{
		Internal: "Failed to retrieve products",
	}
	createMessages = responses.ErrorMessages{
		Validation: "Validation failed for product creation",
		Internal:   "Failed to create product due to an error",
	}
	getMessages = responses.ErrorMessages{
		NotFound: "Product not found or failed to retrieve",
		Internal: "Product not found or failed to retrieve",
	}
	updateMessages = responses.ErrorMessages{
		Validation: "Validation failed for product update",
		NotFound:   "Product not found or failed to update product",
		Internal:   "Product not found or failed to update product",
	}
	deleteMessages = responses.ErrorMessages{
		NotFound: "Product not found or failed to delete product",
		Internal: "Product not found or failed to delete product",
	}
)

type createProductRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	Stock       *int            `json:"stock"`
	IsActive    *bool           `json:"is_active"`
}

func (r createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	input := productsvc.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
	}

	// a null price stays nil and fails the store's required rule
	if len(r.Price) > 0 && !isJSONNull(r.Price) {
		var price decimal.Decimal
		if err := json.Unmarshal(r.Price, &price); err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Validation(pkgerrors.FieldErrors{
				"price": {"The price field must be a number."},
			})
		}
		input.Price = &price
	}

	return input, nil
}

// updateProductRequest keeps every field as raw JSON so an explicit null can
// be told apart from an absent field. Null clears the description; for the
// other fields it fails validation instead of silently dropping the mutation.
type updateProductRequest struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	Price       json.RawMessage `json:"price"`
	Stock       json.RawMessage `json:"stock"`
	IsActive    json.RawMessage `json:"is_active"`
}

func (r updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{}
	fields := pkgerrors.FieldErrors{}

	if len(r.Name) > 0 {
		if isJSONNull(r.Name) {
			fields.Add("name", "The name field is required.")
		} else {
			var name string
			if err := json.Unmarshal(r.Name, &name); err != nil {
				fields.Add("name", "The name field must be a string.")
			} else {
				input.Name = &name
			}
		}
	}

	if len(r.Description) > 0 {
		if isJSONNull(r.Description) {
			input.DescriptionSet = true
		} else {
			var description string
			if err := json.Unmarshal(r.Description, &description); err != nil {
				fields.Add("description", "The description field must be a string.")
			} else {
				input.DescriptionSet = true
				input.Description = &description
			}
		}
	}

	if len(r.Price) > 0 {
		if isJSONNull(r.Price) {
			fields.Add("price", "The price field is required.")
		} else {
			var price decimal.Decimal
			if err := json.Unmarshal(r.Price, &price); err != nil {
				fields.Add("price", "The price field must be a number.")
			} else {
				input.Price = &price
			}
		}
	}

	if len(r.Stock) > 0 {
		if isJSONNull(r.Stock) {
			fields.Add("stock", "The stock field is required.")
		} else {
			var stock int
			if err := json.Unmarshal(r.Stock, &stock); err != nil {
				fields.Add("stock", "The stock field must be an integer.")
			} else {
				input.Stock = &stock
			}
		}
	}

	if len(r.IsActive) > 0 {
		var isActive bool
		if isJSONNull(r.IsActive) || json.Unmarshal(r.IsActive, &isActive) != nil {
			fields.Add("is_active", "The is_active field must be true or false.")
		} else {
			input.IsActive = &isActive
		}
	}

	if len(fields) > 0 {
		return productsvc.UpdateProductInput{}, pkgerrors.Validation(fields)
	}
	return input, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func parseProductID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "invalid product id")
	}
	return id, nil
}
