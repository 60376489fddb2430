package products

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	// decimal columns validate through their float value so min/max work
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// CreateProductInput holds the create payload with field presence intact:
// a nil pointer means the caller never supplied the field.
type CreateProductInput struct {
	Name        *string          `json:"name" validate:"required,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required,min=0"`
	Stock       *int             `json:"stock" validate:"required,min=0"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateProductInput holds a partial mutation; only non-nil fields are
// validated and applied. Description needs its own presence flag because
// null is a legal value for it.
type UpdateProductInput struct {
	Name           *string          `json:"name" validate:"omitempty,max=255"`
	Description    *string          `json:"description"`
	DescriptionSet bool             `json:"-"`
	Price          *decimal.Decimal `json:"price" validate:"omitempty,min=0"`
	Stock          *int             `json:"stock" validate:"omitempty,min=0"`
	IsActive       *bool            `json:"is_active"`
}

func (in CreateProductInput) validate() pkgerrors.FieldErrors {
	fields := collectFieldErrors(validate.Struct(in))
	// required passes for a non-nil pointer, so blank names need their own check
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		if fields == nil {
			fields = pkgerrors.FieldErrors{}
		}
		fields.Add("name", "The name field is required.")
	}
	return fields
}

func (in UpdateProductInput) validate() pkgerrors.FieldErrors {
	fields := collectFieldErrors(validate.Struct(in))
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		if fields == nil {
			fields = pkgerrors.FieldErrors{}
		}
		fields.Add("name", "The name field is required.")
	}
	return fields
}

func collectFieldErrors(err error) pkgerrors.FieldErrors {
	if err == nil {
		return nil
	}
	fields := pkgerrors.FieldErrors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields.Add(fe.Field(), fieldMessage(fe))
		}
		return fields
	}
	fields.Add("input", err.Error())
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("The %s field is invalid.", fe.Field())
}
