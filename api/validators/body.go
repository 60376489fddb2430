package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
	"github.com/go-playground/validator/v10"
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
	return v
}

func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
				WithFields(pkgerrors.FieldErrors{typeErr.Field: {typeMismatchMessage(typeErr)}})
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithFields(pkgerrors.FieldErrors{"body": {err.Error()}})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := pkgerrors.FieldErrors{}
		for _, fieldErr := range errs {
			fields.Add(fieldErr.Field(), validationMessage(fieldErr))
		}
		return pkgerrors.Validation(fields)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// typeMismatchMessage phrases a JSON type error in terms of the target Go
// type so the response keys on the field instead of the whole body.
func typeMismatchMessage(typeErr *json.UnmarshalTypeError) string {
	target := typeErr.Type
	for target != nil && target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if target == nil {
		return fmt.Sprintf("The %s field is invalid.", typeErr.Field)
	}
	switch target.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", typeErr.Field)
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", typeErr.Field)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", typeErr.Field)
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("The %s field must be a number.", typeErr.Field)
	}
	return fmt.Sprintf("The %s field is invalid.", typeErr.Field)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
