package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmfsamples/catalog-api/api/responses"
	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
	"github.com/cmfsamples/catalog-api/pkg/logger"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"), responses.ErrorMessages{})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
