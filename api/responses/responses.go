package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"
	"github.com/cmfsamples/catalog-api/pkg/logger"
	"github.com/cmfsamples/catalog-api/pkg/types"
)

// WriteData writes a bare {data} envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.DataEnvelope{Data: data})
}

// WriteMessageData writes a {message, data} envelope for successful mutations.
func WriteMessageData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, types.MessageDataEnvelope{Message: message, Data: data})
}

// WriteMessage writes a bare {message} confirmation.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.MessageEnvelope{Message: message})
}

// ErrorMessages lets a handler pick the operation-specific message for each
// error kind; empty entries fall back to the code's public message.
type ErrorMessages struct {
	Validation string
	NotFound   string
	Internal   string
}

// WriteError translates a store error into the wire contract: 422 with a
// field-error map for validation failures, 404/500 with {message, error}
// otherwise. Every error is logged with its chain before the response goes out.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, msgs ErrorMessages) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error":      err.Error(),
			"error_code": string(typed.Code()),
			"status":     meta.HTTPStatus,
		})
		logg.Error(ctx, "request.error", err)
	}

	if typed.Code() == pkgerrors.CodeValidation {
		fields := typed.Fields()
		if fields == nil {
			fields = pkgerrors.FieldErrors{}
		}
		writeJSON(w, meta.HTTPStatus, types.ValidationEnvelope{
			Message: messageFor(typed.Code(), msgs, meta),
			Errors:  fields,
		})
		return
	}

	writeJSON(w, meta.HTTPStatus, types.ErrorEnvelope{
		Message: messageFor(typed.Code(), msgs, meta),
		Error:   detailFor(typed),
	})
}

func messageFor(code pkgerrors.Code, msgs ErrorMessages, meta pkgerrors.Metadata) string {
	var msg string
	switch code {
	case pkgerrors.CodeValidation:
		msg = msgs.Validation
	case pkgerrors.CodeNotFound:
		msg = msgs.NotFound
	default:
		msg = msgs.Internal
	}
	if msg == "" {
		msg = meta.PublicMessage
	}
	return msg
}

func detailFor(typed *pkgerrors.Error) string {
	detail := typed.Message()
	if cause := typed.Unwrap(); cause != nil {
		if detail == "" {
			return cause.Error()
		}
		detail += ": " + cause.Error()
	}
	return detail
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
