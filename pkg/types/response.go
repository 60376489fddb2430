package types

import pkgerrors "github.com/cmfsamples/catalog-api/pkg/errors"

// DataEnvelope wraps read responses.
type DataEnvelope struct {
	Data any `json:"data"`
}

// MessageDataEnvelope wraps successful mutations.
type MessageDataEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// MessageEnvelope carries a bare confirmation (delete).
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ValidationEnvelope carries the field -> reasons mapping for a 422.
type ValidationEnvelope struct {
	Message string                `json:"message"`
	Errors  pkgerrors.FieldErrors `json:"errors"`
}

// ErrorEnvelope carries a human message plus the underlying error detail.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
