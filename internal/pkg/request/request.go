package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/response"
)

// maxBodySize caps request bodies; onboarding payloads are small
const maxBodySize = 1 << 20

// DecodeJSON decodes the request body into dst. An empty body decodes as {}.
// The body must hold exactly one JSON value; malformed JSON, trailing content
// and wrongly typed fields come back as *entity.ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		if dec.Decode(&struct{}{}) != io.EOF {
			return entity.NewValidationError(entity.ErrInvalidFormat, response.MessageInvalidJSON)
		}
		return nil
	}

	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return entity.NewValidationError(entity.ErrInvalidFormat, "Invalid value for field: "+typeErr.Field)
	}

	return entity.NewValidationError(entity.ErrInvalidFormat, response.MessageInvalidJSON)
}
