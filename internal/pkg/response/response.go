package response

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

// Messages shared by every entry point
const (
	MessageInternalError = "Internal server error"
	MessageInvalidJSON   = "Invalid JSON body"
	MessageRouteNotFound = "Route not found"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing useful to do on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response carrying a single message
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, entity.MessageResponse{Message: message})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Attachment writes a downloadable file
func Attachment(w http.ResponseWriter, contentType, filename string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
