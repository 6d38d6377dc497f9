package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/logger"
	"github.com/pantrypal/onboarding-backend/internal/pkg/request"
	"github.com/pantrypal/onboarding-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase UserUsecase
}

func NewHandler(usecase UserUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// SignUp handles POST /signup - Create an account
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SignUp")

	var req entity.SignUpRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	resp, err := h.usecase.SignUp(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// Duplicate accounts map to the generic 500
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var validationErr *entity.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctxzap.Info(ctx, "signup rejected", zap.String("reason", validationErr.Message))
		response.Error(w, http.StatusBadRequest, validationErr.Message)
	default:
		ctxzap.Error(ctx, "signup failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, response.MessageInternalError)
	}
}
