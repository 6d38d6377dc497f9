package onboarding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/logger"
	"github.com/pantrypal/onboarding-backend/internal/pkg/request"
	"github.com/pantrypal/onboarding-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	messageProfileNotFound = "Onboarding profile not found"
	messageNoQAPairs       = "No Q&A pairs found for this session"
	messageSessionConflict = "Session was modified concurrently, please retry"
)

type Handler struct {
	usecase OnboardingUsecase
}

func NewHandler(usecase OnboardingUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GenerateQuestions handles POST /questions - Start onboarding with generated questions
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateQuestions")

	var req entity.GenerateQuestionsRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	resp, err := h.usecase.GenerateQuestions(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// SubmitAnswers handles POST /answer - Record answers and complete the session
func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitAnswers")

	var req entity.SubmitAnswersRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	resp, err := h.usecase.SubmitAnswers(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// GetSummary handles POST /summary - Derive the cooking profile
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSummary")

	var req entity.SummaryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	resp, err := h.usecase.GetSummary(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// LogEvent handles POST /event - Record a client event
func (h *Handler) LogEvent(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LogEvent")

	var req entity.LogEventRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	resp, err := h.usecase.LogEvent(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// ExportProfile handles GET /profile/{userId}/{sessionId}?format= - Download the cooking profile
func (h *Handler) ExportProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	sessionID := chi.URLParam(r, "sessionId")
	format := entity.ResultFormat(r.URL.Query().Get("format"))

	ctx := logger.AddFields(r.Context(),
		zap.String("action", "ExportProfile"),
		zap.String("format", string(format)),
	)

	export, err := h.usecase.ExportProfile(ctx, userID, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("cooking-profile-%s%s", sessionID, export.FileExtension)
	response.Attachment(w, export.ContentType, filename, export.Content)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var validationErr *entity.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctxzap.Info(ctx, "request rejected", zap.String("reason", validationErr.Message))
		response.Error(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, entity.ErrSessionNotFound):
		ctxzap.Info(ctx, "onboarding session not found")
		response.Error(w, http.StatusNotFound, messageProfileNotFound)
	case errors.Is(err, entity.ErrNoQAPairs):
		ctxzap.Info(ctx, "onboarding session has no answers")
		response.Error(w, http.StatusBadRequest, messageNoQAPairs)
	case errors.Is(err, entity.ErrSessionVersionConflict):
		ctxzap.Warn(ctx, "concurrent session write", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, messageSessionConflict)
	default:
		ctxzap.Error(ctx, "request failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, response.MessageInternalError)
	}
}
