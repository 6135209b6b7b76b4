package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/middleware"
	"github.com/lshigami/mockinterview/internal/service"
	"github.com/rs/zerolog/log"
)

// errorStatuses maps service sentinels to HTTP statuses; anything else is a 500.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrUserNotFound, http.StatusUnauthorized},
	{service.ErrEmailTaken, http.StatusBadRequest},
	{service.ErrUnsupportedResume, http.StatusBadRequest},
	{service.ErrResumeTooLarge, http.StatusBadRequest},
	{service.ErrUnreadableResume, http.StatusBadRequest},
	{service.ErrInterviewNotFound, http.StatusNotFound},
	{service.ErrInterviewComplete, http.StatusConflict},
	{service.ErrUnparseableEvaluation, http.StatusBadGateway},
	{service.ErrModelUnavailable, http.StatusBadGateway},
}

func StatusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// RespondError logs err and writes the matching ErrorResponse. message is used for
// unmapped errors; mapped errors use their own text so clients can show it.
func RespondError(ctx *gin.Context, err error, message string) {
	status := StatusFor(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("path", ctx.FullPath()).
		Str("requestID", middleware.GetRequestID(ctx)).
		Int("status", status).
		Msg(message)

	resp := dto.ErrorResponse{Message: message, Details: []string{err.Error()}}
	if status < http.StatusInternalServerError {
		resp = dto.ErrorResponse{Message: sentinelMessage(err)}
	}
	ctx.JSON(status, resp)
}

func sentinelMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return "Email already registered"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, service.ErrInterviewNotFound):
		return "Interview not found"
	case errors.Is(err, service.ErrInterviewComplete):
		return "Interview already complete"
	case errors.Is(err, service.ErrResumeTooLarge):
		return "Resume file is too large"
	case errors.Is(err, service.ErrUnsupportedResume):
		return "Unsupported resume format. Upload a PDF or DOCX file."
	case errors.Is(err, service.ErrUnreadableResume):
		return "Resume file could not be read"
	default:
		return err.Error()
	}
}

// RequireUserID reads the authenticated user id or aborts with 401.
func RequireUserID(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return 0, false
	}
	return userID, true
}

type HealthController struct {
	healthService service.HealthService
}

func NewHealthController(hs service.HealthService) *HealthController {
	return &HealthController{healthService: hs}
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Checks that the database is reachable.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if err := c.healthService.Ready(checkCtx); err != nil {
		log.Warn().Err(err).Msg("Readiness check failed")
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "not_ready", Details: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ready"})
}
