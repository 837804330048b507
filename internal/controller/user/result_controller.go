package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mnhthng/ascent/internal/service"
	"github.com/rs/zerolog/log"
)

type ResultController struct {
	evaluationService service.EvaluationService
}

func NewResultController(evaluationService service.EvaluationService) *ResultController {
	return &ResultController{evaluationService: evaluationService}
}

// SubmitSession godoc
// @Summary Submit the session for evaluation
// @Description Moves an open session to submitted. Submitting twice is an idempotent no-op.
// @Tags Results
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "No answers recorded"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 410 {object} dto.ErrorResponse "Session expired"
// @Router /sessions/{session_id}/submit [post]
func (c *ResultController) SubmitSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	summary, err := c.evaluationService.SubmitSession(userID, sessionID)
	if err != nil {
		log.Warn().Err(err).Uint("sessionID", sessionID).Msg("SubmitSession failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// EvaluateSession godoc
// @Summary Evaluate a submitted session
// @Description Grades objective answers into a durable TestResult. Safe to call repeatedly; an existing result is returned unchanged.
// @Tags Results
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.TestResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Session not submitted yet"
// @Router /sessions/{session_id}/evaluate [post]
func (c *ResultController) EvaluateSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	result, err := c.evaluationService.EvaluateSession(userID, sessionID)
	if err != nil {
		log.Warn().Err(err).Uint("sessionID", sessionID).Msg("EvaluateSession failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetResult godoc
// @Summary Get the materialized result of a session
// @Description Returns the stored result with derived fields, or a pending_evaluation marker for a submitted-but-unevaluated session.
// @Tags Results
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.MaterializedResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Session not submitted yet"
// @Router /sessions/{session_id}/result [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	materialized, err := c.evaluationService.GetResult(userID, sessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, materialized)
}

// GetCounsellingBundle godoc
// @Summary Stage the counselling bundle
// @Description Returns the evaluated result together with ungraded free-text answers for the external counselling generator.
// @Tags Results
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.CounsellingBundleDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Session not evaluated yet"
// @Router /sessions/{session_id}/counselling [get]
func (c *ResultController) GetCounsellingBundle(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	bundle, err := c.evaluationService.GetCounsellingBundle(userID, sessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bundle)
}

// MarkCounsellingGenerated godoc
// @Summary Mark counselling as generated
// @Description Advances an evaluated session to counselling_generated once the external collaborator has consumed the bundle. Idempotent.
// @Tags Results
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Success 204 "Marked"
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/counselling [post]
func (c *ResultController) MarkCounsellingGenerated(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	if err := c.evaluationService.MarkCounsellingGenerated(userID, sessionID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
