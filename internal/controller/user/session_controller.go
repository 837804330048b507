package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService service.SessionService
	answerService  service.AnswerService
}

func NewSessionController(sessionService service.SessionService, answerService service.AnswerService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		answerService:  answerService,
	}
}

// StartSession godoc
// @Summary Start a new test session, or resume the open one
// @Description Builds an adaptive session for the caller: level from history, unseen questions per subject, AI backfill on pool shortfall. Returns the existing session unchanged if one is in progress.
// @Tags Sessions
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Success 201 {object} dto.SessionDetailDTO
// @Success 200 {object} dto.SessionDetailDTO "Resumed existing session"
// @Failure 422 {object} dto.ErrorResponse "Profile incomplete"
// @Failure 503 {object} dto.ErrorResponse "Question pool exhausted"
// @Router /sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	detail, err := c.sessionService.StartSession(ctx.Request.Context(), userID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("StartSession failed")
		respondError(ctx, err)
		return
	}
	status := http.StatusCreated
	if detail.Resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, detail)
}

// GetMySessions godoc
// @Summary List the caller's sessions
// @Tags Sessions
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Success 200 {array} dto.SessionSummaryDTO
// @Router /sessions [get]
func (c *SessionController) GetMySessions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	summaries, err := c.sessionService.GetUserSessions(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// GetSessionDetails godoc
// @Summary Get one session with its questions
// @Description Questions are sanitized: correct options never leave the server through this endpoint.
// @Tags Sessions
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSessionDetails(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	detail, err := c.sessionService.GetSession(userID, sessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// RecordAnswer godoc
// @Summary Save or overwrite one answer
// @Description Upserts the caller's answer to a question of their open session. Re-saving overwrites the payload and resets any grading.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param session_id path int true "Session ID"
// @Param answer body dto.RecordAnswerRequest true "Answer payload"
// @Success 200 {object} dto.AnswerDTO
// @Failure 400 {object} dto.ErrorResponse "Question not part of session"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 410 {object} dto.ErrorResponse "Session expired"
// @Router /sessions/{session_id}/answers [put]
func (c *SessionController) RecordAnswer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	answer, err := c.answerService.RecordAnswer(userID, sessionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answer)
}
