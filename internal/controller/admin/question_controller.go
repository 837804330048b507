package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/mnhthng/ascent/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.AdminQuestionService
}

func NewQuestionController(questionService service.AdminQuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// SeedQuestions godoc
// @Summary (Admin) Bulk-seed the question pool
// @Description Inserts questions, silently skipping content duplicates within the same (education level, section, subject) context.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param questions body dto.SeedQuestionsRequest true "Questions to seed"
// @Success 200 {object} dto.SeedReportDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *QuestionController) SeedQuestions(ctx *gin.Context) {
	var req dto.SeedQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	report, err := c.questionService.SeedQuestions(req)
	if err != nil {
		log.Error().Err(err).Msg("SeedQuestions failed")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// ListQuestions godoc
// @Summary (Admin) List questions with context filters
// @Tags Admin - Questions
// @Produce json
// @Param education_level query string false "Education level"
// @Param section query string false "Section"
// @Param subject query string false "Subject"
// @Param difficulty query string false "Difficulty"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.QuestionDTO
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	filter := repository.QuestionFilter{
		EducationLevel: ctx.Query("education_level"),
		Section:        ctx.Query("section"),
		Subject:        ctx.Query("subject"),
		Difficulty:     ctx.Query("difficulty"),
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	questions, err := c.questionService.ListQuestions(filter, limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// DeactivateQuestion godoc
// @Summary (Admin) Deactivate a question
// @Description Questions are never hard-deleted while sessions reference them; deactivation removes them from future selection.
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 204 "Deactivated"
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (c *QuestionController) DeactivateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question_id format"})
		return
	}
	if err := c.questionService.DeactivateQuestion(uint(id)); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to deactivate question", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}
