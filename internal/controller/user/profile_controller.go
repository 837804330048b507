package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/service"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Success 200 {object} dto.ProfileDTO
// @Failure 422 {object} dto.ErrorResponse "No profile declared yet"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	profile, err := c.profileService.GetProfile(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpsertProfile godoc
// @Summary Declare or update the caller's education context
// @Tags Profile
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Trusted user identity"
// @Param profile body dto.UpsertProfileRequest true "Profile"
// @Success 200 {object} dto.ProfileDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /profile [put]
func (c *ProfileController) UpsertProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.UpsertProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	profile, err := c.profileService.UpsertProfile(userID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
