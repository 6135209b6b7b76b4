package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lshigami/mockinterview/internal/controller"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/middleware"
)

type ProfileController struct{}

func NewProfileController() *ProfileController {
	return &ProfileController{}
}

// Me godoc
// @Summary Current user profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me [get]
func (c *ProfileController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	var resp dto.UserProfileResponse
	if err := copier.Copy(&resp, user); err != nil {
		controller.RespondError(ctx, err, "Failed to load profile")
		return
	}
	resp.Joined = user.CreatedAt
	ctx.JSON(http.StatusOK, resp)
}
