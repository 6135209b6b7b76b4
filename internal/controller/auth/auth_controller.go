package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/internal/controller"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(as service.AuthService) *AuthController {
	return &AuthController{authService: as}
}

// Signup godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Name, email and password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Signup: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if _, err := c.authService.Signup(req.Name, req.Email, req.Password); err != nil {
		controller.RespondError(ctx, err, "Failed to sign up")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Signup successful"})
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	token, err := c.authService.Login(req.Email, req.Password)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to log in")
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
