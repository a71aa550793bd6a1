package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/app/services"
	"github.com/kiranraj/fundsphere/internal/middleware"
)

// AuthController handles panel session operations
type AuthController struct {
	authService   services.AuthService
	secureCookies bool
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, secureCookies bool) *AuthController {
	return &AuthController{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// Login opens a panel session
// @Summary Open a panel session
// @Description Checks the role password and sets the session cookie. The token is also returned for non-browser clients.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Role and password"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session opened"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := middleware.BindingErrorDetail(err, "role and password are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, expiresAt, err := c.authService.Login(req.Role, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", c.secureCookies, true)

	ctx.Header("Authorization", "Bearer "+token)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SessionResponse{Authenticated: true, Role: req.Role},
		Timestamp: time.Now(),
	})
}

// Logout clears the session cookie
// @Summary Close the panel session
// @Description Expires the session cookie. The token itself is not revoked; it simply ages out.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Session closed"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", c.secureCookies, true)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}

// Session reports the caller's session state
// @Summary Check the panel session
// @Description Returns the authenticated role of the current session. Anonymous callers get {authenticated: false} rather than an error.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session state"
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	role, ok := middleware.SessionRole(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Data:      dto.SessionResponse{Authenticated: false},
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SessionResponse{Authenticated: true, Role: string(role)},
		Timestamp: time.Now(),
	})
}
