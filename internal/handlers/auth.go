package handlers

import (
	"errors"
	"net/http"

	"optiwatt/internal/service"

	"github.com/gin-gonic/gin"
)

// Mock sign-in payload. Password is accepted and ignored.
type loginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required" example:"dark"`
}

// @Summary      Mock login
// @Description  Accepts any name/email, stores the user locally and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "user, token"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Session.Login(c.Request.Context(), service.LoginParams{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "login failed", "auth_login_failed", err, "email", input.Email)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_login", "user_id", user.ID)
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Session.Logout(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "logout failed", "auth_logout_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	u, err := h.services.Session.CurrentUser(c.Request.Context())
	if errors.Is(err, service.ErrNoSession) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load user", "auth_current_user_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Get theme preference
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/preferences/theme [get]
// @Security     BearerAuth
func (h *Handler) getTheme(c *gin.Context) {
	theme, err := h.services.Session.Theme(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load theme", "theme_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// @Summary      Set theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      themeRequest  true  "light or dark"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/preferences/theme [put]
// @Security     BearerAuth
func (h *Handler) setTheme(c *gin.Context) {
	var input themeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	theme, err := h.services.Session.SetTheme(c.Request.Context(), input.Theme)
	if errors.Is(err, service.ErrInvalidTheme) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save theme", "theme_set_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
