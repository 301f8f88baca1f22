package handlers

import (
	"errors"
	"net/http"

	"bookshare/internal/repository"
	"bookshare/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  authCredentials  true  "email and password"
// @Success      200  {object}  map[string]interface{}  "id, email, role, access_token"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Register(input.Email, input.Password)
	if err != nil {
		// Validation and the unique-constraint violation map to 400;
		// everything else stays generic so no internals leak.
		switch {
		case errors.Is(err, service.ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordBlank})
		case errors.Is(err, repository.ErrEmailTaken):
			if h.log != nil {
				h.log.Infow("auth_register_duplicate", "email", input.Email)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": errUserExists})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errRegisterFailed, "auth_register_failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"role":         user.Role,
		"access_token": token,
	})
}

// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  authCredentials  true  "email and password"
// @Success      200  {object}  map[string]string  "access_token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errBadCredentials})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
