package controllers

import (
	"errors"
	"net/http"

	"library-api/app"
	"library-api/db"
	"library-api/password"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type validateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /users/validate
//
// A missing email and a wrong password must be indistinguishable from the
// outside: same status, same body, and one bcrypt comparison either way.
func (ac *AuthController) Validate(c *gin.Context) {
	var in validateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	u, err := ac.Repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			// store trouble is a 500, not a credential failure
			respondError(c, err)
			return
		}
		ac.Hasher.DummyCompare(in.Password)
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	res := ac.Hasher.Verify(u.PasswordHash, in.Password)
	if res == password.Failure {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if res == password.SuccessRehashNeeded {
		// login is the next write opportunity; failure here is not fatal
		if h, err := ac.Hasher.Hash(in.Password); err == nil {
			if err := ac.Repo.UpdateUserHash(ctx, u.ID, h); err != nil {
				ac.Log.Warn("rehash persist failed", zap.Uint("userId", u.ID), zap.Error(err))
			}
		}
	}
	if in.Password == password.DefaultPassword() {
		ac.Log.Warn("login with default password", zap.Uint("userId", u.ID))
	}

	if err := ac.issueSession(ctx, c.Writer, u.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	v, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), v.(uint))
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.setAppCookie(c.Writer, "", -1)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
