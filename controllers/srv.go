// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"library-api/app"
	"library-api/db"
	"library-api/password"
	"library-api/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Srv struct {
	Repo       *db.Repo
	Hasher     *password.Hasher
	AppSess    *session.AppSessionStore
	Log        *zap.Logger
	WebOrigin  string
	SessionTTL time.Duration
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:       db.NewRepo(a.DB),
		Hasher:     a.Hasher,
		AppSess:    a.AppSessions(),
		Log:        a.Log,
		WebOrigin:  a.Config.WebOrigin,
		SessionTTL: a.Config.SessionTTL,
	}
}

// --- helpers ---

// respondError maps error kinds to transport codes; controllers never look
// at driver-level errors.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrConflict):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrBusinessRule), errors.Is(err, db.ErrValidation):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

// idParam parses the :id path segment. Zero means it already answered 400.
func idParam(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid id"})
		return 0
	}
	return uint(id)
}

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAgeSec int) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   maxAgeSec,
	})
}

func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID uint) error {
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, int(s.SessionTTL/time.Second))
	return nil
}

// RegisterOn wires the full route table onto r. main and the controller
// tests share this one table so they cannot drift apart.
func RegisterOn(r *gin.Engine, s *Srv) {
	bookCtl := NewBookController(s)
	userCtl := NewUserController(s)
	loanCtl := NewLoanController(s)
	authCtl := NewAuthController(s)

	authMW := app.AuthRequired(s.AppSess, s.Repo)

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })

	books := r.Group("/books")
	{
		books.GET("", bookCtl.ListBooks) // ?titleFilter=&authorFilter=
		books.GET("/:id", bookCtl.GetBook)
		books.POST("", bookCtl.CreateBook)
		books.PUT("/:id", bookCtl.UpdateBook)
		books.DELETE("/:id", bookCtl.DeleteBook)
	}

	users := r.Group("/users")
	{
		users.GET("", userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser)
		users.POST("", userCtl.CreateUser)
		users.POST("/validate", authCtl.Validate)
		users.PUT("/:id", userCtl.UpdateUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	loans := r.Group("/loans")
	{
		loans.GET("", loanCtl.ListLoans) // ?status=&userId=&bookId=
		loans.GET("/:id", loanCtl.GetLoan)
		loans.POST("", loanCtl.CreateLoan)
		loans.PUT("/:id", loanCtl.UpdateLoan)
		loans.DELETE("/:id", loanCtl.DeleteLoan)
	}

	auth := r.Group("/auth")
	{
		auth.GET("/me", authMW, authCtl.Me)
		// logout only needs the cookie, not a live session
		auth.POST("/logout", authCtl.Logout)
	}
}
