package controllers

import (
	"net/http"

	"library-api/app"
	"library-api/models"
	"library-api/password"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

type userRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	UserType  string `json:"userType" binding:"required"`

	// Optional on create (the default password applies) and on update
	// (empty leaves the stored hash alone).
	Password string `json:"password"`
}

func (in *userRequest) model() *models.User {
	return &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		UserType:  in.UserType,
	}
}

// GET /users
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.Repo.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// POST /users
func (uc *UserController) CreateUser(c *gin.Context) {
	var in userRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	plaintext := in.Password
	if plaintext == "" {
		plaintext = password.DefaultPassword()
	}
	hash, err := uc.Hasher.Hash(plaintext)
	if err != nil {
		respondError(c, err)
		return
	}

	u := in.model()
	u.PasswordHash = hash
	if err := uc.Repo.CreateUser(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}
	// PasswordHash is json:"-", the response never carries it
	c.JSON(http.StatusOK, u)
}

// PUT /users/:id
func (uc *UserController) UpdateUser(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	var in userRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	newHash := ""
	if in.Password != "" {
		h, err := uc.Hasher.Hash(in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		newHash = h
	}

	changed, err := uc.Repo.UpdateUser(c.Request.Context(), id, in.model(), newHash)
	if err != nil {
		respondError(c, err)
		return
	}
	if !changed {
		c.Status(http.StatusNotModified)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	if err := uc.Repo.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	// the row is gone, any live sessions must go with it
	if err := uc.AppSess.RevokeAllForUser(c.Request.Context(), id); err != nil {
		uc.Log.Warn("revoke sessions after user delete", zap.Uint("userId", id), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}
