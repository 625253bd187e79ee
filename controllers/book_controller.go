package controllers

import (
	"net/http"

	"library-api/app"
	"library-api/models"

	"github.com/gin-gonic/gin"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

type bookRequest struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Publisher string `json:"publisher"`
	ISBN      string `json:"isbn" binding:"required"`
	Year      int    `json:"year" binding:"required"`
	Category  string `json:"category"`
	Stock     int    `json:"stock"`
}

func (in *bookRequest) model() *models.Book {
	return &models.Book{
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		ISBN:      in.ISBN,
		Year:      in.Year,
		Category:  in.Category,
		Stock:     in.Stock,
	}
}

// GET /books?titleFilter=&authorFilter=
func (bc *BookController) ListBooks(c *gin.Context) {
	books, err := bc.Repo.ListBooks(c.Request.Context(), c.Query("titleFilter"), c.Query("authorFilter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GET /books/:id
func (bc *BookController) GetBook(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /books
func (bc *BookController) CreateBook(c *gin.Context) {
	var in bookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b := in.model()
	if err := bc.Repo.CreateBook(c.Request.Context(), b); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /books/:id
func (bc *BookController) UpdateBook(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	var in bookRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	changed, err := bc.Repo.UpdateBook(c.Request.Context(), id, in.model())
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

// DELETE /books/:id
func (bc *BookController) DeleteBook(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	if err := bc.Repo.DeleteBook(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
