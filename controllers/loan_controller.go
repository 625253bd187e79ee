package controllers

import (
	"net/http"
	"strconv"
	"time"

	"library-api/app"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// GET /loans?status=&userId=&bookId=
func (lc *LoanController) ListLoans(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("userId"), 10, 32)
	bookID, _ := strconv.ParseUint(c.Query("bookId"), 10, 32)
	ls, err := lc.Repo.ListLoans(c.Request.Context(), c.Query("status"), uint(userID), uint(bookID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ls)
}

// GET /loans/:id
func (lc *LoanController) GetLoan(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	l, err := lc.Repo.FindLoanByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /loans
func (lc *LoanController) CreateLoan(c *gin.Context) {
	var in struct {
		UserID  uint      `json:"userId" binding:"required"`
		BookID  uint      `json:"bookId" binding:"required"`
		DueDate time.Time `json:"dueDate" binding:"required"`
		Status  string    `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loan, err := lc.Repo.CreateLoan(c.Request.Context(), in.UserID, in.BookID, in.DueDate, in.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// PUT /loans/:id
func (lc *LoanController) UpdateLoan(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	var in struct {
		Status     string     `json:"status" binding:"required"`
		ReturnDate *time.Time `json:"returnDate"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	changed, err := lc.Repo.UpdateLoan(c.Request.Context(), id, in.Status, in.ReturnDate)
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

// DELETE /loans/:id
func (lc *LoanController) DeleteLoan(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		return
	}
	if err := lc.Repo.DeleteLoan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
