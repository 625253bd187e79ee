package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCRUDSurface(t *testing.T) {
	r, _ := newTestServer(t)

	created := seedBook(t, r, "9780134190440", 2)
	id := int(created["id"].(float64))
	require.NotZero(t, id)

	w := perform(r, http.MethodGet, fmt.Sprintf("/books/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "9780134190440", got["isbn"])

	w = perform(r, http.MethodGet, "/books/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/books/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookListFilters(t *testing.T) {
	r, _ := newTestServer(t)
	seedBook(t, r, "i1", 1)
	seedBook(t, r, "i2", 1)

	w := perform(r, http.MethodGet, "/books?titleFilter=i1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	assert.Len(t, list, 1)
}

func TestCreateBookDuplicateISBNIs409(t *testing.T) {
	r, _ := newTestServer(t)
	seedBook(t, r, "dup-isbn", 1)

	w := perform(r, http.MethodPost, "/books", gin.H{
		"title": "Other", "author": "Other", "isbn": "dup-isbn", "year": 2019,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBookMissingFieldsIs400(t *testing.T) {
	r, _ := newTestServer(t)
	w := perform(r, http.MethodPost, "/books", gin.H{"title": "No author"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookOutcomeCodes(t *testing.T) {
	r, _ := newTestServer(t)
	created := seedBook(t, r, "isbn-1", 2)
	id := int(created["id"].(float64))

	payload := gin.H{
		"title": created["title"], "author": created["author"],
		"isbn": created["isbn"], "year": 2020, "stock": 2,
	}
	w := perform(r, http.MethodPut, fmt.Sprintf("/books/%d", id), payload)
	assert.Equal(t, http.StatusNotModified, w.Code)

	payload["stock"] = 7
	w = perform(r, http.MethodPut, fmt.Sprintf("/books/%d", id), payload)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(r, http.MethodPut, "/books/999", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteBookCodes(t *testing.T) {
	r, _ := newTestServer(t)
	created := seedBook(t, r, "isbn-1", 1)
	id := int(created["id"].(float64))

	w := perform(r, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(r, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
