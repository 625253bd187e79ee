package db

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"library-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo opens a per-test in-memory SQLite database and runs the real
// migration against it. cache=shared keeps every pooled connection on the
// same database.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepo(conn)
}

func mustCreateBook(t *testing.T, r *Repo, isbn string, stock int) *models.Book {
	t.Helper()
	b := &models.Book{
		Title:  "Test Book " + isbn,
		Author: "Test Author",
		ISBN:   isbn,
		Year:   2020,
		Stock:  stock,
	}
	require.NoError(t, r.CreateBook(context.Background(), b))
	return b
}

func mustCreateUser(t *testing.T, r *Repo, email string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		UserType:     models.TypeStudent,
		PasswordHash: "$2a$04$test.hash.placeholder.0000000000000000000000000000000",
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func bookStock(t *testing.T, r *Repo, id uint) int {
	t.Helper()
	b, err := r.FindBookByID(context.Background(), id)
	require.NoError(t, err)
	return b.Stock
}

func futureDate() time.Time { return time.Now().UTC().Add(7 * 24 * time.Hour) }
