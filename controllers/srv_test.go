package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"library-api/db"
	"library-api/password"
	"library-api/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the real controllers against in-memory SQLite and
// miniredis, with the same route table main registers.
func newTestServer(t *testing.T) (*gin.Engine, *Srv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := &Srv{
		Repo:       db.NewRepo(conn),
		Hasher:     password.NewHasher(bcrypt.MinCost),
		AppSess:    session.NewAppSessionStore(rdb, time.Hour),
		Log:        zap.NewNop(),
		WebOrigin:  "http://localhost:3000",
		SessionTTL: time.Hour,
	}

	r := gin.New()
	RegisterOn(r, s)

	return r, s
}

func perform(r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func seedBook(t *testing.T, r *gin.Engine, isbn string, stock int) map[string]any {
	t.Helper()
	w := perform(r, http.MethodPost, "/books", gin.H{
		"title": "Book " + isbn, "author": "Author", "isbn": isbn,
		"year": 2020, "stock": stock,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func seedUser(t *testing.T, r *gin.Engine, email, pw string) map[string]any {
	t.Helper()
	body := gin.H{
		"firstName": "Test", "lastName": "User",
		"email": email, "userType": "Student",
	}
	if pw != "" {
		body["password"] = pw
	}
	w := perform(r, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}
