package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func loggedRequest(t *testing.T, status int, userID string) observer.LoggedEntry {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/items", func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextKeyUserID, userID)
		}
		c.Status(status)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items?tag=ai", nil))

	require.Equal(t, 1, logs.Len())
	return logs.All()[0]
}

func TestLoggerIncludesAuthenticatedUser(t *testing.T) {
	entry := loggedRequest(t, http.StatusOK, "user-1")
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "/items?tag=ai", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestLoggerAnonymousRequestOmitsUserID(t *testing.T) {
	entry := loggedRequest(t, http.StatusOK, "")
	_, present := entry.ContextMap()["user_id"]
	assert.False(t, present)
}

func TestLoggerLevelTracksStatus(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, loggedRequest(t, http.StatusNotFound, "").Level)
	assert.Equal(t, zapcore.ErrorLevel, loggedRequest(t, http.StatusInternalServerError, "").Level)
}
