package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(log))
	router.GET("/menu", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	t.Run("logs successful requests at info", func(t *testing.T) {
		logs.TakeAll()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu?lang=ar", nil))

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
	})

	t.Run("logs 5xx responses at error", func(t *testing.T) {
		logs.TakeAll()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, logs.TakeAll(), 1)
}

func TestFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// Missing logger falls back to a nop
	assert.NotNil(t, FromGin(c))

	log := zap.NewNop()
	c.Set("logger", log)
	assert.Equal(t, log, FromGin(c))
}
