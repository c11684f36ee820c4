package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	e := echo.New()

	handler := func(c echo.Context) error {
		reqID, ok := c.Get(XRequestID).(string)
		require.True(t, ok)
		assert.Equal(t, reqID, RequestIDFromContext(c.Request().Context()))
		return c.String(http.StatusOK, reqID)
	}

	t.Run("reuses incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(XRequestID, "custom-request-id")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequestID()(handler)(c)
		require.NoError(t, err)

		assert.Equal(t, "custom-request-id", rec.Body.String())
		assert.Equal(t, "custom-request-id", rec.Header().Get(XRequestID))
	})

	t.Run("generates one when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequestID()(handler)(c)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get(XRequestID))
	})
}
