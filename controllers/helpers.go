package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	middleware "github.com/phillip/pet-adoption-go/middleware"
	services "github.com/phillip/pet-adoption-go/services"
)

const (
	docTimeout  = 5 * time.Second
	listTimeout = 10 * time.Second
)

// statusFor maps a service error onto its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrNotModified):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// message picks the text shown to the caller: validation errors explain
// themselves, everything else gets the handler's own wording.
func message(err error, fallback string) string {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return fallback
}

func logError(c *gin.Context, what string, err error) {
	log.Printf("[%s] %s %s: %s: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.Request.URL.Path, what, err)
}

func withTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(c *gin.Context, key string, def int64) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
