package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"example.com/bookstore/internal/service"
)

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// fail maps service errors onto status codes. Unknown errors are logged and
// hidden behind a 500.
func fail(c *gin.Context, err error) {
	var stockErr *service.StockError
	switch {
	case errors.Is(err, service.ErrNotFound):
		message(c, http.StatusNotFound, "not found")
	case errors.As(err, &stockErr):
		message(c, http.StatusBadRequest, stockErr.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message(c, http.StatusInternalServerError, "internal error")
	}
}

func badRequest(c *gin.Context, err error) {
	message(c, http.StatusBadRequest, "invalid request: "+describe(err))
}

// pathID reads the :id parameter. Anything but a positive integer is
// answered with 404, as no such resource can exist.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		message(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

func price(cents int64) float64 { return float64(cents) / 100.0 }

func cents(amount float64) int64 { return int64(math.Round(amount * 100)) }

func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
