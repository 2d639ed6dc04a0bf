package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestIntQuery(t *testing.T) {
	c := queryContext("page=3&limit=25")
	assert.Equal(t, 3, intQuery(c, "page", 1))
	assert.Equal(t, 25, intQuery(c, "limit", 10))
}

func TestIntQueryFallsBackOnNonPositive(t *testing.T) {
	// Zero must not survive: a zero limit divides by zero computing total
	// pages, and a zero page turns into a negative skip.
	c := queryContext("page=0&limit=0&month=-2")
	assert.Equal(t, 1, intQuery(c, "page", 1))
	assert.Equal(t, 10, intQuery(c, "limit", 10))
	assert.Equal(t, 0, intQuery(c, "month", 0))
}

func TestIntQueryFallsBackOnGarbage(t *testing.T) {
	c := queryContext("page=abc&limit=")
	assert.Equal(t, 1, intQuery(c, "page", 1))
	assert.Equal(t, 10, intQuery(c, "limit", 10))
}
