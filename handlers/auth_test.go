package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harsh-cyber005/paisafy-server/config"
	"github.com/Harsh-cyber005/paisafy-server/middleware"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// postJSON runs a single handler against a JSON body and returns the recorder.
func postJSON(handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed.", resp.Message)
	return resp.Errors
}

func TestSignupValidation(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.Signup, gin.H{"fullName": "A", "email": "not-an-email", "password": "short"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeErrors(t, w)
	assert.Contains(t, errs, "FullName")
	assert.Equal(t, "Please provide a valid email address", errs["Email"])
	assert.Equal(t, "Password must be at least 8 characters long", errs["Password"])
}

func TestSignupRejectsMissingBody(t *testing.T) {
	h := &Handler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body.")
}

func TestLoginValidation(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.Login, gin.H{"email": "user@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeErrors(t, w)
	assert.Equal(t, "Password is required", errs["Password"])
}

func TestVerifyOTPValidation(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.VerifyOTP, gin.H{"email": "user@example.com", "otp": "12ab56"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeErrors(t, w)
	assert.Contains(t, errs, "OTP")
}

func TestInitDetailsWithoutPrincipal(t *testing.T) {
	h := &Handler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h.InitDetails(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized.")
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestSignTokenRoundTrip(t *testing.T) {
	h := &Handler{cfg: &config.Config{JWTSecret: "round-trip-secret", JWTExpiration: time.Hour}}

	token, err := h.signToken("user@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.Auth(h.cfg.JWTSecret))
	router.GET("/whoami", func(c *gin.Context) {
		claims, ok := middleware.Principal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestSignTokenExpiration(t *testing.T) {
	h := &Handler{cfg: &config.Config{JWTSecret: "exp-secret", JWTExpiration: 30 * time.Minute}}

	token, err := h.signToken("user@example.com")
	require.NoError(t, err)

	claims := &models.Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("exp-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}
