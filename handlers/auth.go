package handlers

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
	"github.com/Harsh-cyber005/paisafy-server/mongodb"
)

type signupRequest struct {
	FullName string `json:"fullName" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		h.serverError(c, "hash password", err)
		return
	}

	user := &models.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   string(hashed),
		IncomeType: models.IncomeTypeMonthly,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if mongodb.IsDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this email already exists."})
			return
		}
		h.serverError(c, "create user", err)
		return
	}

	logger.Get().Info("user registered", zap.String("email", user.Email))
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.serverError(c, "fetch user", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials."})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials."})
		return
	}

	h.respondWithToken(c, user)
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.serverError(c, "fetch user", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	otp, err := generateOTP()
	if err != nil {
		h.serverError(c, "generate otp", err)
		return
	}
	expires := time.Now().Add(10 * time.Minute)
	if err := h.store.SetUserOTP(c.Request.Context(), user.Email, otp, expires); err != nil {
		h.serverError(c, "store otp", err)
		return
	}

	if err := h.mail.SendOTP(user.Email, user.FullName, otp); err != nil {
		h.serverError(c, "send otp mail", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email."})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.GetUserByEmailAndOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.serverError(c, "verify otp", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP. Please try logging in again."})
		return
	}

	if err := h.store.ClearUserOTP(c.Request.Context(), user.Email); err != nil {
		h.serverError(c, "clear otp", err)
		return
	}

	h.respondWithToken(c, user)
}

// InitDetails returns the minimal profile the app needs right after login.
func (h *Handler) InitDetails(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":          user.Email,
		"fullName":       user.FullName,
		"onboardingDone": user.OnboardingDone,
	})
}

func (h *Handler) respondWithToken(c *gin.Context, user *models.User) {
	token, err := h.signToken(user.Email)
	if err != nil {
		h.serverError(c, "sign token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
		},
	})
}

func (h *Handler) signToken(email string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.JWTExpiration)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(n.Int64() + 100000).String(), nil
}
