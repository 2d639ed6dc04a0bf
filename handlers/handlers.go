// Package handlers wires the HTTP surface: one file per resource, every
// handler a method on Handler so the store, cache and external clients are
// injected once at startup.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/config"
	"github.com/Harsh-cyber005/paisafy-server/llm"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/mailer"
	"github.com/Harsh-cyber005/paisafy-server/middleware"
	"github.com/Harsh-cyber005/paisafy-server/models"
	"github.com/Harsh-cyber005/paisafy-server/mongodb"
	"github.com/Harsh-cyber005/paisafy-server/recurring"
)

type Handler struct {
	store  *mongodb.Store
	cache  *cache.Cache
	syncer *recurring.Syncer
	llm    *llm.Client
	mail   *mailer.Mailer
	cfg    *config.Config
}

func New(store *mongodb.Store, c *cache.Cache, syncer *recurring.Syncer, llmClient *llm.Client, mail *mailer.Mailer, cfg *config.Config) *Handler {
	return &Handler{
		store:  store,
		cache:  c,
		syncer: syncer,
		llm:    llmClient,
		mail:   mail,
		cfg:    cfg,
	}
}

// bindJSON decodes and validates the request body, answering 400 with
// field-level messages on failure.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = validationMessage(fe)
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed.", "errors": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be a positive number", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// principalOr401 returns the authenticated claims or answers 401.
func (h *Handler) principalOr401(c *gin.Context) (*models.Claims, bool) {
	claims, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return nil, false
	}
	return claims, true
}

// currentUser resolves the authenticated principal to its user document. On
// failure it has already written the response.
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return nil, false
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		h.serverError(c, "fetch user", err)
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return nil, false
	}
	return user, true
}

// serverError logs the cause and answers a generic 500; the raw error never
// reaches the client.
func (h *Handler) serverError(c *gin.Context, op string, err error) {
	logger.Get().Error("request failed",
		zap.String("op", op),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"message": what + " not found or access denied."})
}
