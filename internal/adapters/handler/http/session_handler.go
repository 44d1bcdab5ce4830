package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
	"github.com/RishabJha134/habitforge-engine/internal/core/services"
	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

type SessionHandler struct {
	sessions *store.SessionStore
	habits   *store.HabitStore
	tokens   *services.TokenService
}

func NewSessionHandler(sessions *store.SessionStore, habits *store.HabitStore, tokens *services.TokenService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		habits:   habits,
		tokens:   tokens,
	}
}

type loginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID            string    `json:"id"`
	Mobile        string    `json:"mobile"`
	DisplayMobile string    `json:"displayMobile"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:            user.ID,
		Mobile:        user.Mobile,
		DisplayMobile: domain.FormatMobile(user.Mobile),
		CreatedAt:     user.CreatedAt,
	}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	session := router.Group("/session")
	{
		session.POST("", h.Login)
		session.GET("", h.Current)
		session.DELETE("", h.Logout)
	}
}

// Login authenticates a (mobile, PIN) pair, registering the account on first
// sight of an unseen mobile. The 10-digit/4-digit format check is the
// presentation contract the original login form enforced; the store below
// only requires non-empty inputs.
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": store.MsgInputRequired})
		return
	}

	if !domain.ValidMobile(req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": domain.ErrInvalidMobile.Error()})
		return
	}
	if !domain.ValidPIN(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": domain.ErrInvalidPIN.Error()})
		return
	}

	result := h.sessions.Login(c.Request.Context(), req.Mobile, req.Password)
	if !result.Success {
		status := http.StatusUnauthorized
		if result.Message == store.MsgInputRequired {
			status = http.StatusBadRequest
		} else if result.Message == store.MsgLoginFailed {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"success": false, "message": result.Message})
		return
	}

	// The habit collection follows the active user identity.
	h.habits.LoadForUser(c.Request.Context(), result.User.ID)

	token, err := h.tokens.GenerateToken(result.User.ID)
	if err != nil {
		log.Printf("session handler: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": store.MsgLoginFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"token":   token,
		"user":    newUserResponse(result.User),
	})
}

func (h *SessionHandler) Current(c *gin.Context) {
	user := h.sessions.Current()
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout clears the session and empties the in-memory habit collection.
// Idempotent: logging out twice is fine.
func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	h.habits.LoadForUser(c.Request.Context(), "")

	c.Status(http.StatusNoContent)
}
