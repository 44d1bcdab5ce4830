package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
	"github.com/RishabJha134/habitforge-engine/internal/core/store"
)

type HabitHandler struct {
	habits *store.HabitStore
}

func NewHabitHandler(habits *store.HabitStore) *HabitHandler {
	return &HabitHandler{habits: habits}
}

type createHabitRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

type toggleDayRequest struct {
	Day string `json:"day" binding:"required"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.POST("/:id/toggle", h.ToggleDay)
		habits.GET("/:id/streak", h.Streak)
		habits.DELETE("/:id", h.Delete)
		habits.DELETE("", h.ClearAll)
	}

	router.GET("/suggestions", h.Suggestions)
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.habits.Add(c.Request.Context(), store.AddHabitInput{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
	})
	if err != nil {
		if errors.Is(err, domain.ErrHabitNameTooShort) || errors.Is(err, domain.ErrHabitNameTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if habit == nil {
		// No active session: the store treats this as a safe no-op.
		c.JSON(http.StatusConflict, gin.H{"error": "no active session"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	list := h.habits.Habits()
	if list == nil {
		list = []*domain.Habit{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) ToggleDay(c *gin.Context) {
	id := c.Param("id")

	var req toggleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.habits.ToggleDay(c.Request.Context(), id, domain.Weekday(req.Day))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDay) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	habit, err := h.habits.Get(id)
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Streak(c *gin.Context) {
	habit, err := h.habits.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habit_id": habit.ID,
		"streak":   h.habits.StreakOf(habit),
	})
}

func (h *HabitHandler) Delete(c *gin.Context) {
	// Deleting an unknown id is idempotent, so this always reports success.
	h.habits.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) ClearAll(c *gin.Context) {
	h.habits.ClearAll(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, domain.HabitSuggestions())
}
