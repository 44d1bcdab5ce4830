package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: creates habit with empty week and defaults", func(t *testing.T) {
		h, err := domain.NewHabit("Read", "Study", "#8B5CF6")

		assert.Nil(t, err)
		assert.NotNil(t, h)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Read", h.Name)
		assert.Equal(t, "Study", h.Category)
		assert.Equal(t, "#8B5CF6", h.Color)
		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)

		assert.Len(t, h.CompletedDays, 7)
		for _, day := range domain.Weekdays() {
			assert.False(t, h.CompletedDays[day])
		}
	})

	t.Run("Success: trims surrounding whitespace", func(t *testing.T) {
		h, err := domain.NewHabit("  Morning run  ", "Fitness", "")

		assert.Nil(t, err)
		assert.Equal(t, "Morning run", h.Name)
	})

	t.Run("Success: unset category and color fall back to defaults", func(t *testing.T) {
		h, err := domain.NewHabit("Meditate", "", "")

		assert.Nil(t, err)
		assert.Equal(t, domain.DefaultCategory, h.Category)
		assert.Equal(t, domain.DefaultColor, h.Color)
	})

	t.Run("Success: unknown category and malformed color are coerced, not rejected", func(t *testing.T) {
		h, err := domain.NewHabit("Meditate", "Sorcery", "blue")

		assert.Nil(t, err)
		assert.Equal(t, domain.DefaultCategory, h.Category)
		assert.Equal(t, domain.DefaultColor, h.Color)
	})

	t.Run("Error: one character after trim is too short", func(t *testing.T) {
		_, err := domain.NewHabit(" A ", "Study", "")
		assert.Equal(t, domain.ErrHabitNameTooShort, err)
	})

	t.Run("Error: single multibyte character is still one character", func(t *testing.T) {
		_, err := domain.NewHabit("Ä", "Study", "")
		assert.Equal(t, domain.ErrHabitNameTooShort, err)
	})

	t.Run("Success: 50 multibyte characters fit the upper bound", func(t *testing.T) {
		h, err := domain.NewHabit(strings.Repeat("é", 50), "Study", "")

		assert.Nil(t, err)
		assert.Equal(t, strings.Repeat("é", 50), h.Name)
	})

	t.Run("Error: empty name", func(t *testing.T) {
		_, err := domain.NewHabit("   ", "Study", "")
		assert.Equal(t, domain.ErrHabitNameTooShort, err)
	})

	t.Run("Error: name over 50 characters", func(t *testing.T) {
		_, err := domain.NewHabit(strings.Repeat("x", 51), "Study", "")
		assert.Equal(t, domain.ErrHabitNameTooLong, err)
	})
}

func TestHabit_Toggle(t *testing.T) {
	t.Run("Success: toggling twice is an involution", func(t *testing.T) {
		h, _ := domain.NewHabit("Read", "Study", "")

		assert.Nil(t, h.Toggle(domain.Monday))
		assert.True(t, h.Done(domain.Monday))

		assert.Nil(t, h.Toggle(domain.Monday))
		assert.False(t, h.Done(domain.Monday))
	})

	t.Run("Error: invalid day key", func(t *testing.T) {
		h, _ := domain.NewHabit("Read", "Study", "")
		assert.Equal(t, domain.ErrInvalidDay, h.Toggle(domain.Weekday("funday")))
	})
}

func TestHabit_Streak(t *testing.T) {
	week := func(days ...domain.Weekday) map[domain.Weekday]bool {
		m := make(map[domain.Weekday]bool, 7)
		for _, d := range domain.Weekdays() {
			m[d] = false
		}
		for _, d := range days {
			m[d] = true
		}
		return m
	}

	t.Run("stops at first false", func(t *testing.T) {
		h := &domain.Habit{ID: "h1", Name: "Read",
			CompletedDays: week(domain.Monday, domain.Tuesday, domain.Thursday)}

		assert.Equal(t, 2, h.Streak())
	})

	t.Run("zero when monday is missed", func(t *testing.T) {
		h := &domain.Habit{ID: "h1", Name: "Read",
			CompletedDays: week(domain.Tuesday, domain.Wednesday)}

		assert.Equal(t, 0, h.Streak())
	})

	t.Run("full week", func(t *testing.T) {
		h := &domain.Habit{ID: "h1", Name: "Read", CompletedDays: week(domain.Weekdays()...)}

		assert.Equal(t, 7, h.Streak())
	})

	t.Run("zero for nil or malformed habit", func(t *testing.T) {
		var nilHabit *domain.Habit
		assert.Equal(t, 0, nilHabit.Streak())
		assert.Equal(t, 0, (&domain.Habit{ID: "h1", Name: "Read"}).Streak())
	})
}

func TestHabit_CompletionPercent(t *testing.T) {
	h, _ := domain.NewHabit("Read", "Study", "")

	assert.Equal(t, 0, h.CompletionPercent())

	_ = h.Toggle(domain.Monday)
	_ = h.Toggle(domain.Tuesday)
	_ = h.Toggle(domain.Saturday)

	assert.Equal(t, 43, h.CompletionPercent())
}

func TestHabit_Valid(t *testing.T) {
	h, _ := domain.NewHabit("Read", "Study", "")
	assert.True(t, h.Valid())

	assert.False(t, (&domain.Habit{Name: "Read", CompletedDays: map[domain.Weekday]bool{}}).Valid())
	assert.False(t, (&domain.Habit{ID: "h1", CompletedDays: map[domain.Weekday]bool{}}).Valid())
	assert.False(t, (&domain.Habit{ID: "h1", Name: "Read"}).Valid())

	var nilHabit *domain.Habit
	assert.False(t, nilHabit.Valid())
}

func TestHabitSuggestions(t *testing.T) {
	suggestions := domain.HabitSuggestions()

	assert.Len(t, suggestions, 10)
	for _, s := range suggestions {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Category)
		assert.NotEmpty(t, s.Color)
	}
}
