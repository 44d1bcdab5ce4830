package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrHabitNameTooShort = errors.New("habit name must be at least 2 characters long")
	ErrHabitNameTooLong  = errors.New("habit name must be less than 50 characters")
	ErrInvalidDay        = errors.New("invalid day (must be monday through sunday)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	MinNameLen = 2
	MaxNameLen = 50

	DefaultCategory = "Other"
	DefaultColor    = "#3B82F6"
)

// Weekday is one of the seven fixed lowercase day keys. The tracking week is
// anchored at monday; there is no cross-week history.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the seven keys in week order. Streak walks this order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func ValidWeekday(day Weekday) bool {
	switch day {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Today returns the weekday key for the current local date.
func Today() Weekday {
	return Weekday(strings.ToLower(time.Now().Weekday().String()))
}

// Categories is the fixed enumerated set a habit may belong to.
func Categories() []string {
	return []string{
		"Fitness", "Health", "Study", "Work", "Personal",
		"Mindfulness", "Social", "Hobby", "Finance", "Other",
	}
}

func validCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Habit is a weekly-tracked activity owned by a single user. Ownership is
// recorded by the partition the habit is filed under, not on the habit itself.
type Habit struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Color         string           `json:"color"`
	CreatedAt     time.Time        `json:"createdAt"`
	CompletedDays map[Weekday]bool `json:"completedDays"`
}

// NewHabit validates the name and builds a habit with all seven day flags
// initialized to false. Unknown categories and malformed colors are coerced
// to defaults rather than rejected: only the name bound can fail.
func NewHabit(name, category, color string) (*Habit, error) {
	trimmed := strings.TrimSpace(name)
	// Bounds count characters, not bytes, so multibyte names measure the same
	// as they do on the client.
	if utf8.RuneCountInString(trimmed) < MinNameLen {
		return nil, ErrHabitNameTooShort
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return nil, ErrHabitNameTooLong
	}

	if !validCategory(category) {
		category = DefaultCategory
	}
	if !colorRegex.MatchString(color) {
		color = DefaultColor
	}

	return &Habit{
		ID:            uuid.NewString(),
		Name:          trimmed,
		Category:      category,
		Color:         color,
		CreatedAt:     time.Now().UTC(),
		CompletedDays: emptyWeek(),
	}, nil
}

func emptyWeek() map[Weekday]bool {
	week := make(map[Weekday]bool, 7)
	for _, d := range Weekdays() {
		week[d] = false
	}
	return week
}

// Valid reports whether a persisted habit record is structurally usable.
// Loading drops anything that fails this, it never repairs.
func (h *Habit) Valid() bool {
	return h != nil && h.ID != "" && h.Name != "" && h.CompletedDays != nil
}

// Done reports the flag for one day, treating absent entries as false.
func (h *Habit) Done(day Weekday) bool {
	if h == nil || h.CompletedDays == nil {
		return false
	}
	return h.CompletedDays[day]
}

// Toggle flips a single day flag.
func (h *Habit) Toggle(day Weekday) error {
	if !ValidWeekday(day) {
		return ErrInvalidDay
	}
	if h.CompletedDays == nil {
		h.CompletedDays = emptyWeek()
	}
	h.CompletedDays[day] = !h.CompletedDays[day]
	return nil
}

// Streak counts consecutive completed days from monday, stopping at the
// first miss. It resets every week: prior weeks carry nothing over.
func (h *Habit) Streak() int {
	if h == nil || h.CompletedDays == nil {
		return 0
	}

	streak := 0
	for _, day := range Weekdays() {
		if !h.CompletedDays[day] {
			break
		}
		streak++
	}
	return streak
}

// CompletionPercent is the share of the seven days marked done, rounded to
// the nearest whole percent.
func (h *Habit) CompletionPercent() int {
	if h == nil || h.CompletedDays == nil {
		return 0
	}

	done := 0
	for _, day := range Weekdays() {
		if h.CompletedDays[day] {
			done++
		}
	}
	return int(float64(done)/7.0*100 + 0.5)
}

// Suggestion is a starter habit offered to new users.
type Suggestion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

func HabitSuggestions() []Suggestion {
	return []Suggestion{
		{Name: "Drink 8 glasses of water", Category: "Health", Color: "#06B6D4"},
		{Name: "Exercise for 30 minutes", Category: "Fitness", Color: "#10B981"},
		{Name: "Read for 20 minutes", Category: "Study", Color: "#8B5CF6"},
		{Name: "Meditate for 10 minutes", Category: "Mindfulness", Color: "#EC4899"},
		{Name: "Write in journal", Category: "Personal", Color: "#F97316"},
		{Name: "Take vitamins", Category: "Health", Color: "#EAB308"},
		{Name: "Go for a walk", Category: "Fitness", Color: "#059669"},
		{Name: "Practice gratitude", Category: "Mindfulness", Color: "#6366F1"},
		{Name: "Learn a new word", Category: "Study", Color: "#3B82F6"},
		{Name: "Call family/friends", Category: "Social", Color: "#EF4444"},
	}
}
