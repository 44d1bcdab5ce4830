package services

import (
	"context"
	"fmt"
	"time"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
)

const exportFormatVersion = "1.0.0"

// HabitLister reads one user's persisted habit partition. Satisfied by the
// habit store.
type HabitLister interface {
	ListForUser(ctx context.Context, userID string) ([]*domain.Habit, error)
}

// ExportData is the user-triggered JSON dump of a single profile: the account
// with the password redacted, the habit list, an export timestamp and a fixed
// format-version string.
type ExportData struct {
	User       domain.User     `json:"user"`
	Habits     []*domain.Habit `json:"habits"`
	ExportDate time.Time       `json:"exportDate"`
	Version    string          `json:"version"`
}

type ExportService struct {
	users  UserFinder
	habits HabitLister
}

func NewExportService(users UserFinder, habits HabitLister) *ExportService {
	return &ExportService{
		users:  users,
		habits: habits,
	}
}

func (s *ExportService) Export(ctx context.Context, userID string) (*ExportData, error) {
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.habits.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export service: failed to read habits: %w", err)
	}
	if habits == nil {
		habits = []*domain.Habit{}
	}

	return &ExportData{
		User:       user.Redacted(),
		Habits:     habits,
		ExportDate: time.Now().UTC(),
		Version:    exportFormatVersion,
	}, nil
}
