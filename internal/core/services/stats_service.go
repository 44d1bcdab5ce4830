package services

import (
	"context"
	"fmt"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
)

// HabitStat summarizes one habit's week.
type HabitStat struct {
	HabitID        string         `json:"habit_id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	Color          string         `json:"color"`
	Streak         int            `json:"streak"`
	DaysCompleted  int            `json:"days_completed"`
	CompletionRate int            `json:"completion_rate"`
	DoneToday      bool           `json:"done_today"`
	Today          domain.Weekday `json:"today"`
}

// WeeklyStats aggregates the active week across all of a user's habits.
type WeeklyStats struct {
	TotalHabits    int         `json:"total_habits"`
	BestStreak     int         `json:"best_streak"`
	OverallRate    int         `json:"overall_rate"`
	CompletedToday int         `json:"completed_today"`
	HabitStats     []HabitStat `json:"habit_stats"`
}

type StatsService struct {
	habits HabitLister
}

func NewStatsService(habits HabitLister) *StatsService {
	return &StatsService{habits: habits}
}

// WeeklyStats derives the per-habit and overall figures for one user. Pure
// over the stored week flags; nothing is persisted.
func (s *StatsService) WeeklyStats(ctx context.Context, userID string) (*WeeklyStats, error) {
	habits, err := s.habits.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats service: failed to read habits: %w", err)
	}

	today := domain.Today()

	stats := &WeeklyStats{
		TotalHabits: len(habits),
		HabitStats:  make([]HabitStat, 0, len(habits)),
	}

	totalDone := 0
	for _, h := range habits {
		done := 0
		for _, day := range domain.Weekdays() {
			if h.Done(day) {
				done++
			}
		}
		totalDone += done

		streak := h.Streak()
		if streak > stats.BestStreak {
			stats.BestStreak = streak
		}
		if h.Done(today) {
			stats.CompletedToday++
		}

		stats.HabitStats = append(stats.HabitStats, HabitStat{
			HabitID:        h.ID,
			Name:           h.Name,
			Category:       h.Category,
			Color:          h.Color,
			Streak:         streak,
			DaysCompleted:  done,
			CompletionRate: h.CompletionPercent(),
			DoneToday:      h.Done(today),
			Today:          today,
		})
	}

	if len(habits) > 0 {
		stats.OverallRate = int(float64(totalDone)/float64(len(habits)*7)*100 + 0.5)
	}

	return stats, nil
}
