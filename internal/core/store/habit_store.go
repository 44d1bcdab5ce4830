package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/RishabJha134/habitforge-engine/internal/core/domain"
)

// AddHabitInput carries the caller-supplied fields for a new habit.
type AddHabitInput struct {
	Name     string
	Category string
	Color    string
}

// HabitStore owns the in-memory habit collection of the active user and keeps
// it synchronized with its persisted partition. Every operation requires an
// active session; without one each is a safe no-op that leaves state empty
// and reports no error.
//
// Write policy: each mutation re-reads the full persisted habit map, replaces
// only the active user's partition and writes the whole map back. That makes
// writes last-writer-wins at the granularity of one user's entire array.
type HabitStore struct {
	substrate Substrate
	sessions  *SessionStore

	mu     sync.RWMutex
	userID string
	habits []*domain.Habit
}

func NewHabitStore(substrate Substrate, sessions *SessionStore) *HabitStore {
	return &HabitStore{
		substrate: substrate,
		sessions:  sessions,
	}
}

// LoadForUser installs the persisted collection of one user as the in-memory
// state. Entries missing an id, a name or a well-formed completedDays object
// are dropped silently, not repaired. Must be re-invoked whenever the active
// user identity changes.
func (s *HabitStore) LoadForUser(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.habits = nil

	if userID == "" {
		return
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		log.Printf("habits: failed to load collection for user %s: %v", userID, err)
		return
	}

	for _, h := range all[userID] {
		if h.Valid() {
			s.habits = append(s.habits, h)
		} else {
			log.Printf("habits: dropping malformed entry for user %s", userID)
		}
	}
}

// Habits returns the active user's current collection.
func (s *HabitStore) Habits() []*domain.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Get returns one habit from the in-memory collection by id.
func (s *HabitStore) Get(habitID string) (*domain.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.habits {
		if h.ID == habitID {
			return h, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

// Add validates the name bound itself, builds the habit with all seven day
// flags false, appends it and persists the updated partition. Only the name
// can fail validation; category and color fall back to defaults.
func (s *HabitStore) Add(ctx context.Context, input AddHabitInput) (*domain.Habit, error) {
	user := s.sessions.Current()
	if user == nil {
		return nil, nil
	}

	habit, err := domain.NewHabit(input.Name, input.Category, input.Color)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(append([]*domain.Habit{}, s.habits...), habit)
	if err := s.persist(ctx, user.ID, updated); err != nil {
		log.Printf("habits: failed to persist after add: %v", err)
	}
	s.habits = updated

	return habit, nil
}

// ToggleDay flips one day flag on one habit and persists the updated array.
func (s *HabitStore) ToggleDay(ctx context.Context, habitID string, day domain.Weekday) error {
	user := s.sessions.Current()
	if user == nil {
		return nil
	}

	if !domain.ValidWeekday(day) {
		return domain.ErrInvalidDay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.habits {
		if h.ID != habitID {
			continue
		}
		if err := h.Toggle(day); err != nil {
			return err
		}
		if err := s.persist(ctx, user.ID, s.habits); err != nil {
			log.Printf("habits: failed to persist after toggle: %v", err)
		}
		return nil
	}

	return domain.ErrHabitNotFound
}

// Delete removes a habit from the collection. Deleting an unknown id is a
// no-op; the persisted array is rewritten either way.
func (s *HabitStore) Delete(ctx context.Context, habitID string) {
	user := s.sessions.Current()
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]*domain.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if h.ID != habitID {
			updated = append(updated, h)
		}
	}

	if err := s.persist(ctx, user.ID, updated); err != nil {
		log.Printf("habits: failed to persist after delete: %v", err)
	}
	s.habits = updated
}

// ClearAll empties the active user's collection and persists an empty array.
func (s *HabitStore) ClearAll(ctx context.Context) {
	user := s.sessions.Current()
	if user == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, user.ID, []*domain.Habit{}); err != nil {
		log.Printf("habits: failed to persist after clear: %v", err)
	}
	s.habits = nil
}

// StreakOf is a pure derivation over one habit's week; see Habit.Streak.
func (s *HabitStore) StreakOf(habit *domain.Habit) int {
	return habit.Streak()
}

// ListForUser reads one user's persisted partition directly, bypassing the
// in-memory collection. Used by export, which may target any account.
func (s *HabitStore) ListForUser(ctx context.Context, userID string) ([]*domain.Habit, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	valid := make([]*domain.Habit, 0, len(all[userID]))
	for _, h := range all[userID] {
		if h.Valid() {
			valid = append(valid, h)
		}
	}
	return valid, nil
}

func (s *HabitStore) loadAll(ctx context.Context) (map[string][]*domain.Habit, error) {
	raw, err := s.substrate.Get(ctx, KeyHabits)
	if errors.Is(err, ErrKeyNotFound) {
		return map[string][]*domain.Habit{}, nil
	}
	if err != nil {
		return nil, err
	}

	var all map[string][]*domain.Habit
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		// Corrupted map: availability over durability, reset to empty.
		log.Printf("habits: corrupted habit map, resetting: %v", err)
		return map[string][]*domain.Habit{}, nil
	}
	if all == nil {
		all = map[string][]*domain.Habit{}
	}
	return all, nil
}

// persist re-reads the full map fresh and replaces only this user's partition.
func (s *HabitStore) persist(ctx context.Context, userID string, habits []*domain.Habit) error {
	all, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	all[userID] = habits
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.substrate.Set(ctx, KeyHabits, string(data))
}
