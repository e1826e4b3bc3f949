// Package habits persists the user's sustainability habit tracker as a
// single JSON file under the config directory.
package habits

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// dayFormat keys completion by calendar day, not instant.
const dayFormat = "2006-01-02"

// Habit is one tracked habit. DoneDates holds the days it was completed,
// each formatted as YYYY-MM-DD, sorted ascending, without duplicates.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	DoneDates []string  `json:"done_dates"`
}

// DoneOn reports whether the habit was completed on the given day.
func (h *Habit) DoneOn(day time.Time) bool {
	key := day.Format(dayFormat)
	for _, d := range h.DoneDates {
		if d == key {
			return true
		}
	}
	return false
}

// Streak counts consecutive completed days ending at the given day.
func (h *Habit) Streak(today time.Time) int {
	streak := 0
	for day := today; h.DoneOn(day); day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// Store manages the habit file.
type Store struct {
	path string
}

// NewStore creates a store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(home, ".ecolens")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(baseDir, "habits.json")}, nil
}

// Add creates a habit and persists it.
func (s *Store) Add(name string) (*Habit, error) {
	habits, err := s.load()
	if err != nil {
		return nil, err
	}

	habit := &Habit{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		DoneDates: []string{},
	}
	habits = append(habits, *habit)

	if err := s.save(habits); err != nil {
		return nil, err
	}
	return habit, nil
}

// MarkDone records a completion for the given day. Marking the same day
// twice is a no-op.
func (s *Store) MarkDone(id string, day time.Time) error {
	habits, err := s.load()
	if err != nil {
		return err
	}

	key := day.Format(dayFormat)
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		if habits[i].DoneOn(day) {
			return nil
		}
		habits[i].DoneDates = append(habits[i].DoneDates, key)
		sort.Strings(habits[i].DoneDates)
		return s.save(habits)
	}
	return fmt.Errorf("habit %s not found", id)
}

// Remove deletes a habit.
func (s *Store) Remove(id string) error {
	habits, err := s.load()
	if err != nil {
		return err
	}
	for i := range habits {
		if habits[i].ID == id {
			habits = append(habits[:i], habits[i+1:]...)
			return s.save(habits)
		}
	}
	return fmt.Errorf("habit %s not found", id)
}

// List returns all habits in creation order.
func (s *Store) List() ([]Habit, error) {
	return s.load()
}

func (s *Store) load() ([]Habit, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Habit{}, nil
		}
		return nil, err
	}
	var habits []Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("habit file corrupt: %w", err)
	}
	return habits, nil
}

func (s *Store) save(habits []Habit) error {
	data, err := json.MarshalIndent(habits, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
