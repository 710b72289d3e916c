package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	profileFile   = "profile.json"
	dailyPlanFile = "daily_plan.json"
)

// ErrNotOnboarded is returned when no profile has been saved yet.
var ErrNotOnboarded = errors.New("no business profile found, run onboarding first")

// Store persists the business profile and daily plan as JSON files under the
// data directory.
type Store struct {
	dir string
}

func NewStore(dataDir string) *Store {
	return &Store{dir: dataDir}
}

func (s *Store) profilePath() string {
	return filepath.Join(s.dir, profileFile)
}

func (s *Store) planPath() string {
	return filepath.Join(s.dir, dailyPlanFile)
}

// LoadProfile reads the saved business profile. Returns ErrNotOnboarded when
// the file does not exist.
func (s *Store) LoadProfile() (*BusinessProfile, error) {
	raw, err := os.ReadFile(s.profilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotOnboarded
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p BusinessProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

// SaveProfile writes the profile to disk, creating the data directory if
// needed.
func (s *Store) SaveProfile(p *BusinessProfile) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.profilePath(), raw, 0o644)
}

// LoadDailyPlan reads the saved daily plan. Returns ErrNotOnboarded when no
// plan exists yet.
func (s *Store) LoadDailyPlan() (*DailyPlan, error) {
	raw, err := os.ReadFile(s.planPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotOnboarded
		}
		return nil, fmt.Errorf("reading daily plan: %w", err)
	}
	var plan DailyPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("parsing daily plan: %w", err)
	}
	return &plan, nil
}

// SaveDailyPlan writes the daily plan to disk.
func (s *Store) SaveDailyPlan(plan *DailyPlan) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	raw, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.planPath(), raw, 0o644)
}
