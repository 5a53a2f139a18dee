package zoom

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// stateFile is the on-disk layout of a FileStore.
type stateFile struct {
	Profiles map[string]Preference `yaml:"profiles"`
}

// FileStore keeps preferences in a YAML file. Concurrent calls on one
// FileStore are serialized; separate processes sharing a file are not.
type FileStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFileStore returns a FileStore backed by path. The file is created on the
// first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// List returns every stored preference ordered by profile.
func (s *FileStore) List(_ context.Context) ([]Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return nil, err
	}

	prefs := make([]Preference, 0, len(state.Profiles))
	for profile, p := range state.Profiles {
		p.Profile = profile
		p.Level = Sanitize(p.Level)
		prefs = append(prefs, p)
	}

	slices.SortFunc(prefs, func(a, b Preference) int { return strings.Compare(a.Profile, b.Profile) })

	return prefs, nil
}

// Get returns the stored preference for profile.
func (s *FileStore) Get(_ context.Context, profile string) (Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return Preference{}, err
	}

	p, ok := state.Profiles[profile]
	if !ok {
		return DefaultPreference(profile), nil
	}

	p.Profile = profile
	p.Level = Sanitize(p.Level)

	return p, nil
}

// Set stores level for profile.
func (s *FileStore) Set(ctx context.Context, profile string, level int) (Preference, error) {
	return s.Update(ctx, profile, func(int) int { return level })
}

// Update replaces the level of profile with fn(current).
func (s *FileStore) Update(_ context.Context, profile string, fn func(level int) int) (Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return Preference{}, err
	}

	current := Default
	if stored, ok := state.Profiles[profile]; ok {
		current = Sanitize(stored.Level)
	}

	level := fn(current)
	if level <= 0 {
		return Preference{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	p := Preference{Profile: profile, Level: level, UpdatedAt: s.now().UTC()}
	state.Profiles[profile] = p

	if err := s.write(state); err != nil {
		return Preference{}, err
	}

	return p, nil
}

func (s *FileStore) read() (*stateFile, error) {
	state := &stateFile{}

	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrStateFile, s.path, err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, state); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", ErrStateFile, s.path, err)
		}
	}

	if state.Profiles == nil {
		state.Profiles = make(map[string]Preference)
	}

	return state, nil
}

func (s *FileStore) write(state *stateFile) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", ErrStateFile, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil { //nolint:mnd // directory permissions
		return fmt.Errorf("%w: creating directory for %s: %w", ErrStateFile, s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil { //nolint:mnd // file permissions
		return fmt.Errorf("%w: writing %s: %w", ErrStateFile, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrStateFile, s.path, err)
	}

	return nil
}
