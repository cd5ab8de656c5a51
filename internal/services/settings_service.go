package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dawahnet/outreach-api/internal/repository"
)

var ErrSettingKeyRequired = errors.New("setting key is required")

// SettingsService keeps the global key-value configuration as a
// process-wide snapshot: loaded at startup, refreshed on every write.
// Versionless, last write wins.
type SettingsService struct {
	repo repository.SettingRepository

	mu    sync.RWMutex
	cache map[string]string
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo repository.SettingRepository) *SettingsService {
	return &SettingsService{
		repo:  repo,
		cache: make(map[string]string),
	}
}

// Load fills the snapshot from the store. Called once at startup.
func (s *SettingsService) Load() error {
	settings, err := s.repo.List()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]string, len(settings))
	for _, setting := range settings {
		s.cache[setting.Key] = setting.Value
	}
	return nil
}

// All returns a copy of the current snapshot.
func (s *SettingsService) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.cache))
	for k, v := range s.cache {
		out[k] = v
	}
	return out
}

// Get returns one setting value and whether it exists.
func (s *SettingsService) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.cache[key]
	return value, ok
}

// Set upserts a setting and refreshes the snapshot.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrSettingKeyRequired
	}

	if err := s.repo.Upsert(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}
