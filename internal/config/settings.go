package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"jvscan/internal/java"
)

const (
	// DefaultCacheTTL is how long a cached discovery result is trusted
	DefaultCacheTTL = 24 * time.Hour
)

// Settings is the persisted application record
type Settings struct {
	DefaultJavaPath string       `json:"default_java_path"` // Runtime chosen by the user
	SearchPaths     []string     `json:"search_paths"`      // Extra directories to scan
	CustomPaths     []string     `json:"custom_paths"`      // Extra Java home directories
	ProbeTimeout    Duration     `json:"probe_timeout"`     // Per-candidate time limit
	CacheTTL        Duration     `json:"cache_ttl"`         // Age after which the cache is stale
	UpdateConfig    UpdateConfig `json:"update_config"`     // Auto-update configuration
	Cache
}

// UpdateConfig holds settings for the self-update feature
type UpdateConfig struct {
	Enabled     bool      `json:"enabled"`      // Master toggle for update functionality
	AutoCheck   bool      `json:"auto_check"`   // Check for updates on startup
	LastCheck   time.Time `json:"last_check"`   // Last time an update check ran
	SkipVersion string    `json:"skip_version"` // Version the user chose to skip
}

// Cache is the result of a previous discovery run. The caller decides when
// to refresh it; discovery itself never reads it.
type Cache struct {
	Runtimes []java.Runtime `json:"cached_java_list"`
	CachedAt time.Time      `json:"cached_at"`
}

// Defaults returns settings for a fresh install
func Defaults() *Settings {
	return &Settings{
		SearchPaths:  make([]string, 0),
		CustomPaths:  make([]string, 0),
		ProbeTimeout: Duration(java.DefaultProbeTimeout),
		CacheTTL:     Duration(DefaultCacheTTL),
		UpdateConfig: UpdateConfig{
			Enabled:   true,
			AutoCheck: true,
		},
		Cache: Cache{Runtimes: make([]java.Runtime, 0)},
	}
}

// Fresh reports whether the cache holds a result younger than ttl
func (c Cache) Fresh(ttl time.Duration, now time.Time) bool {
	if c.CachedAt.IsZero() || len(c.Runtimes) == 0 {
		return false
	}
	return now.Sub(c.CachedAt) < ttl
}

// Store replaces the cached result
func (c *Cache) Store(runtimes []java.Runtime, now time.Time) {
	c.Runtimes = append(make([]java.Runtime, 0, len(runtimes)), runtimes...)
	c.CachedAt = now
}

// Clear drops the cached result
func (c *Cache) Clear() {
	c.Runtimes = make([]java.Runtime, 0)
	c.CachedAt = time.Time{}
}

// Lookup returns the cached runtime at path
func (c Cache) Lookup(path string) (java.Runtime, bool) {
	for _, rt := range c.Runtimes {
		if SamePath(rt.Path, path) {
			return rt, true
		}
	}
	return java.Runtime{}, false
}

// AddSearchPath adds a directory to scan
func (s *Settings) AddSearchPath(path string) bool {
	return addPath(&s.SearchPaths, path)
}

// RemoveSearchPath removes a directory to scan
func (s *Settings) RemoveSearchPath(path string) bool {
	return removePath(&s.SearchPaths, path)
}

// HasSearchPath checks if a directory is scanned
func (s *Settings) HasSearchPath(path string) bool {
	return indexPath(s.SearchPaths, path) >= 0
}

// AddCustomPath adds a Java home directory
func (s *Settings) AddCustomPath(path string) bool {
	return addPath(&s.CustomPaths, path)
}

// HasCustomPath checks if a Java home directory is configured
func (s *Settings) HasCustomPath(path string) bool {
	return indexPath(s.CustomPaths, path) >= 0
}

// RemoveCustomPath removes a Java home directory
func (s *Settings) RemoveCustomPath(path string) bool {
	return removePath(&s.CustomPaths, path)
}

// sanitize normalizes fields read from disk
func (s *Settings) sanitize() {
	s.SearchPaths = cleanPaths(s.SearchPaths)
	s.CustomPaths = cleanPaths(s.CustomPaths)
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = Duration(java.DefaultProbeTimeout)
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = Duration(DefaultCacheTTL)
	}
	if s.Runtimes == nil {
		s.Runtimes = make([]java.Runtime, 0)
	}
}

func addPath(list *[]string, path string) bool {
	path = normalize(path)
	if path == "" || indexPath(*list, path) >= 0 {
		return false
	}
	*list = append(*list, path)
	return true
}

func removePath(list *[]string, path string) bool {
	i := indexPath(*list, path)
	if i < 0 {
		return false
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return true
}

func indexPath(list []string, path string) int {
	path = normalize(path)
	for i, p := range list {
		if SamePath(p, path) {
			return i
		}
	}
	return -1
}

func cleanPaths(paths []string) []string {
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		addPath(&cleaned, p)
	}
	return cleaned
}

func normalize(path string) string {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "." {
		return ""
	}
	return path
}

// SamePath compares two paths the way the host filesystem does
func SamePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Duration is a time.Duration stored as a string such as "10s"
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON reads "10s" style strings. null and "" leave a zero value,
// which sanitize replaces with the default.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"10s\": %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
