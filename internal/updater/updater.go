package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"jvscan/internal/config"
	"jvscan/internal/logging"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	// GitHubRepo is the repository jvscan releases are published from
	GitHubRepo = "CostaBrosky/jvscan"

	// CheckInterval is minimum time between background update checks
	CheckInterval = 24 * time.Hour

	// UpdateTimeout is maximum time for update operations
	UpdateTimeout = 5 * time.Minute
)

// ErrNoReleases is returned when the repository has no published release
var ErrNoReleases = errors.New("no releases found")

// releaseSource is the part of selfupdate.Updater the checker needs
type releaseSource interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
}

// Updater checks for and applies new releases of the CLI itself
type Updater struct {
	store          config.Store
	settings       *config.Settings
	currentVersion string
	source         releaseSource
	now            func() time.Time
}

// NewUpdater creates an Updater. Settings changes (last check time, skipped
// version) are written back through store.
func NewUpdater(store config.Store, settings *config.Settings, version string) (*Updater, error) {
	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{
			UniqueFilename: "SHA256SUMS.txt",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return &Updater{
		store:          store,
		settings:       settings,
		currentVersion: cleanVersion(version),
		source:         su,
		now:            time.Now,
	}, nil
}

// ShouldCheckForUpdate reports whether a background check is due
func (u *Updater) ShouldCheckForUpdate() bool {
	cfg := u.settings.UpdateConfig
	if !cfg.Enabled || !cfg.AutoCheck {
		return false
	}
	if u.currentVersion == "dev" {
		return false
	}
	return u.now().Sub(cfg.LastCheck) >= CheckInterval
}

// CheckForUpdate returns the latest release when it is newer than the running
// version and was not skipped by the user, nil otherwise.
func (u *Updater) CheckForUpdate(ctx context.Context) (*selfupdate.Release, error) {
	latest, found, err := u.source.DetectLatest(ctx, selfupdate.ParseSlug(GitHubRepo))
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, ErrNoReleases
	}

	u.settings.UpdateConfig.LastCheck = u.now()
	if err := u.store.Save(u.settings); err != nil {
		logging.Warnf("failed to save settings: %v", err)
	}

	if latest.LessOrEqual(u.currentVersion) {
		return nil, nil
	}
	if u.settings.UpdateConfig.SkipVersion == latest.Version() {
		return nil, nil
	}
	return latest, nil
}

// PerformUpdate replaces the running executable, restoring a backup on failure
func (u *Updater) PerformUpdate(ctx context.Context, release *selfupdate.Release) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}

	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		if rollbackErr := os.Rename(backup, exe); rollbackErr != nil {
			return fmt.Errorf("update failed and rollback failed: update error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("update failed (rolled back): %w", err)
	}

	if err := os.Remove(backup); err != nil {
		logging.Debugf("leaving backup %s: %v", backup, err)
	}
	return nil
}

// SkipVersion remembers that the user does not want version
func (u *Updater) SkipVersion(version string) error {
	u.settings.UpdateConfig.SkipVersion = version
	return u.store.Save(u.settings)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}

// cleanVersion removes the 'v' prefix for consistent comparison
func cleanVersion(version string) string {
	return strings.TrimPrefix(version, "v")
}
