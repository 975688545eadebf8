package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvscan/internal/java"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(filepath.Join(t.TempDir(), "settings.json"))
	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(filepath.Join(t.TempDir(), "nested", "settings.json"))

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cfg := Defaults()
	cfg.DefaultJavaPath = "/usr/lib/jvm/java-21/bin/java"
	cfg.AddSearchPath("/opt/jdks")
	cfg.AddCustomPath("/srv/java/home")
	cfg.ProbeTimeout = Duration(3 * time.Second)
	cfg.Store([]java.Runtime{
		java.NewRuntime("/usr/lib/jvm/java-21/bin/java", "21.0.1", "openjdk", true),
		java.NewRuntime("/usr/lib/jvm/java-8/bin/java", "1.8.0_311", "java", false),
	}, now)

	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadWireFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	data := "\xEF\xBB\xBF" + `{
  "default_java_path": "/opt/jdk/bin/java",
  "search_paths": ["  /opt/jdks  ", "/opt/jdks/", ""],
  "custom_paths": null,
  "probe_timeout": "2s",
  "cached_java_list": [
    {"path": "/opt/jdk/bin/java", "version": "17.0.2", "vendor": "openjdk", "is_64bit": true, "major_version": 17}
  ],
  "cached_at": "2024-05-01T12:00:00Z"
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := NewJSONStore(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/jdk/bin/java", cfg.DefaultJavaPath)
	assert.Equal(t, []string{"/opt/jdks"}, cfg.SearchPaths)
	assert.NotNil(t, cfg.CustomPaths)
	assert.Empty(t, cfg.CustomPaths)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.ProbeTimeout))
	assert.Equal(t, DefaultCacheTTL, time.Duration(cfg.CacheTTL))
	assert.True(t, cfg.UpdateConfig.Enabled)

	require.Len(t, cfg.Runtimes, 1)
	assert.Equal(t, uint32(17), cfg.Runtimes[0].MajorVersion)
	assert.True(t, cfg.Runtimes[0].Is64Bit)
}

func TestLoadEmptyDurationsFallBackToDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"probe_timeout": null, "cache_ttl": ""}`), 0o644))

	cfg, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, java.DefaultProbeTimeout, time.Duration(cfg.ProbeTimeout))
	assert.Equal(t, DefaultCacheTTL, time.Duration(cfg.CacheTTL))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))
	_, err := NewJSONStore(broken).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)

	badDuration := filepath.Join(dir, "duration.json")
	require.NoError(t, os.WriteFile(badDuration, []byte(`{"probe_timeout": "soon"}`), 0o644))
	_, err = NewJSONStore(badDuration).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soon")
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "jvscan", "settings.json"), DefaultPath())
	assert.Equal(t, DefaultPath(), NewJSONStore("").Path())

	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, "settings.json", filepath.Base(DefaultPath()))
	assert.Equal(t, ".config", filepath.Base(filepath.Dir(filepath.Dir(DefaultPath()))))
}
