//go:build !windows

package java

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJava writes a shell script that prints a -version banner to stderr
func fakeJava(t *testing.T, path, version string) string {
	t.Helper()
	script := "#!/bin/sh\n" +
		"echo 'openjdk version \"" + version + "\" 2022-01-18' >&2\n" +
		"echo 'OpenJDK Runtime Environment (build " + version + ")' >&2\n" +
		"echo 'OpenJDK 64-Bit Server VM (build " + version + ", mixed mode)' >&2\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestExecRunnerKeepsOutputOnNonZeroExit(t *testing.T) {
	prog := script(t, "echo out; echo err >&2; exit 3")

	out, err := ExecRunner{}.Run(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, "out\n", out.Stdout)
	assert.Equal(t, "err\n", out.Stderr)
}

func TestExecRunnerMissingProgram(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestExecRunnerHonoursDeadline(t *testing.T) {
	prog := script(t, "sleep 5")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ExecRunner{}.Run(ctx, prog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestDiscoverEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("which"); err != nil {
		t.Skip("which not available")
	}

	tmp := t.TempDir()
	home := filepath.Join(tmp, "home")
	onPath := fakeJava(t, filepath.Join(home, "bin", "java"), "17.0.2")
	legacy := fakeJava(t, filepath.Join(tmp, "jvm", "jdk-8", "bin", "java"), "1.8.0_311")
	latest := fakeJava(t, filepath.Join(tmp, "jvm", "jdk-21", "bin", "java"), "21.0.1")

	t.Setenv("PATH", filepath.Join(home, "bin")+string(os.PathListSeparator)+os.Getenv("PATH"))

	conv := ConventionsFor(UnixLike)
	locator := hermeticLocator(map[string]string{"JAVA_HOME": home, "HOME": tmp},
		WithSearchPaths(filepath.Join(tmp, "jvm")))
	prober := NewProber(conv, ExecRunner{}, 5*time.Second)
	d := NewDetector(conv, locator, prober)

	got := d.Discover(context.Background())
	require.Len(t, got, 3)
	assert.Equal(t, latest, got[0].Path)
	assert.Equal(t, onPath, got[1].Path)
	assert.Equal(t, legacy, got[2].Path)

	assert.Equal(t, []uint32{21, 17, 8}, []uint32{got[0].MajorVersion, got[1].MajorVersion, got[2].MajorVersion})
	assert.Equal(t, "1.8.0_311", got[2].Version)
	assert.Equal(t, "openjdk", got[1].Vendor)
	assert.True(t, got[1].Is64Bit)
	assertDiscoveryInvariants(t, conv, got)

	for _, rt := range got {
		again, err := d.Validate(context.Background(), rt.Path)
		require.NoError(t, err)
		assert.Equal(t, rt, again)
	}

	_, err := d.Validate(context.Background(), filepath.Join(tmp, "nope", "java"))
	var invalid *InvalidPathError
	assert.True(t, errors.As(err, &invalid))
}
