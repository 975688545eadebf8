package java

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// hermeticLocator returns a unix locator that only explores what the test adds
func hermeticLocator(env map[string]string, opts ...LocatorOption) *Locator {
	l := NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(env)}, opts...)
	l.fixed = nil
	l.installRoots = nil
	return l
}

func TestScanDirectFindsLayoutsWithinDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	direct := touch(t, filepath.Join(root, "bin", "java"))
	nested := touch(t, filepath.Join(root, "jdk-17", "bin", "java"))
	deeper := touch(t, filepath.Join(root, "vendor", "jdk-21", "bin", "java"))

	l := NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)})

	var found []string
	l.scanDirect(root, 2, &found)
	assert.ElementsMatch(t, []string{direct, nested}, found)

	found = nil
	l.scanDirect(root, 3, &found)
	assert.ElementsMatch(t, []string{direct, nested, deeper}, found)

	found = nil
	l.scanDirect(root, 0, &found)
	assert.Empty(t, found)
}

func TestScanDirectMacBundleLayout(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	exe := touch(t, filepath.Join(root, "temurin-17.jdk", "Contents", "Home", "bin", "java"))

	var found []string
	NewLocator(ConventionsFor(MacLike), HostEnv{Getenv: envMap(nil)}).scanDirect(root, 2, &found)
	assert.Equal(t, []string{exe}, found)

	found = nil
	NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)}).scanDirect(root, 2, &found)
	assert.Empty(t, found)
}

func TestScanDirectStopsAtDepthOnDeepTrees(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := root
	for i := 0; i < 40; i++ {
		dir = filepath.Join(dir, "d")
	}
	touch(t, filepath.Join(dir, "bin", "java"))

	var found []string
	NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)}).scanDirect(root, 5, &found)
	assert.Empty(t, found)
}

func TestScanDirectTerminatesOnSymlinkLoops(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	t.Parallel()

	root := t.TempDir()
	exe := touch(t, filepath.Join(root, "jdk", "bin", "java"))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "jdk", "loop")))

	var found []string
	NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)}).scanDirect(root, 4, &found)

	// the loop re-enters root, so the executable is reached again under another path
	assert.Contains(t, found, exe)
	assert.LessOrEqual(t, len(found), 4)
}

func TestScanSkipsMissingAndUnreadableDirectories(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	t.Parallel()

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	touch(t, filepath.Join(locked, "jdk", "bin", "java"))
	ok := touch(t, filepath.Join(root, "open", "bin", "java"))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	l := NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)})

	var found []string
	l.scanDirect(root, 3, &found)
	l.scanDirect(filepath.Join(root, "missing"), 3, &found)
	l.scanKeyword(filepath.Join(root, "missing"), 3, &found)
	assert.Equal(t, []string{ok}, found)
}

func TestScanKeywordPrunesUnrelatedDirectories(t *testing.T) {
	t.Parallel()

	games := t.TempDir()
	bundled := touch(t, filepath.Join(games, "Minecraft Launcher", "runtime", "java-runtime-gamma", "bin", "java"))
	touch(t, filepath.Join(games, "SomeGame", "jdk", "bin", "java"))
	touch(t, filepath.Join(games, "SomeGame", "bin", "java"))

	var found []string
	NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)}).scanKeyword(games, 4, &found)

	require.NotEmpty(t, found)
	for _, f := range found {
		assert.Equal(t, bundled, f)
	}
}

func TestScanKeywordRespectsDepth(t *testing.T) {
	t.Parallel()

	games := t.TempDir()
	touch(t, filepath.Join(games, "java", "java", "java", "java", "java", "bin", "java"))

	var found []string
	NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(nil)}).scanKeyword(games, 4, &found)
	assert.Empty(t, found)
}

func TestCandidatesOrder(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	home := filepath.Join(tmp, "home")
	javaHome := touch(t, filepath.Join(tmp, "javahome", "bin", "java"))
	jdks := touch(t, filepath.Join(home, ".jdks", "corretto-17", "bin", "java"))
	extra := touch(t, filepath.Join(tmp, "extra", "jdk-11", "bin", "java"))
	custom := touch(t, filepath.Join(tmp, "custom", "bin", "java"))

	l := hermeticLocator(map[string]string{
		"HOME":      home,
		"JAVA_HOME": filepath.Join(tmp, "javahome"),
	}, WithSearchPaths(filepath.Join(tmp, "extra")), WithCustomHomes(filepath.Join(tmp, "custom")))

	got := l.Candidates(context.Background())
	assert.Equal(t, []string{"java", javaHome, jdks, extra, custom}, got)
}

func TestCandidatesIgnoresMissingJavaHome(t *testing.T) {
	t.Parallel()

	l := hermeticLocator(map[string]string{"JAVA_HOME": filepath.Join(t.TempDir(), "nope")})
	assert.Equal(t, []string{"java"}, l.Candidates(context.Background()))
}

func TestCandidatesWindowsQueries(t *testing.T) {
	t.Parallel()

	l := NewLocator(ConventionsFor(WindowsLike), HostEnv{
		Getenv: envMap(nil),
		PathQuery: func(ctx context.Context, name string) []string {
			assert.Equal(t, "java", name)
			return []string{`C:\Program Files\Java\jdk-17\bin\java.exe` + "\r", "", "  "}
		},
	})

	got := l.Candidates(context.Background())
	assert.Equal(t, []string{"java", `C:\Program Files\Java\jdk-17\bin\java.exe`}, got)
}

func TestWindowsRoots(t *testing.T) {
	t.Parallel()

	l := NewLocator(ConventionsFor(WindowsLike), HostEnv{
		Getenv: envMap(map[string]string{
			"USERPROFILE": `C:\Users\steve`,
			"APPDATA":     `C:\Users\steve\AppData\Roaming`,
		}),
		Drives: func() []string { return []string{`C:\`, `D:\`} },
	})

	byPath := make(map[string]Root)
	for _, r := range l.Roots() {
		byPath[r.Path] = r
	}

	assert.Equal(t, Root{Path: `C:\Program Files\Eclipse Adoptium`, Strategy: DirectScan, Depth: 2}, byPath[`C:\Program Files\Eclipse Adoptium`])
	assert.Equal(t, Root{Path: `D:\jdk`, Strategy: DirectScan, Depth: 3}, byPath[`D:\jdk`])
	assert.Equal(t, Root{Path: `D:\Games`, Strategy: KeywordScan, Depth: 4}, byPath[`D:\Games`])
	assert.Equal(t, Root{Path: `C:\Users\steve\.gradle\jdks`, Strategy: DirectScan, Depth: 4}, byPath[`C:\Users\steve\.gradle\jdks`])
	assert.Contains(t, byPath, `C:\Users\steve\AppData\Roaming\.minecraft\runtime`)

	// keyword roots come last
	roots := l.Roots()
	last := roots[len(roots)-1]
	assert.Equal(t, KeywordScan, last.Strategy)
	assert.True(t, strings.HasPrefix(last.Path, `D:\`))
}

func TestUnixRoots(t *testing.T) {
	t.Parallel()

	l := NewLocator(ConventionsFor(UnixLike), HostEnv{Getenv: envMap(map[string]string{"HOME": "/home/ada"})})

	var paths []string
	for _, r := range l.Roots() {
		assert.Equal(t, DirectScan, r.Strategy)
		assert.Equal(t, 3, r.Depth)
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{
		"/usr/lib/jvm",
		"/usr/local/lib/jvm",
		"/Library/Java/JavaVirtualMachines",
		"/home/ada/.jdks",
		"/home/ada/.sdkman/candidates/java",
		"/home/ada/.gradle/jdks",
	}, paths)
	assert.Equal(t, []string{"/usr/bin/java", "/usr/local/bin/java"}, l.fixed)
}
