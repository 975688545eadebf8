package java

import (
	"context"
	"os"
	"strings"

	"jvscan/internal/logging"
)

// Strategy selects how a root directory is explored
type Strategy int

const (
	// DirectScan visits every subdirectory down to the depth budget,
	// checking the executable layouts in each.
	DirectScan Strategy = iota
	// KeywordScan only descends into subdirectories whose name suggests a
	// Java runtime, running a DirectScan on each of them.
	KeywordScan
)

func (s Strategy) String() string {
	if s == KeywordScan {
		return "keyword"
	}
	return "direct"
}

// Root is a directory worth exploring for runtimes
type Root struct {
	Path     string
	Strategy Strategy
	Depth    int
}

// keywords decide which directories a KeywordScan descends into
var keywords = []string{
	"java", "jdk", "jre", "zulu", "adoptium", "corretto", "graalvm", "azul",
	"minecraft", "runtime", "bin",
}

// HostEnv is the part of the host environment the locator reads
type HostEnv struct {
	Getenv func(string) string
	// Drives lists existing drive roots such as `C:\` (Windows only)
	Drives func() []string
	// Registry returns Java home directories recorded by installers (Windows only)
	Registry func() []string
	// PathQuery lists every executable the shell would find for a name (Windows only)
	PathQuery func(ctx context.Context, name string) []string
}

// Locator produces the candidates a discovery run probes
type Locator struct {
	conv Conventions
	env  HostEnv

	javaHome     string
	fixed        []string
	installRoots []Root
	userRoots    []Root
	keywordRoots []Root
	searchPaths  []string
	customHomes  []string
}

// LocatorOption customizes a Locator
type LocatorOption func(*Locator)

// WithSearchPaths adds directories to depth-scan after the built-in roots
func WithSearchPaths(paths ...string) LocatorOption {
	return func(l *Locator) {
		l.searchPaths = append(l.searchPaths, paths...)
	}
}

// WithCustomHomes adds Java home directories whose executable is a candidate
func WithCustomHomes(homes ...string) LocatorOption {
	return func(l *Locator) {
		l.customHomes = append(l.customHomes, homes...)
	}
}

// NewLocator creates a locator for the given conventions and environment.
// Roots are computed once here; Candidates only walks them.
func NewLocator(conv Conventions, env HostEnv, opts ...LocatorOption) *Locator {
	if env.Getenv == nil {
		env.Getenv = os.Getenv
	}

	l := &Locator{
		conv:     conv,
		env:      env,
		javaHome: strings.TrimSpace(env.Getenv("JAVA_HOME")),
	}

	switch conv.Platform {
	case WindowsLike:
		var drives []string
		if env.Drives != nil {
			drives = env.Drives()
		}
		l.installRoots, l.keywordRoots = windowsDriveRoots(conv, drives)
		l.userRoots = windowsUserRoots(conv, env.Getenv)
	default:
		l.fixed = []string{"/usr/bin/java", "/usr/local/bin/java"}
		l.installRoots = unixInstallRoots(conv)
		l.userRoots = unixUserRoots(conv, env.Getenv)
	}

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Roots returns every root the locator explores, in scan order
func (l *Locator) Roots() []Root {
	roots := make([]Root, 0, len(l.installRoots)+len(l.userRoots)+len(l.searchPaths)+len(l.keywordRoots))
	roots = append(roots, l.installRoots...)
	roots = append(roots, l.userRoots...)
	for _, p := range l.searchPaths {
		roots = append(roots, Root{Path: p, Strategy: DirectScan, Depth: 3})
	}
	roots = append(roots, l.keywordRoots...)
	return roots
}

// Candidates returns bare names and paths worth probing, in probe order.
// Duplicates are expected; the detector deduplicates after resolution.
func (l *Locator) Candidates(ctx context.Context) []string {
	candidates := []string{l.conv.LookupName()}

	if l.javaHome != "" {
		l.checkHome(l.javaHome, &candidates)
	}
	for _, p := range l.fixed {
		if isExecutableFile(p) {
			candidates = append(candidates, p)
		}
	}

	customsDone := false
	for _, root := range l.Roots() {
		if ctx.Err() != nil {
			return candidates
		}
		switch root.Strategy {
		case KeywordScan:
			if !customsDone {
				l.checkCustomHomes(&candidates)
				customsDone = true
			}
			l.scanKeyword(root.Path, root.Depth, &candidates)
		default:
			l.scanDirect(root.Path, root.Depth, &candidates)
		}
	}
	if !customsDone {
		l.checkCustomHomes(&candidates)
	}

	if l.conv.Platform == WindowsLike {
		if l.env.PathQuery != nil {
			for _, line := range l.env.PathQuery(ctx, l.conv.LookupName()) {
				if line = strings.TrimSpace(line); line != "" {
					candidates = append(candidates, line)
				}
			}
		}
		if l.env.Registry != nil {
			for _, home := range l.env.Registry() {
				l.checkHome(home, &candidates)
			}
		}
	}

	logging.L.Debug("candidates located", "count", len(candidates))
	return candidates
}

func (l *Locator) checkCustomHomes(out *[]string) {
	for _, home := range l.customHomes {
		l.checkHome(home, out)
	}
}

// checkHome adds <home>/bin/<exe> when it exists
func (l *Locator) checkHome(home string, out *[]string) {
	exe := l.conv.Join(home, "bin", l.conv.Executable)
	if isExecutableFile(exe) {
		*out = append(*out, exe)
	}
}

// scanDirect checks the executable layouts in dir and recurses into every
// subdirectory until the depth budget runs out.
func (l *Locator) scanDirect(dir string, depth int, out *[]string) {
	if depth <= 0 || !isDir(dir) {
		return
	}

	for _, layout := range l.conv.Layouts {
		exe := l.conv.Join(append([]string{dir}, layout...)...)
		if isExecutableFile(exe) {
			*out = append(*out, exe)
		}
	}

	for _, sub := range l.subdirs(dir) {
		l.scanDirect(sub, depth-1, out)
	}
}

// scanKeyword descends only into subdirectories with a suggestive name.
// Everything else is pruned together with its descendants.
func (l *Locator) scanKeyword(dir string, depth int, out *[]string) {
	if depth <= 0 || !isDir(dir) {
		return
	}

	for _, sub := range l.subdirs(dir) {
		if !hasKeyword(baseName(sub, l.conv.Separator)) {
			continue
		}
		l.scanDirect(sub, depth-1, out)
		l.scanKeyword(sub, depth-1, out)
	}
}

// subdirs lists the directories in dir, following symlinks. Unreadable
// directories and broken links yield nothing.
func (l *Locator) subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.L.Debug("skipping unreadable directory", "dir", dir, "err", err)
		return nil
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := l.conv.Join(dir, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 && isDir(path) {
			dirs = append(dirs, path)
		}
	}
	return dirs
}

func hasKeyword(name string) bool {
	name = strings.ToLower(name)
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func baseName(path, sep string) string {
	path = strings.TrimRight(path, sep)
	if i := strings.LastIndex(path, sep); i >= 0 {
		return path[i+len(sep):]
	}
	return path
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
