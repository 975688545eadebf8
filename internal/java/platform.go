package java

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Platform identifies a family of installation conventions
type Platform int

const (
	UnixLike Platform = iota
	MacLike
	WindowsLike
)

func (p Platform) String() string {
	switch p {
	case WindowsLike:
		return "windows"
	case MacLike:
		return "macos"
	default:
		return "unix"
	}
}

// Conventions captures everything that differs between operating systems:
// executable naming, bundle layouts and the executable-locator utility.
type Conventions struct {
	Platform   Platform
	Separator  string // Path separator used when building candidate paths
	Executable string // Bare name looked up on PATH ("java" or "java.exe")
	Resolver   string // Utility printing the full path of a command ("which" or "where")
	// Layouts are executable locations checked directly under every scanned directory
	Layouts [][]string
}

var (
	windowsConventions = Conventions{
		Platform:   WindowsLike,
		Separator:  `\`,
		Executable: "java.exe",
		Resolver:   "where",
		Layouts: [][]string{
			{"bin", "java.exe"},
			{"java.exe"},
		},
	}

	unixConventions = Conventions{
		Platform:   UnixLike,
		Separator:  "/",
		Executable: "java",
		Resolver:   "which",
		Layouts: [][]string{
			{"bin", "java"},
		},
	}

	macConventions = Conventions{
		Platform:   MacLike,
		Separator:  "/",
		Executable: "java",
		Resolver:   "which",
		Layouts: [][]string{
			{"bin", "java"},
			{"Contents", "Home", "bin", "java"},
		},
	}
)

// ConventionsFor returns the conventions of a platform
func ConventionsFor(p Platform) Conventions {
	switch p {
	case WindowsLike:
		return windowsConventions
	case MacLike:
		return macConventions
	default:
		return unixConventions
	}
}

// HostConventions returns the conventions of the running operating system
func HostConventions() Conventions {
	switch runtime.GOOS {
	case "windows":
		return windowsConventions
	case "darwin":
		return macConventions
	default:
		return unixConventions
	}
}

// LookupName is the name handed to the OS for a PATH lookup
func (c Conventions) LookupName() string {
	return strings.TrimSuffix(c.Executable, ".exe")
}

// Join builds a path with the platform's separator. Roots are built as plain
// strings so that every platform's layout can be produced on any host.
func (c Conventions) Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for i, e := range elem {
		if e == "" {
			continue
		}
		if i > 0 {
			e = strings.TrimLeft(e, c.Separator)
		}
		if i < len(elem)-1 {
			e = strings.TrimRight(e, c.Separator)
		}
		parts = append(parts, e)
	}
	return strings.Join(parts, c.Separator)
}

// PathKey is the identity of a resolved path for deduplication
func (c Conventions) PathKey(path string) string {
	if c.Platform == WindowsLike {
		return strings.ToLower(filepath.Clean(path))
	}
	return filepath.Clean(path)
}
