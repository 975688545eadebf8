package java

import (
	"strconv"
	"strings"
)

// Unknown is reported for fields the runtime's output did not reveal.
const Unknown = "unknown"

// Runtime describes one usable Java installation
type Runtime struct {
	Path         string `json:"path"`          // Resolved absolute path to the java executable
	Version      string `json:"version"`       // Version as printed by the runtime (e.g., "17.0.2", "1.8.0_311")
	Vendor       string `json:"vendor"`        // First token of the identity line (e.g., "openjdk")
	Is64Bit      bool   `json:"is_64bit"`      // Whether the output mentions a 64-bit VM
	MajorVersion uint32 `json:"major_version"` // Derived from Version, 0 if undetermined
}

// NewRuntime builds a Runtime, deriving the major version from the version string
func NewRuntime(path, version, vendor string, is64Bit bool) Runtime {
	return Runtime{
		Path:         path,
		Version:      version,
		Vendor:       vendor,
		Is64Bit:      is64Bit,
		MajorVersion: ParseMajorVersion(version),
	}
}

// ParseMajorVersion returns the feature release number of a Java version string.
// Legacy "1.x" strings map to x, so "1.8.0_311" is 8 and "17.0.2" is 17.
func ParseMajorVersion(version string) uint32 {
	parts := strings.Split(version, ".")

	major, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0
	}
	if major != 1 {
		return uint32(major)
	}

	if len(parts) < 2 {
		return 1
	}
	legacy, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 1
	}
	return uint32(legacy)
}
