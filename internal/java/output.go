package java

import "strings"

// Output is what a probed executable printed
type Output struct {
	Stdout string
	Stderr string
}

// Combined returns the text the runtime identified itself with.
// Java prints -version to stderr, so stderr wins when it has anything in it.
func (o Output) Combined() string {
	if o.Stderr != "" {
		return o.Stderr
	}
	return o.Stdout
}

// banner prefixes the JVM prints before its identity line when option env vars are set
var banners = []string{
	"Picked up JAVA_TOOL_OPTIONS",
	"Picked up _JAVA_OPTIONS",
	"Picked up JDK_JAVA_OPTIONS",
}

// ExtractVersion returns the first quoted string on the first line mentioning "version"
func ExtractVersion(text string) (string, bool) {
	for _, line := range splitLines(text) {
		if !strings.Contains(line, "version") {
			continue
		}
		start := strings.IndexByte(line, '"')
		if start < 0 {
			continue
		}
		end := strings.IndexByte(line[start+1:], '"')
		if end < 0 {
			continue
		}
		return line[start+1 : start+1+end], true
	}
	return "", false
}

// ExtractVendor returns the first word of the identity line, e.g. "openjdk" or "java"
func ExtractVendor(text string) (string, bool) {
	lines := splitLines(text)
	for len(lines) > 1 && isBanner(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return "", false
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// Is64Bit reports whether the output names a 64-bit VM
func Is64Bit(text string) bool {
	return strings.Contains(text, "64-Bit") || strings.Contains(text, "64-bit")
}

// ParseOutput turns probe output into a Runtime at the given path.
// It fails only when the executable printed nothing at all.
func ParseOutput(path string, out Output) (Runtime, bool) {
	text := out.Combined()
	if text == "" {
		return Runtime{}, false
	}

	version, ok := ExtractVersion(text)
	if !ok {
		version = Unknown
	}
	vendor, ok := ExtractVendor(text)
	if !ok {
		vendor = Unknown
	}

	return NewRuntime(path, version, vendor, Is64Bit(text)), true
}

func isBanner(line string) bool {
	for _, b := range banners {
		if strings.HasPrefix(line, b) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
