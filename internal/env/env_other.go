//go:build !windows

package env

import "errors"

// ErrUnsupported is returned where the platform has no system-wide registry
var ErrUnsupported = errors.New("env: no system registry on this platform")

// SystemJavaHome is only recorded system-wide on Windows
func SystemJavaHome() (string, error) {
	return "", ErrUnsupported
}

// RegistryJavaHomes is only meaningful on Windows
func RegistryJavaHomes() []string {
	return nil
}

// Drives is only meaningful on Windows
func Drives() []string {
	return nil
}
