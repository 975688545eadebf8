// Package env reads Java locations that installers record system-wide.
// Only Windows keeps any (in the registry); elsewhere every function reports
// nothing.
package env
