//go:build !windows

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonWindowsReportsNothing(t *testing.T) {
	t.Parallel()

	home, err := SystemJavaHome()
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Empty(t, home)
	assert.Empty(t, RegistryJavaHomes())
	assert.Empty(t, Drives())
}
