package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	originalVersion, originalCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = originalVersion, originalCommit })

	Version, Commit = "v1.2.0", "unknown"
	assert.Equal(t, "v1.2.0", String())
	assert.Equal(t, "v1.2.0", GetVersion())

	Commit = "abc1234"
	assert.Equal(t, "v1.2.0+abc1234", String())
}
