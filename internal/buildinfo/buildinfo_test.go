package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	Set("dev", "none", "unknown")
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "none", Commit())
	assert.Equal(t, "unknown", Date())
}

func TestSetOverridesDefaults(t *testing.T) {
	t.Cleanup(func() { Set("dev", "none", "unknown") })

	Set("v1.2.3", "abc123", "2026-08-29")
	assert.Equal(t, "v1.2.3", Version())
	assert.Equal(t, "abc123", Commit())
	assert.Equal(t, "2026-08-29", Date())
}

func TestEnrichKeepsLinkerCommit(t *testing.T) {
	t.Cleanup(func() { Set("dev", "none", "unknown") })

	Set("v1.2.3", "abc123", "2026-08-29")
	Enrich()
	assert.Equal(t, "abc123", Commit(), "ldflags-provided commit wins over build info")
}
