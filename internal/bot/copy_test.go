package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCopyDefaults(t *testing.T) {
	c := NewCopy()
	assert.Equal(t, "Amount updated.", c.Get("amount_updated"))
	assert.Equal(t, "Wallet renamed to: Degen Stack", c.Getf("renamed", "Degen Stack"))
}

func TestCopyUnknownKeyReturnsKey(t *testing.T) {
	c := NewCopy()
	assert.Equal(t, "no_such_key", c.Get("no_such_key"))
}

func TestLoadCopyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
amount_updated: "Amount saved!"
bogus_key: "ignored"
ticket_sent: ""
`), 0o644))

	c := LoadCopy(path, zap.NewNop())
	assert.Equal(t, "Amount saved!", c.Get("amount_updated"))
	// Unknown keys are ignored, empty overrides keep the default.
	assert.Equal(t, "bogus_key", c.Get("bogus_key"))
	assert.Equal(t, NewCopy().Get("ticket_sent"), c.Get("ticket_sent"))
	// Untouched keys keep defaults.
	assert.Equal(t, NewCopy().Get("slip_invalid"), c.Get("slip_invalid"))
}

func TestLoadCopyMissingFileFallsBack(t *testing.T) {
	c := LoadCopy(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())
	assert.Equal(t, NewCopy().Get("amount_updated"), c.Get("amount_updated"))
}

func TestLoadCopyEmptyPathSkips(t *testing.T) {
	c := LoadCopy("", zap.NewNop())
	assert.Equal(t, NewCopy().Get("amount_updated"), c.Get("amount_updated"))
}

func TestLoadCopyMalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	c := LoadCopy(path, zap.NewNop())
	assert.Equal(t, NewCopy().Get("amount_updated"), c.Get("amount_updated"))
}
