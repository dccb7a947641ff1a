package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeScenario drops a scenario YAML file into dir and returns its path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const passingScenario = `name: cart-pass
session_id: test-session-cli
expectations:
  - call: Cart.addItem
    args:
      name: widget
      qty: 2
    returns: true
calls:
  - call: Cart.addItem
    args:
      name: widget
      qty: 2
    want:
      returns: true
`

const failingScenario = `name: cart-fail
expectations:
  - call: Cart.checkout
calls: []
`
