package testutil

// SessionID returns the fixed journal session ID for a scenario, or the
// deterministic default when the scenario file sets none. Production runs
// leave the ID empty and let the journal mint a UUIDv7; tests need a
// stable ID for golden comparison.
func SessionID(token string) string {
	if token == "" {
		return "test-session-default"
	}
	return token
}
