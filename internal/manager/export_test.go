package manager

import "time"

// SetNow pins the manager clock for tests.
func (m *CredentialManager) SetNow(now func() time.Time) {
	m.now = now
}

var (
	NewOpaqueToken = newOpaqueToken
	HashToken      = hashToken
)
