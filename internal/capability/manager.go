package capability

import (
	"slices"
	"sync"
)

// CheckResult reports the outcome of an admission check.
type CheckResult struct {
	// Allowed is true iff every required token is granted.
	Allowed bool
	// Missing lists the unsatisfied tokens, in the order they appear in the
	// required list. Empty when Allowed is true.
	Missing []Capability
}

// Manager owns the set of capability tokens granted to one client instance.
// Grants are client-scoped, never tool-scoped. All methods are safe for
// concurrent use.
type Manager struct {
	mu      sync.RWMutex
	granted map[Capability]struct{}
}

// NewManager creates a manager holding the given initial grants.
// A nil initial set grants the full known vocabulary.
func NewManager(initial []Capability) *Manager {
	m := &Manager{granted: make(map[Capability]struct{}, len(initial))}
	if initial == nil {
		initial = All()
	}

	for _, c := range initial {
		m.granted[c] = struct{}{}
	}

	return m
}

// Grant adds a token to the grant set. Idempotent.
func (m *Manager) Grant(c Capability) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.granted[c] = struct{}{}
}

// GrantAll adds every token in caps to the grant set.
func (m *Manager) GrantAll(caps []Capability) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range caps {
		m.granted[c] = struct{}{}
	}
}

// Revoke removes a token from the grant set. Revoking an ungranted token is
// a no-op. Revocation affects future checks only; tools already admitted to
// the registry are not re-checked.
func (m *Manager) Revoke(c Capability) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.granted, c)
}

// RevokeAll removes every token in caps from the grant set.
func (m *Manager) RevokeAll(caps []Capability) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range caps {
		delete(m.granted, c)
	}
}

// Has reports whether the token is granted.
func (m *Manager) Has(c Capability) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.granted[c]

	return ok
}

// Check verifies that every token in required is granted. An empty required
// list is always allowed.
func (m *Manager) Check(required []Capability) CheckResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := CheckResult{Allowed: true, Missing: []Capability{}}
	for _, c := range required {
		if _, ok := m.granted[c]; !ok {
			result.Allowed = false
			result.Missing = append(result.Missing, c)
		}
	}

	return result
}

// ListGranted returns the granted tokens in the known-vocabulary order, with
// any granted out-of-vocabulary tokens appended afterwards.
func (m *Manager) ListGranted() []Capability {
	m.mu.RLock()
	defer m.mu.RUnlock()

	known := make(map[Capability]struct{}, len(m.granted))
	result := make([]Capability, 0, len(m.granted))

	for _, c := range All() {
		if _, ok := m.granted[c]; ok {
			result = append(result, c)
			known[c] = struct{}{}
		}
	}

	extra := make([]Capability, 0)
	for c := range m.granted {
		if _, ok := known[c]; !ok {
			extra = append(extra, c)
		}
	}

	slices.Sort(extra)

	return append(result, extra...)
}

// Clear removes every grant.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.granted = make(map[Capability]struct{})
}

// Reset restores the full default capability set.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.granted = make(map[Capability]struct{}, len(All()))
	for _, c := range All() {
		m.granted[c] = struct{}{}
	}
}

// Size returns the number of granted tokens.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.granted)
}
