package capability

// Capability names a browser permission class gating tool registration.
type Capability string

// The known capability vocabulary.
const (
	// DOMRead permits reading the page's DOM.
	DOMRead Capability = "dom:read"
	// DOMWrite permits mutating the page's DOM.
	DOMWrite Capability = "dom:write"
	// StorageRead permits reading browser storage.
	StorageRead Capability = "storage:read"
	// StorageWrite permits writing browser storage.
	StorageWrite Capability = "storage:write"
	// NetworkFetch permits issuing network requests from the page.
	NetworkFetch Capability = "network:fetch"
	// ClipboardRead permits reading the clipboard.
	ClipboardRead Capability = "clipboard:read"
	// ClipboardWrite permits writing the clipboard.
	ClipboardWrite Capability = "clipboard:write"
)

// String returns the string representation of the capability token.
func (c Capability) String() string {
	return string(c)
}

// All returns the full known capability vocabulary. The result is a fresh
// slice on every call so callers may mutate it freely.
func All() []Capability {
	return []Capability{
		DOMRead,
		DOMWrite,
		StorageRead,
		StorageWrite,
		NetworkFetch,
		ClipboardRead,
		ClipboardWrite,
	}
}
