package toolbridge

import "github.com/toolbridge/toolbridge-go/internal/capability"

// Capability names a browser permission class gating tool registration.
// Tokens are opaque to the SDK: there is no hierarchy where dom:* would
// imply dom:read, and unknown but well-formed tokens are accepted and
// simply never satisfied unless explicitly granted.
type Capability = capability.Capability

// The known capability vocabulary.
const (
	// CapDOMRead permits reading the page's DOM.
	CapDOMRead = capability.DOMRead
	// CapDOMWrite permits mutating the page's DOM.
	CapDOMWrite = capability.DOMWrite
	// CapStorageRead permits reading browser storage.
	CapStorageRead = capability.StorageRead
	// CapStorageWrite permits writing browser storage.
	CapStorageWrite = capability.StorageWrite
	// CapNetworkFetch permits issuing network requests from the page.
	CapNetworkFetch = capability.NetworkFetch
	// CapClipboardRead permits reading the clipboard.
	CapClipboardRead = capability.ClipboardRead
	// CapClipboardWrite permits writing the clipboard.
	CapClipboardWrite = capability.ClipboardWrite
)

// CapabilityManager owns the capability tokens granted to one client.
type CapabilityManager = capability.Manager

// CapabilityCheck reports the outcome of an admission check.
type CapabilityCheck = capability.CheckResult

// AllCapabilities returns the full known capability vocabulary.
func AllCapabilities() []Capability {
	return capability.All()
}
