// Package diag defines the value types produced by the errtriage rule engine.
package diag

// Record is a structured diagnosis of a raw error message.
//
// Records are plain values. Every call into the engine returns a fresh Record
// with its own slices, so callers may modify them freely.
type Record struct {
	// OriginalError is the text that triggered the match: the whole input
	// or the matched substring. Never empty.
	OriginalError string `json:"originalError" yaml:"originalError"`

	// FriendlyMessage is a human-readable explanation. Never empty.
	FriendlyMessage string `json:"friendlyMessage" yaml:"friendlyMessage"`

	// PossibleSolutions lists remedies, most likely fix first.
	PossibleSolutions []string `json:"possibleSolutions" yaml:"possibleSolutions"`

	// Severity is always one of the four defined tiers.
	Severity Severity `json:"severity" yaml:"severity"`

	// DocumentationLinks is nil unless the matching rule references
	// external documentation.
	DocumentationLinks []string `json:"documentationLinks,omitempty" yaml:"documentationLinks,omitempty"`
}
