package model

import (
	"strings"

	"github.com/google/uuid"
)

// Category classifies a piece of detected PII.
type Category string

// PII categories. Structured categories carry a rigid format (digits,
// separators); semi-structured have loose shape conventions; freeform
// categories are open vocabulary.
const (
	CatPerson        Category = "PERSON"
	CatOrg           Category = "ORG"
	CatEmail         Category = "EMAIL"
	CatPhone         Category = "PHONE"
	CatSSN           Category = "SSN"
	CatCreditCard    Category = "CREDIT_CARD"
	CatDate          Category = "DATE"
	CatAddress       Category = "ADDRESS"
	CatLocation      Category = "LOCATION"
	CatIPAddress     Category = "IP_ADDRESS"
	CatIBAN          Category = "IBAN"
	CatPassport      Category = "PASSPORT"
	CatDriverLicense Category = "DRIVER_LICENSE"
	CatCustom        Category = "CUSTOM"
	CatUnknown       Category = "UNKNOWN"
)

// Source identifies which detection layer produced a match or region.
type Source string

// Detection sources.
const (
	SourceRegex     Source = "REGEX"
	SourceNER       Source = "NER"
	SourceGLiNER    Source = "GLINER"
	SourceLLM       Source = "LLM"
	SourceManual    Source = "MANUAL"
	SourceHeuristic Source = "HEURISTIC"
)

// Action is the user review decision attached to a region.
type Action string

// Region review actions.
const (
	ActionPending  Action = "PENDING"  // awaiting user decision
	ActionCancel   Action = "CANCEL"   // dismiss highlight, keep content
	ActionRemove   Action = "REMOVE"   // permanently redact
	ActionTokenize Action = "TOKENIZE" // replace with reversible token
)

// DetectionMatch is one candidate occurrence reported by a detector
// adapter: a half-open character span [Start, End) in the text the
// detector was given, plus category and confidence.
type DetectionMatch struct {
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Text       string   `json:"text"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Source     Source   `json:"source"`
}

// PIIRegion is a finalized detection with geometry, ready for review
// and redaction. Regions are never silently deleted once surfaced;
// only an explicit user Action removes one.
type PIIRegion struct {
	ID         string   `json:"id"`
	Page       int      `json:"page_number"`
	BBox       BBox     `json:"bbox"`
	Text       string   `json:"text"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Source     Source   `json:"source"`
	CharStart  int      `json:"char_start"`
	CharEnd    int      `json:"char_end"`
	Action     Action   `json:"action"`

	// LinkedGroup binds sibling regions that together represent one
	// multi-line detection. Siblings share identical text, category,
	// confidence, and source. Empty for standalone regions.
	LinkedGroup string `json:"linked_group,omitempty"`
}

// NewRegionID returns a fresh 12-hex-char region identifier.
func NewRegionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NewGroupID returns a fresh linked-group identifier.
func NewGroupID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// IsStructured reports whether the category has a rigid format.
func (c Category) IsStructured() bool {
	switch c {
	case CatSSN, CatEmail, CatPhone, CatCreditCard, CatIBAN,
		CatIPAddress, CatDate, CatPassport, CatDriverLicense:
		return true
	}
	return false
}

// IsSemiStructured reports whether the category has loose shape
// conventions (legal suffixes, street patterns).
func (c Category) IsSemiStructured() bool {
	return c == CatOrg || c == CatAddress
}
