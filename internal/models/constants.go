package models

// ============================================================================
// PRIORITY CONSTANTS
// ============================================================================

// Priority scale for tickets (1-5)
const (
	PriorityLowest  = 1
	PriorityLow     = 2
	PriorityMedium  = 3
	PriorityHigh    = 4
	PriorityHighest = 5
)

// DefaultPriority is used when a ticket is created without an explicit priority
const DefaultPriority = PriorityMedium

// ValidPriority reports whether p is on the 1-5 scale
func ValidPriority(p int) bool {
	return p >= PriorityLowest && p <= PriorityHighest
}

// ============================================================================
// TITLE LIMITS
// ============================================================================

// MaxTitleLength is the maximum ticket title length accepted by the server
const MaxTitleLength = 255
