package domain

// UserRole defines the two roles in the procurement workflow.
type UserRole string

const (
	RoleRequestor   UserRole = "requestor"
	RoleProcurement UserRole = "procurement"
)

// RequestStatus represents the lifecycle of a procurement request.
type RequestStatus string

const (
	StatusOpen       RequestStatus = "open"
	StatusInProgress RequestStatus = "in_progress"
	StatusClosed     RequestStatus = "closed"
)

// ValidStatusTransitions maps each status to the statuses it may move to.
// Closed is terminal.
var ValidStatusTransitions = map[RequestStatus][]RequestStatus{
	StatusOpen:       {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusClosed, StatusOpen},
	StatusClosed:     {},
}

// CanTransition reports whether a request may move between two statuses.
func CanTransition(from, to RequestStatus) bool {
	for _, s := range ValidStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a known request status.
func IsValidStatus(s RequestStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// LineType classifies an order line. Only standard lines count toward
// the request total.
type LineType string

const (
	LineTypeStandard    LineType = "standard"
	LineTypeAlternative LineType = "alternative"
	LineTypeOptional    LineType = "optional"
)

// NormalizeLineType maps arbitrary input to a valid LineType, defaulting
// to standard.
func NormalizeLineType(s string) LineType {
	switch LineType(s) {
	case LineTypeAlternative:
		return LineTypeAlternative
	case LineTypeOptional:
		return LineTypeOptional
	default:
		return LineTypeStandard
	}
}

// FileType represents the accepted attachment document types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"text/plain":      FileTypeTXT,
}

// AllowedExtensions maps lowercase file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"txt": FileTypeTXT,
}
