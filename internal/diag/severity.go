package diag

// Severity ranks a diagnostic. Only SevError blocks the operation that
// reported it; the rest are advisory.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsError reports whether the severity blocks.
func (s Severity) IsError() bool {
	return s == SevError
}
