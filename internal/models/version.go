package models

// VersionKind represents the release channel a version belongs to
type VersionKind int

const (
	KindStable VersionKind = iota
	KindTesting
	KindDev
)

// String returns the string representation of VersionKind
func (k VersionKind) String() string {
	switch k {
	case KindStable:
		return "stable"
	case KindTesting:
		return "testing"
	case KindDev:
		return "dev"
	default:
		return "unknown"
	}
}

// VersionSpec is the canonical version selection built once from the
// mutually exclusive version flags. Value holds the release codename for
// stable, the branch or tag for dev, and is empty for testing.
type VersionSpec struct {
	Kind  VersionKind
	Value string
}

// String returns a human readable form, e.g. "stable version emperor"
func (v VersionSpec) String() string {
	if v.Value == "" {
		return v.Kind.String()
	}
	return v.Kind.String() + " version " + v.Value
}
