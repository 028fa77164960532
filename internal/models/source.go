package models

// SourceKind represents where install packages come from
type SourceKind int

const (
	// SourceDefault uses the distro's built-in channel for the requested version
	SourceDefault SourceKind = iota
	// SourceExplicit uses a repo URL given on the command line or environment
	SourceExplicit
	// SourceConfig uses a repository section from the cephkit config file
	SourceConfig
)

// String returns the string representation of SourceKind
func (k SourceKind) String() string {
	switch k {
	case SourceExplicit:
		return "explicit"
	case SourceConfig:
		return "config"
	default:
		return "default"
	}
}

// RepoOption is a single key=value pair from a repository section
type RepoOption struct {
	Key   string
	Value string
}

// RepoOptions holds a section's options in file order. Keys are unique.
type RepoOptions []RepoOption

// Get returns the value for key and whether it was present
func (o RepoOptions) Get(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// Pop removes key from the options and returns its value
func (o *RepoOptions) Pop(key string) (string, bool) {
	for i, opt := range *o {
		if opt.Key == key {
			*o = append((*o)[:i], (*o)[i+1:]...)
			return opt.Value, true
		}
	}
	return "", false
}

// Clone returns an independent copy of the options
func (o RepoOptions) Clone() RepoOptions {
	out := make(RepoOptions, len(o))
	copy(out, o)
	return out
}

// RepositorySource is the resolved package origin for an install run.
// Exactly one is produced per invocation and consumed once.
type RepositorySource struct {
	Kind SourceKind

	// SourceExplicit
	RepoURL string
	GPGURL  string

	// SourceConfig
	Section    string
	Options    RepoOptions
	ExtraRepos []string
}

// ConfigDocument is the read-only lookup view of a cephkit config file.
// Implementations are never mutated by the orchestrators and may be
// shared across host iterations.
type ConfigDocument interface {
	// HasRepos reports whether any repository sections exist
	HasRepos() bool

	// RepoNames returns the repository section names in file order
	RepoNames() []string

	// DefaultRepo returns the name of the section marked default, or ""
	DefaultRepo() string

	// Options returns a section's options in file order
	Options(section string) RepoOptions

	// List returns a comma or whitespace separated option as a list
	List(section, key string) []string
}
