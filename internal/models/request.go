package models

// InstallRequest contains everything an install run needs. It is built
// once by the CLI and is immutable afterwards.
type InstallRequest struct {
	// Hosts to install on, processed in order
	Hosts    []string
	Username string

	// Version selection
	Version VersionSpec

	// Repository overrides (environment already applied)
	RepoURL string
	GPGURL  string

	// AdjustRepos allows the installer to modify package source repos
	AdjustRepos bool

	// Conf is the optional cephkit config document, nil when absent
	Conf ConfigDocument
}

// HostRequest contains the target list for uninstall, purge and
// purge-data runs
type HostRequest struct {
	Hosts    []string
	Username string
}
