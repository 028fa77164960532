package distro

import (
	"context"

	"github.com/cephkit/cephkit/internal/models"
)

// ReleaseKeyURL is the upstream ceph release signing key. It is also
// the fallback when a custom repo URL is given without a GPG key URL.
const ReleaseKeyURL = "https://ceph.com/git/?p=ceph.git;a=blob_plain;f=keys/release.asc"

// Family represents a supported platform family
type Family int

const (
	FamilyUnknown Family = iota
	FamilyDebian
	FamilyRHEL
)

// String returns the string representation of Family
func (f Family) String() string {
	switch f {
	case FamilyDebian:
		return "debian"
	case FamilyRHEL:
		return "rhel"
	default:
		return "unknown"
	}
}

// Info is the detected identity of a host's distribution
type Info struct {
	Name     string
	Release  string
	Codename string
}

// Adapter is the capability contract a platform family provides for
// package lifecycle actions. Orchestrators depend only on this
// interface.
type Adapter interface {
	// Info returns the detected distro identity
	Info() Info

	// Install installs ceph from the distro's default channel for the
	// requested version
	Install(ctx context.Context, spec models.VersionSpec, adjustRepos bool) error

	// Uninstall removes the ceph packages, purging configuration too
	// when purge is set
	Uninstall(ctx context.Context, purge bool) error

	// RepoInstall installs ceph from a named repository section.
	// baseURL and gpgKey are mandatory; opts carries the section's
	// remaining options.
	RepoInstall(ctx context.Context, name, baseURL, gpgKey string, opts models.RepoOptions) error

	// MirrorInstall installs ceph from an explicit mirror URL
	MirrorInstall(ctx context.Context, repoURL, gpgURL string, adjustRepos bool) error

	// CephVersion returns the installed ceph version string
	CephVersion(ctx context.Context) (string, error)
}
