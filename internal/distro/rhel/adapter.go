package rhel

import (
	"context"
	"fmt"
	"strings"

	"github.com/cephkit/cephkit/internal/distro"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/cephkit/cephkit/internal/remote"
)

// cephPackages are installed and removed as a unit
var cephPackages = []string{"ceph", "ceph-common"}

// repo file options handled by the orchestration itself, never written
// into the .repo file
var bookkeepingOptions = map[string]bool{
	"install_ceph": true,
	"extra-repos":  true,
	"default":      true,
}

// Adapter implements the distro.Adapter interface for the RHEL family
// (centos, rhel, fedora and derivatives)
type Adapter struct {
	sess remote.Session
	info distro.Info
}

// New creates a RHEL family adapter bound to an open session
func New(sess remote.Session, info distro.Info) *Adapter {
	return &Adapter{sess: sess, info: info}
}

// Info returns the detected distro identity
func (a *Adapter) Info() distro.Info {
	return a.info
}

// Install installs ceph from the upstream channel for the requested version
func (a *Adapter) Install(ctx context.Context, spec models.VersionSpec, adjustRepos bool) error {
	if adjustRepos {
		major := majorRelease(a.info.Release)
		var baseURL string
		switch spec.Kind {
		case models.KindTesting:
			baseURL = fmt.Sprintf("https://ceph.com/rpm-testing/el%s/$basearch", major)
		case models.KindDev:
			baseURL = fmt.Sprintf(
				"https://gitbuilder.ceph.com/ceph-rpm-centos%s-x86_64-basic/ref/%s/$basearch",
				major, spec.Value,
			)
		default:
			baseURL = fmt.Sprintf("https://ceph.com/rpm-%s/el%s/$basearch", spec.Value, major)
		}

		if err := a.importKey(ctx, distro.ReleaseKeyURL); err != nil {
			return err
		}
		content := a.repoFileContent("ceph", baseURL, distro.ReleaseKeyURL, nil)
		if err := a.writeRepoFile(ctx, "ceph", content); err != nil {
			return err
		}
	}

	return a.installPackages(ctx)
}

// Uninstall removes the ceph packages. RPM has no purge concept, so
// purge additionally drops the repo file ceph installed with.
func (a *Adapter) Uninstall(ctx context.Context, purge bool) error {
	argv := append([]string{"yum", "-y", "remove"}, cephPackages...)
	if err := a.sess.Run(ctx, argv); err != nil {
		return err
	}
	if purge {
		return a.sess.Run(ctx, []string{"rm", "-f", "/etc/yum.repos.d/ceph.repo"})
	}
	return nil
}

// RepoInstall installs ceph from a named repository section, writing
// the section's remaining options into the .repo file in order
func (a *Adapter) RepoInstall(ctx context.Context, name, baseURL, gpgKey string, opts models.RepoOptions) error {
	installCeph := false
	if value, ok := opts.Get("install_ceph"); ok {
		installCeph = isTruthy(value)
	}

	if err := a.importKey(ctx, gpgKey); err != nil {
		return err
	}
	content := a.repoFileContent(name, baseURL, gpgKey, opts)
	if err := a.writeRepoFile(ctx, name, content); err != nil {
		return err
	}

	if installCeph {
		return a.installPackages(ctx)
	}
	return nil
}

// MirrorInstall installs ceph from an explicit mirror URL
func (a *Adapter) MirrorInstall(ctx context.Context, repoURL, gpgURL string, adjustRepos bool) error {
	if adjustRepos {
		if err := a.importKey(ctx, gpgURL); err != nil {
			return err
		}
		content := a.repoFileContent("ceph", repoURL, gpgURL, nil)
		if err := a.writeRepoFile(ctx, "ceph", content); err != nil {
			return err
		}
	}

	return a.installPackages(ctx)
}

// CephVersion returns the installed ceph version string
func (a *Adapter) CephVersion(ctx context.Context) (string, error) {
	out, err := a.sess.Output(ctx, []string{"ceph", "--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// repoFileContent renders a yum .repo file for the repository
func (a *Adapter) repoFileContent(name, baseURL, gpgKey string, opts models.RepoOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]\n", name)
	fmt.Fprintf(&sb, "name=%s repo\n", name)
	fmt.Fprintf(&sb, "baseurl=%s\n", baseURL)
	sb.WriteString("enabled=1\n")
	sb.WriteString("gpgcheck=1\n")
	fmt.Fprintf(&sb, "gpgkey=%s\n", gpgKey)
	for _, opt := range opts {
		if bookkeepingOptions[opt.Key] {
			continue
		}
		fmt.Fprintf(&sb, "%s=%s\n", opt.Key, opt.Value)
	}
	return sb.String()
}

// importKey imports a GPG key URL into the rpm keyring
func (a *Adapter) importKey(ctx context.Context, url string) error {
	return a.sess.Run(ctx, []string{"rpm", "--import", url})
}

// writeRepoFile writes content to /etc/yum.repos.d/<name>.repo
func (a *Adapter) writeRepoFile(ctx context.Context, name, content string) error {
	path := fmt.Sprintf("/etc/yum.repos.d/%s.repo", name)
	script := fmt.Sprintf("printf '%%s' %s > %s", remote.Quote(content), path)
	return a.sess.Run(ctx, []string{"sh", "-c", script})
}

func (a *Adapter) installPackages(ctx context.Context) error {
	return a.sess.Run(ctx, append([]string{"yum", "-y", "install"}, cephPackages...))
}

// majorRelease truncates "9.4" style versions to "9"
func majorRelease(release string) string {
	if i := strings.IndexByte(release, '.'); i > 0 {
		return release[:i]
	}
	return release
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}
