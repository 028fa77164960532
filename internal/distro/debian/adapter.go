package debian

import (
	"context"
	"fmt"
	"strings"

	"github.com/cephkit/cephkit/internal/distro"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/cephkit/cephkit/internal/remote"
	"github.com/sirupsen/logrus"
)

// cephPackages are installed and removed as a unit
var cephPackages = []string{"ceph", "ceph-mds", "ceph-common", "ceph-fs-common", "gdisk"}

// Adapter implements the distro.Adapter interface for Debian and Ubuntu
type Adapter struct {
	sess remote.Session
	info distro.Info
}

// New creates a Debian family adapter bound to an open session
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
		var repoLine string
		switch spec.Kind {
		case models.KindTesting:
			repoLine = fmt.Sprintf("deb https://ceph.com/debian-testing/ %s main", a.info.Codename)
		case models.KindDev:
			repoLine = fmt.Sprintf(
				"deb https://gitbuilder.ceph.com/ceph-deb-%s-x86_64-basic/ref/%s/ %s main",
				a.info.Codename, spec.Value, a.info.Codename,
			)
		default:
			repoLine = fmt.Sprintf("deb https://ceph.com/debian-%s/ %s main", spec.Value, a.info.Codename)
		}

		if err := a.addKey(ctx, distro.ReleaseKeyURL); err != nil {
			return err
		}
		if err := a.writeSourcesList(ctx, "ceph", repoLine); err != nil {
			return err
		}
	}

	if err := a.update(ctx); err != nil {
		return err
	}
	return a.installPackages(ctx)
}

// Uninstall removes the ceph packages, purging configuration when purge is set
func (a *Adapter) Uninstall(ctx context.Context, purge bool) error {
	action := "remove"
	if purge {
		action = "purge"
	}
	argv := []string{"env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "-q", action, "--assume-yes"}
	return a.sess.Run(ctx, append(argv, cephPackages...))
}

// RepoInstall installs ceph from a named repository section. Options
// other than install_ceph are rpm specific and ignored here.
func (a *Adapter) RepoInstall(ctx context.Context, name, baseURL, gpgKey string, opts models.RepoOptions) error {
	installCeph := false
	for _, opt := range opts {
		switch opt.Key {
		case "install_ceph":
			installCeph = isTruthy(opt.Value)
		default:
			logrus.Debugf("ignoring repo option %s on %s", opt.Key, a.info.Name)
		}
	}

	repoLine := fmt.Sprintf("deb %s %s main", baseURL, a.info.Codename)
	if err := a.addKey(ctx, gpgKey); err != nil {
		return err
	}
	if err := a.writeSourcesList(ctx, name, repoLine); err != nil {
		return err
	}
	if err := a.update(ctx); err != nil {
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
		if err := a.addKey(ctx, gpgURL); err != nil {
			return err
		}
		repoLine := fmt.Sprintf("deb %s %s main", repoURL, a.info.Codename)
		if err := a.writeSourcesList(ctx, "ceph", repoLine); err != nil {
			return err
		}
	}

	if err := a.update(ctx); err != nil {
		return err
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

// addKey imports a GPG key from url into apt
func (a *Adapter) addKey(ctx context.Context, url string) error {
	script := fmt.Sprintf("wget -qO- %s | apt-key add -", remote.Quote(url))
	return a.sess.Run(ctx, []string{"sh", "-c", script})
}

// writeSourcesList writes an apt source entry to sources.list.d
func (a *Adapter) writeSourcesList(ctx context.Context, name, repoLine string) error {
	path := fmt.Sprintf("/etc/apt/sources.list.d/%s.list", name)
	script := fmt.Sprintf("echo %s > %s", remote.Quote(repoLine), path)
	return a.sess.Run(ctx, []string{"sh", "-c", script})
}

func (a *Adapter) update(ctx context.Context) error {
	return a.sess.Run(ctx, []string{"apt-get", "-q", "update"})
}

func (a *Adapter) installPackages(ctx context.Context) error {
	argv := []string{"env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "-q", "install", "--assume-yes"}
	return a.sess.Run(ctx, append(argv, cephPackages...))
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}
