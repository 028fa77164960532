package deploy

import (
	"context"
	"strings"

	"github.com/cephkit/cephkit/internal/distro"
	"github.com/cephkit/cephkit/internal/keys"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/sirupsen/logrus"
)

// Install installs ceph on every host in order. The repository source
// is resolved once from invocation-level inputs; any per-host error
// aborts the remaining hosts.
func (d *Deployer) Install(ctx context.Context, req *models.InstallRequest) error {
	src := ResolveSource(req)

	switch src.Kind {
	case models.SourceExplicit:
		if fingerprint, err := keys.Inspect(ctx, src.GPGURL); err != nil {
			logrus.Warnf("could not verify GPG key at %s: %v", src.GPGURL, err)
		} else {
			logrus.Infof("custom repo GPG key fingerprint: %s", fingerprint)
		}
	case models.SourceConfig:
		logrus.Info("detected valid custom repositories from config file")
	}

	logrus.Debugf("Installing %s on hosts %s", req.Version, strings.Join(req.Hosts, " "))

	for _, host := range req.Hosts {
		if err := d.installHost(ctx, host, req, src); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) installHost(ctx context.Context, host string, req *models.InstallRequest, src models.RepositorySource) error {
	log := logrus.WithField("host", host)
	logrus.Debugf("Detecting platform for host %s ...", host)

	sess, err := d.conn.Connect(ctx, host, req.Username)
	if err != nil {
		return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}
	defer sess.Close()

	adapter, err := d.detect(ctx, sess, host)
	if err != nil {
		return &models.DeployError{Type: models.ErrDistroDetect, Host: host, Err: err}
	}
	info := adapter.Info()
	logrus.Infof("Distro info: %s %s %s", info.Name, info.Release, info.Codename)
	log.Info("installing ceph")

	switch src.Kind {
	case models.SourceExplicit:
		log.Infof("using custom repository location: %s", src.RepoURL)
		if err := adapter.MirrorInstall(ctx, src.RepoURL, src.GPGURL, req.AdjustRepos); err != nil {
			return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
		}
	case models.SourceConfig:
		if err := installConfigRepos(ctx, adapter, req.Conf, src, host, log); err != nil {
			return err
		}
	default:
		if err := adapter.Install(ctx, req.Version, req.AdjustRepos); err != nil {
			return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
		}
	}

	version, err := adapter.CephVersion(ctx)
	if err != nil {
		return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}
	log.Infof("installed ceph version: %s", version)
	return nil
}

// installConfigRepos installs the resolved config section and then any
// extra repos it names. Missing mandatory keys fail before any adapter
// call for that section.
func installConfigRepos(ctx context.Context, adapter distro.Adapter, conf models.ConfigDocument, src models.RepositorySource, host string, log *logrus.Entry) error {
	opts := src.Options.Clone()
	baseURL, ok := opts.Pop("baseurl")
	if !ok {
		return &models.ConfigError{Key: "baseurl", Section: src.Section}
	}
	gpgKey, ok := opts.Pop("gpgkey")
	if !ok {
		return &models.ConfigError{Key: "gpgkey", Section: src.Section}
	}
	opts = append(opts, models.RepoOption{Key: "install_ceph", Value: "true"})

	log.Info("adding custom repository file")
	if err := adapter.RepoInstall(ctx, src.Section, baseURL, gpgKey, opts); err != nil {
		return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}

	// Extra repos install from their own sections and are not required
	// to carry the install_ceph marker
	for _, extra := range src.ExtraRepos {
		log.Infof("adding extra repo file: %s.repo", extra)
		xopts := conf.Options(extra)
		xbase, ok := xopts.Pop("baseurl")
		if !ok {
			return &models.ConfigError{Key: "baseurl", Section: extra}
		}
		xgpg, ok := xopts.Pop("gpgkey")
		if !ok {
			return &models.ConfigError{Key: "gpgkey", Section: extra}
		}
		if err := adapter.RepoInstall(ctx, extra, xbase, xgpg, xopts); err != nil {
			return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
		}
	}
	return nil
}
