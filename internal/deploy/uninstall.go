package deploy

import (
	"context"
	"strings"

	"github.com/cephkit/cephkit/internal/models"
	"github.com/sirupsen/logrus"
)

// Uninstall removes the ceph packages from every host in order
func (d *Deployer) Uninstall(ctx context.Context, req *models.HostRequest) error {
	logrus.Debugf("Uninstalling on hosts %s", strings.Join(req.Hosts, " "))
	return d.eachUninstall(ctx, req, false)
}

// Purge removes the ceph packages and their configuration from every
// host in order
func (d *Deployer) Purge(ctx context.Context, req *models.HostRequest) error {
	logrus.Debugf("Purging from hosts %s", strings.Join(req.Hosts, " "))
	return d.eachUninstall(ctx, req, true)
}

func (d *Deployer) eachUninstall(ctx context.Context, req *models.HostRequest, purge bool) error {
	for _, host := range req.Hosts {
		if err := d.uninstallHost(ctx, host, req.Username, purge); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) uninstallHost(ctx context.Context, host, username string, purge bool) error {
	log := logrus.WithField("host", host)
	logrus.Debugf("Detecting platform for host %s ...", host)

	sess, err := d.conn.Connect(ctx, host, username)
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

	if purge {
		log.Info("purging host")
	} else {
		log.Info("uninstalling ceph")
	}

	if err := adapter.Uninstall(ctx, purge); err != nil {
		return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}
	return nil
}
