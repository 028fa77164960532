package deploy

import (
	"context"
	"strings"

	"github.com/cephkit/cephkit/internal/models"
	"github.com/sirupsen/logrus"
)

// Filesystem paths the deployed ceph packages use. These must match the
// package conventions exactly.
const (
	cephDataDir = "/var/lib/ceph"
	cephConfDir = "/etc/ceph/"
)

var (
	rmDataArgs = []string{"rm", "-rf", "--one-file-system", "--", cephDataDir}
	rmConfArgs = []string{"rm", "-rf", "--one-file-system", "--", cephConfDir}
	umountArgs = []string{
		"find", cephDataDir,
		"-mindepth", "1",
		"-maxdepth", "2",
		"-type", "d",
		"-exec", "umount", "{}", ";",
	}
)

// PurgeData destroys the ceph data and configuration directories on
// every host. Phase 1 verifies ceph is no longer installed anywhere;
// no host is touched destructively unless the whole fleet passes.
func (d *Deployer) PurgeData(ctx context.Context, req *models.HostRequest) error {
	logrus.Debugf("Purging data from hosts %s", strings.Join(req.Hosts, " "))

	var installed []string
	for _, host := range req.Hosts {
		present, err := d.cephInstalled(ctx, host, req.Username)
		if err != nil {
			return err
		}
		if present {
			installed = append(installed, host)
		}
	}
	if len(installed) > 0 {
		logrus.Errorf("ceph is still installed on: %s", strings.Join(installed, ", "))
		return &models.PreconditionError{Hosts: installed}
	}

	for _, host := range req.Hosts {
		if err := d.purgeHostData(ctx, host, req.Username); err != nil {
			return err
		}
	}
	return nil
}

// cephInstalled checks whether the ceph binary is still on a host
func (d *Deployer) cephInstalled(ctx context.Context, host, username string) (bool, error) {
	sess, err := d.conn.Connect(ctx, host, username)
	if err != nil {
		return false, &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}
	defer sess.Close()

	present, err := sess.Which(ctx, "ceph")
	if err != nil {
		return false, &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}
	return present, nil
}

func (d *Deployer) purgeHostData(ctx context.Context, host, username string) error {
	log := logrus.WithField("host", host)

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
	log.Info("purging data")

	// The first removal attempt fails when OSD mounts are still below
	// the data dir, so errors are dealt with after the existence check
	sess.TryRun(ctx, rmDataArgs)

	exists, err := sess.PathExists(ctx, cephDataDir)
	if err != nil {
		log.Debugf("could not check %s: %v", cephDataDir, err)
		exists = false
	}

	if exists {
		log.Warning("OSDs may still be mounted, trying to unmount them")
		if err := sess.Run(ctx, umountArgs); err != nil {
			return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
		}

		// OSDs should be unmounted now, this time check for errors
		if err := sess.Run(ctx, rmDataArgs); err != nil {
			return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
		}
	}

	if err := sess.Run(ctx, rmConfArgs); err != nil {
		return &models.DeployError{Type: models.ErrRemoteExec, Host: host, Err: err}
	}
	return nil
}
