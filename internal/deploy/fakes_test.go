package deploy

import (
	"context"
	"fmt"

	"github.com/cephkit/cephkit/internal/distro"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/cephkit/cephkit/internal/remote"
)

// fakeSession records every command it is asked to run
type fakeSession struct {
	host          string
	calls         [][]string
	runErr        func(argv []string) error
	whichResult   bool
	whichErr      error
	existsResults []bool
	closed        bool
}

func (s *fakeSession) Run(ctx context.Context, argv []string) error {
	s.calls = append(s.calls, argv)
	if s.runErr != nil {
		return s.runErr(argv)
	}
	return nil
}

func (s *fakeSession) Output(ctx context.Context, argv []string) (string, error) {
	return "", nil
}

func (s *fakeSession) TryRun(ctx context.Context, argv []string) {
	s.calls = append(s.calls, argv)
	// best-effort, errors swallowed
}

func (s *fakeSession) Which(ctx context.Context, name string) (bool, error) {
	return s.whichResult, s.whichErr
}

func (s *fakeSession) PathExists(ctx context.Context, path string) (bool, error) {
	if len(s.existsResults) == 0 {
		return false, nil
	}
	result := s.existsResults[0]
	s.existsResults = s.existsResults[1:]
	return result, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// fakeConnector hands out one fakeSession per host and records the
// connection order
type fakeConnector struct {
	sessions   map[string]*fakeSession
	connectErr map[string]error
	connected  []string
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{sessions: make(map[string]*fakeSession)}
}

func (c *fakeConnector) Connect(ctx context.Context, host, username string) (remote.Session, error) {
	c.connected = append(c.connected, host)
	if err := c.connectErr[host]; err != nil {
		return nil, err
	}
	sess, ok := c.sessions[host]
	if !ok {
		sess = &fakeSession{host: host}
		c.sessions[host] = sess
	}
	return sess, nil
}

// repoInstallCall captures the arguments of one RepoInstall invocation
type repoInstallCall struct {
	name    string
	baseURL string
	gpgKey  string
	opts    models.RepoOptions
}

// fakeAdapter records lifecycle calls instead of mutating a host
type fakeAdapter struct {
	info         distro.Info
	calls        []string
	repoInstalls []repoInstallCall
	installErr   error
	uninstallErr error
	purged       []bool
	version      string
}

func (a *fakeAdapter) Info() distro.Info {
	return a.info
}

func (a *fakeAdapter) Install(ctx context.Context, spec models.VersionSpec, adjustRepos bool) error {
	a.calls = append(a.calls, fmt.Sprintf("install:%s", spec))
	return a.installErr
}

func (a *fakeAdapter) Uninstall(ctx context.Context, purge bool) error {
	a.calls = append(a.calls, "uninstall")
	a.purged = append(a.purged, purge)
	return a.uninstallErr
}

func (a *fakeAdapter) RepoInstall(ctx context.Context, name, baseURL, gpgKey string, opts models.RepoOptions) error {
	a.calls = append(a.calls, fmt.Sprintf("repo:%s", name))
	a.repoInstalls = append(a.repoInstalls, repoInstallCall{
		name:    name,
		baseURL: baseURL,
		gpgKey:  gpgKey,
		opts:    opts.Clone(),
	})
	return a.installErr
}

func (a *fakeAdapter) MirrorInstall(ctx context.Context, repoURL, gpgURL string, adjustRepos bool) error {
	a.calls = append(a.calls, fmt.Sprintf("mirror:%s:%s", repoURL, gpgURL))
	return a.installErr
}

func (a *fakeAdapter) CephVersion(ctx context.Context) (string, error) {
	if a.version == "" {
		return "ceph version 0.80", nil
	}
	return a.version, nil
}

// fakeConf implements models.ConfigDocument in memory
type fakeConf struct {
	repos       []string
	defaultRepo string
	options     map[string]models.RepoOptions
	lists       map[string][]string
}

func (c *fakeConf) HasRepos() bool {
	return len(c.repos) > 0
}

func (c *fakeConf) RepoNames() []string {
	return c.repos
}

func (c *fakeConf) DefaultRepo() string {
	return c.defaultRepo
}

func (c *fakeConf) Options(section string) models.RepoOptions {
	return c.options[section].Clone()
}

func (c *fakeConf) List(section, key string) []string {
	return c.lists[section]
}

// newTestDeployer wires a Deployer with fake detection
func newTestDeployer(conn *fakeConnector, adapters map[string]*fakeAdapter) *Deployer {
	return &Deployer{
		conn: conn,
		detect: func(ctx context.Context, sess remote.Session, host string) (distro.Adapter, error) {
			adapter, ok := adapters[host]
			if !ok {
				return nil, fmt.Errorf("no adapter for %s", host)
			}
			return adapter, nil
		},
	}
}
