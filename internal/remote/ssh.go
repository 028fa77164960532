package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHConnector implements the Connector interface over SSH
type SSHConnector struct {
	Port    int
	KeyPath string // explicit private key, empty means ~/.ssh defaults
}

// NewSSHConnector creates a connector using the standard SSH port
func NewSSHConnector() *SSHConnector {
	return &SSHConnector{Port: 22}
}

// Connect opens an SSH connection to host. There is no dial timeout;
// callers wait as long as the transport does.
func (c *SSHConnector) Connect(ctx context.Context, host, username string) (Session, error) {
	if username == "" {
		current, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to determine local user: %w", err)
		}
		username = current.Username
	}

	auth, err := c.authMethods()
	if err != nil {
		return nil, err
	}

	config := &ssh.ClientConfig{
		User:            username,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback(),
	}

	addr := net.JoinHostPort(host, strconv.Itoa(c.Port))
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s as %s: %w", host, username, err)
	}

	return &sshSession{host: host, client: client}, nil
}

// authMethods collects SSH agent and private key authentication
func (c *SSHConnector) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		conn, err := net.Dial("unix", sock)
		if err == nil {
			agentClient := agent.NewClient(conn)
			methods = append(methods, ssh.PublicKeysCallback(agentClient.Signers))
		} else {
			logrus.Debugf("ssh agent not reachable: %v", err)
		}
	}

	keyPaths := []string{c.KeyPath}
	if c.KeyPath == "" {
		keyPaths = []string{"~/.ssh/id_ed25519", "~/.ssh/id_ecdsa", "~/.ssh/id_rsa"}
	}

	var signers []ssh.Signer
	for _, path := range keyPaths {
		expanded, err := homedir.Expand(path)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			continue
		}
		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			logrus.Debugf("skipping unreadable key %s: %v", expanded, err)
			continue
		}
		signers = append(signers, signer)
	}
	if len(signers) > 0 {
		methods = append(methods, ssh.PublicKeys(signers...))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no usable SSH authentication found (agent or key file)")
	}
	return methods, nil
}

// hostKeyCallback verifies against known_hosts when available
func hostKeyCallback() ssh.HostKeyCallback {
	path, err := homedir.Expand("~/.ssh/known_hosts")
	if err == nil {
		if callback, err := knownhosts.New(path); err == nil {
			return callback
		}
	}
	logrus.Warn("known_hosts not usable, skipping host key verification")
	return ssh.InsecureIgnoreHostKey()
}

// sshSession implements the Session interface on one SSH client
type sshSession struct {
	host   string
	client *ssh.Client
}

// Run executes argv on the remote host
func (s *sshSession) Run(ctx context.Context, argv []string) error {
	log := logrus.WithField("host", s.host)
	cmd := QuoteArgs(argv)
	log.Debugf("running command: %s", cmd)

	sess, err := s.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to open session on %s: %w", s.host, err)
	}
	defer sess.Close()

	out := log.WriterLevel(logrus.DebugLevel)
	defer out.Close()
	sess.Stdout = out
	sess.Stderr = out

	if err := sess.Run(cmd); err != nil {
		return fmt.Errorf("command %q failed on %s: %w", cmd, s.host, err)
	}
	return nil
}

// Output executes argv and returns its combined output
func (s *sshSession) Output(ctx context.Context, argv []string) (string, error) {
	cmd := QuoteArgs(argv)
	logrus.WithField("host", s.host).Debugf("running command: %s", cmd)

	sess, err := s.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to open session on %s: %w", s.host, err)
	}
	defer sess.Close()

	out, err := sess.CombinedOutput(cmd)
	if err != nil {
		return "", fmt.Errorf("command %q failed on %s: %w", cmd, s.host, err)
	}
	return string(out), nil
}

// TryRun executes argv ignoring failures
func (s *sshSession) TryRun(ctx context.Context, argv []string) {
	if err := s.Run(ctx, argv); err != nil {
		logrus.WithField("host", s.host).Debugf("ignoring failure: %v", err)
	}
}

// Which reports whether name is an executable on the remote PATH
func (s *sshSession) Which(ctx context.Context, name string) (bool, error) {
	return s.test(ctx, []string{"command", "-v", name})
}

// PathExists reports whether path exists on the remote host
func (s *sshSession) PathExists(ctx context.Context, path string) (bool, error) {
	return s.test(ctx, []string{"test", "-e", path})
}

// test runs a probe command, mapping a non-zero exit to false
func (s *sshSession) test(ctx context.Context, argv []string) (bool, error) {
	err := s.Run(ctx, argv)
	if err == nil {
		return true, nil
	}
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

// Close releases the underlying connection
func (s *sshSession) Close() error {
	return s.client.Close()
}
