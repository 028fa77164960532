package deploy

import (
	"context"
	"fmt"

	"github.com/cephkit/cephkit/internal/distro"
	"github.com/cephkit/cephkit/internal/distro/debian"
	"github.com/cephkit/cephkit/internal/distro/rhel"
	"github.com/cephkit/cephkit/internal/remote"
)

// DetectFunc resolves a platform adapter for an open session
type DetectFunc func(ctx context.Context, sess remote.Session, host string) (distro.Adapter, error)

// Deployer runs fleet-wide package lifecycle operations. Hosts are
// processed sequentially in list order and any per-host error aborts
// the remaining hosts.
type Deployer struct {
	conn   remote.Connector
	detect DetectFunc
}

// New creates a Deployer using platform detection over the session
func New(conn remote.Connector) *Deployer {
	return &Deployer{conn: conn, detect: detectAdapter}
}

// detectAdapter picks the adapter implementation for the host's family
func detectAdapter(ctx context.Context, sess remote.Session, host string) (distro.Adapter, error) {
	info, family, err := distro.Detect(ctx, sess)
	if err != nil {
		return nil, err
	}
	switch family {
	case distro.FamilyDebian:
		return debian.New(sess, info), nil
	case distro.FamilyRHEL:
		return rhel.New(sess, info), nil
	}
	return nil, fmt.Errorf("no adapter for platform family %s", family)
}
