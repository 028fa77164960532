package cli

import (
	"context"

	"github.com/cephkit/cephkit/internal/deploy"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/cephkit/cephkit/internal/remote"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command
func NewUninstallCmd() *cobra.Command {
	return newHostCmd(
		"uninstall HOST...",
		"Remove ceph packages from remote hosts",
		(*deploy.Deployer).Uninstall,
	)
}

// NewPurgeCmd creates the purge command
func NewPurgeCmd() *cobra.Command {
	return newHostCmd(
		"purge HOST...",
		"Remove ceph packages from remote hosts and purge all data",
		(*deploy.Deployer).Purge,
	)
}

// NewPurgeDataCmd creates the purge-data command
func NewPurgeDataCmd() *cobra.Command {
	return newHostCmd(
		"purge-data HOST...",
		"Purge (delete, destroy, discard, shred) any ceph data from /var/lib/ceph",
		(*deploy.Deployer).PurgeData,
	)
}

// newHostCmd builds a command that runs a fleet operation over a plain
// host list
func newHostCmd(use, short string, run func(*deploy.Deployer, context.Context, *models.HostRequest) error) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &models.HostRequest{
				Hosts:    args,
				Username: username,
			}
			deployer := deploy.New(remote.NewSSHConnector())
			return run(deployer, cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "SSH username (defaults to the local user)")

	return cmd
}
