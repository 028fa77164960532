package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cephkit",
		Short: "Install, remove and purge ceph packages across a fleet of hosts",
		Long: `Cephkit connects to remote hosts over SSH, detects their platform and
drives the native package manager to install, remove or purge ceph.

Repository selection for installs is layered: an explicit --repo-url
always wins, then a config section matching the requested release, then
the section marked default in the config file, then the distro's own
channel.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewUninstallCmd())
	rootCmd.AddCommand(NewPurgeCmd())
	rootCmd.AddCommand(NewPurgeDataCmd())

	return rootCmd
}
