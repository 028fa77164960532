package cli

import (
	"os"

	"github.com/cephkit/cephkit/internal/config"
	"github.com/cephkit/cephkit/internal/deploy"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/cephkit/cephkit/internal/remote"
	"github.com/spf13/cobra"
)

// Environment overrides that beat the corresponding flags
const (
	repoURLEnv = "CEPHKIT_REPO_URL"
	gpgURLEnv  = "CEPHKIT_GPG_URL"
)

// NewInstallCmd creates the install command
func NewInstallCmd() *cobra.Command {
	var (
		stable   string
		release  string
		testing  bool
		dev      string
		adjust   bool
		noAdjust bool
		repoURL  string
		gpgURL   string
		username string
		confPath string
	)

	cmd := &cobra.Command{
		Use:   "install HOST...",
		Short: "Install ceph packages on remote hosts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version := deploy.ResolveVersion(deploy.VersionFlags{
				Stable:     stable,
				StableSet:  cmd.Flags().Changed("stable"),
				Release:    release,
				ReleaseSet: cmd.Flags().Changed("release"),
				Testing:    testing,
				Dev:        dev,
				DevSet:     cmd.Flags().Changed("dev"),
			})

			conf, err := loadConf(confPath)
			if err != nil {
				return err
			}

			req := &models.InstallRequest{
				Hosts:       args,
				Username:    username,
				Version:     version,
				RepoURL:     firstNonEmpty(os.Getenv(repoURLEnv), repoURL),
				GPGURL:      firstNonEmpty(os.Getenv(gpgURLEnv), gpgURL),
				AdjustRepos: adjust && !noAdjust,
				Conf:        conf,
			}

			deployer := deploy.New(remote.NewSSHConnector())
			return deployer.Install(cmd.Context(), req)
		},
	}

	// Version flags, mutually exclusive
	cmd.Flags().StringVar(&stable, "stable", "", "[DEPRECATED] install a release known as CODENAME")
	cmd.Flags().StringVar(&release, "release", "emperor", "install a release known as CODENAME")
	cmd.Flags().BoolVar(&testing, "testing", false, "install the latest development release")
	cmd.Flags().StringVar(&dev, "dev", "master", "install a bleeding edge build from Git branch or tag")
	cmd.Flags().Lookup("dev").NoOptDefVal = "master"
	cmd.MarkFlagsMutuallyExclusive("stable", "release", "testing", "dev")

	cmd.Flags().BoolVar(&adjust, "adjust-repos", true, "install packages modifying source repos")
	cmd.Flags().BoolVar(&noAdjust, "no-adjust-repos", false, "install packages without modifying source repos")
	cmd.MarkFlagsMutuallyExclusive("adjust-repos", "no-adjust-repos")

	cmd.Flags().StringVar(&repoURL, "repo-url", "", "repo URL that mirrors/contains ceph packages")
	cmd.Flags().StringVar(&gpgURL, "gpg-url", "", "GPG key URL to be used with custom repos")
	cmd.Flags().StringVar(&username, "username", "", "SSH username (defaults to the local user)")
	cmd.Flags().StringVar(&confPath, "conf", config.DefaultPath, "path to the cephkit config file")

	return cmd
}

// loadConf returns a nil interface when the config file is absent, so
// the orchestrators can test for it directly
func loadConf(path string) (models.ConfigDocument, error) {
	doc, err := config.LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
