package deploy

import (
	"github.com/cephkit/cephkit/internal/distro"
	"github.com/cephkit/cephkit/internal/models"
	"github.com/sirupsen/logrus"
)

// ResolveSource picks the repository source for an install run. The
// precedence is fixed: an explicit repo URL always outranks any
// configuration, and a release-named config section outranks a section
// marked default. It is computed once per invocation, never per host.
func ResolveSource(req *models.InstallRequest) models.RepositorySource {
	release := req.Version.Value

	if req.RepoURL != "" {
		gpgURL := req.GPGURL
		if gpgURL == "" {
			logrus.Warning("--gpg-url was not used, will fallback")
			logrus.Warningf("using GPG fallback: %s", distro.ReleaseKeyURL)
			gpgURL = distro.ReleaseKeyURL
		}
		if req.Conf != nil {
			if req.Conf.DefaultRepo() != "" {
				logrus.Warning("a default repo was found but it was overridden on the CLI")
			}
			if hasRepo(req.Conf, release) {
				logrus.Warning("a custom repo was found but it was overridden on the CLI")
			}
		}
		return models.RepositorySource{
			Kind:    models.SourceExplicit,
			RepoURL: req.RepoURL,
			GPGURL:  gpgURL,
		}
	}

	if req.Conf != nil && req.Conf.HasRepos() {
		var section string
		if hasRepo(req.Conf, release) {
			logrus.Infof("will use repository from conf: %s", release)
			section = release
		} else if name := req.Conf.DefaultRepo(); name != "" {
			logrus.Infof("will use default repository: %s", name)
			section = name
		}

		if section == "" {
			logrus.Warning("a cephkit config was found with repos but could not default to one")
		} else {
			return models.RepositorySource{
				Kind:       models.SourceConfig,
				Section:    section,
				Options:    req.Conf.Options(section),
				ExtraRepos: req.Conf.List(section, "extra-repos"),
			}
		}
	}

	return models.RepositorySource{Kind: models.SourceDefault}
}

func hasRepo(conf models.ConfigDocument, name string) bool {
	if name == "" {
		return false
	}
	for _, repo := range conf.RepoNames() {
		if repo == name {
			return true
		}
	}
	return false
}
