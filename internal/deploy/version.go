package deploy

import (
	"github.com/cephkit/cephkit/internal/models"
	"github.com/sirupsen/logrus"
)

// VersionFlags carries the raw values of the mutually exclusive version
// flags. The Set booleans record whether a flag was explicitly supplied;
// the flag system enforces exclusivity, it is not re-validated here.
type VersionFlags struct {
	Stable     string
	StableSet  bool
	Release    string
	ReleaseSet bool
	Testing    bool
	Dev        string
	DevSet     bool
}

// ResolveVersion collapses the version flags into one VersionSpec. The
// deprecated --stable alias resolves to release semantics with a warning.
func ResolveVersion(flags VersionFlags) models.VersionSpec {
	release := flags.Release
	if flags.StableSet {
		logrus.Warning("the --stable flag is deprecated, use --release instead")
		release = flags.Stable
	}

	switch {
	case flags.Testing:
		return models.VersionSpec{Kind: models.KindTesting}
	case flags.DevSet:
		return models.VersionSpec{Kind: models.KindDev, Value: flags.Dev}
	default:
		return models.VersionSpec{Kind: models.KindStable, Value: release}
	}
}
