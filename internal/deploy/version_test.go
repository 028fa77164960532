package deploy

import (
	"strings"
	"testing"

	"github.com/cephkit/cephkit/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestResolveVersionDefaultsToRelease(t *testing.T) {
	spec := ResolveVersion(VersionFlags{Release: "emperor", Dev: "master"})
	if spec.Kind != models.KindStable {
		t.Errorf("Expected stable kind, got %s", spec.Kind)
	}
	if spec.Value != "emperor" {
		t.Errorf("Expected emperor, got %q", spec.Value)
	}
}

func TestResolveVersionStableAliasWarns(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	spec := ResolveVersion(VersionFlags{
		Stable:    "firefly",
		StableSet: true,
		Release:   "emperor",
	})

	if spec.Kind != models.KindStable {
		t.Errorf("Expected stable kind for the deprecated alias, got %s", spec.Kind)
	}
	if spec.Value != "firefly" {
		t.Errorf("Expected the alias value firefly, got %q", spec.Value)
	}

	found := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "deprecated") {
			found = true
		}
	}
	if !found {
		t.Error("Expected a deprecation warning for --stable")
	}
}

func TestResolveVersionTesting(t *testing.T) {
	spec := ResolveVersion(VersionFlags{Release: "emperor", Testing: true})
	if spec.Kind != models.KindTesting {
		t.Errorf("Expected testing kind, got %s", spec.Kind)
	}
	if spec.Value != "" {
		t.Errorf("Expected empty value for testing, got %q", spec.Value)
	}
}

func TestResolveVersionDev(t *testing.T) {
	spec := ResolveVersion(VersionFlags{Release: "emperor", Dev: "wip-feature", DevSet: true})
	if spec.Kind != models.KindDev {
		t.Errorf("Expected dev kind, got %s", spec.Kind)
	}
	if spec.Value != "wip-feature" {
		t.Errorf("Expected wip-feature, got %q", spec.Value)
	}
}

func TestResolveVersionExplicitRelease(t *testing.T) {
	spec := ResolveVersion(VersionFlags{Release: "firefly", ReleaseSet: true})
	if spec.Kind != models.KindStable || spec.Value != "firefly" {
		t.Errorf("Expected stable/firefly, got %s/%q", spec.Kind, spec.Value)
	}
}
