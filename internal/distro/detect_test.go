package distro

import (
	"context"
	"testing"
)

// staticSession returns canned output for any command
type staticSession struct {
	output string
	err    error
}

func (s *staticSession) Run(ctx context.Context, argv []string) error { return s.err }
func (s *staticSession) Output(ctx context.Context, argv []string) (string, error) {
	return s.output, s.err
}
func (s *staticSession) TryRun(ctx context.Context, argv []string) {}
func (s *staticSession) Which(ctx context.Context, name string) (bool, error) {
	return false, nil
}
func (s *staticSession) PathExists(ctx context.Context, path string) (bool, error) {
	return false, nil
}
func (s *staticSession) Close() error { return nil }

const ubuntuOSRelease = `NAME="Ubuntu"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
ID=ubuntu
ID_LIKE=debian
VERSION_ID="22.04"
VERSION_CODENAME=jammy
`

const centosOSRelease = `NAME="CentOS Stream"
VERSION="9"
ID="centos"
ID_LIKE="rhel fedora"
VERSION_ID="9"
`

func TestDetectUbuntu(t *testing.T) {
	info, family, err := Detect(context.Background(), &staticSession{output: ubuntuOSRelease})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if family != FamilyDebian {
		t.Errorf("Expected debian family, got %s", family)
	}
	if info.Name != "ubuntu" || info.Release != "22.04" || info.Codename != "jammy" {
		t.Errorf("Unexpected info %+v", info)
	}
}

func TestDetectCentOSStripsQuotes(t *testing.T) {
	info, family, err := Detect(context.Background(), &staticSession{output: centosOSRelease})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if family != FamilyRHEL {
		t.Errorf("Expected rhel family, got %s", family)
	}
	if info.Name != "centos" || info.Release != "9" {
		t.Errorf("Unexpected info %+v", info)
	}
	if info.Codename != "" {
		t.Errorf("Expected no codename, got %q", info.Codename)
	}
}

func TestDetectUnsupportedPlatform(t *testing.T) {
	_, _, err := Detect(context.Background(), &staticSession{output: "ID=plan9\n"})
	if err == nil {
		t.Fatal("Expected an error for an unsupported platform")
	}
}

func TestParseOSReleaseIgnoresComments(t *testing.T) {
	fields := parseOSRelease("# comment\n\nID=debian\nBROKEN LINE\n")
	if fields["ID"] != "debian" {
		t.Errorf("Expected debian, got %q", fields["ID"])
	}
	if len(fields) != 1 {
		t.Errorf("Expected a single field, got %v", fields)
	}
}
