package distro

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/cephkit/cephkit/internal/remote"
)

// os-release IDs mapped to platform families
var families = map[string]Family{
	"debian": FamilyDebian,
	"ubuntu": FamilyDebian,
	"centos": FamilyRHEL,
	"rhel":   FamilyRHEL,
	"fedora": FamilyRHEL,
	"rocky":  FamilyRHEL,
	"alma":   FamilyRHEL,
}

// Detect reads /etc/os-release over the session and determines the
// host's distro identity and platform family
func Detect(ctx context.Context, sess remote.Session) (Info, Family, error) {
	raw, err := sess.Output(ctx, []string{"cat", "/etc/os-release"})
	if err != nil {
		return Info{}, FamilyUnknown, fmt.Errorf("failed to read os-release: %w", err)
	}

	fields := parseOSRelease(raw)
	id := fields["ID"]
	family, ok := families[id]
	if !ok {
		return Info{}, FamilyUnknown, fmt.Errorf("unsupported platform: %q", id)
	}

	info := Info{
		Name:     id,
		Release:  fields["VERSION_ID"],
		Codename: fields["VERSION_CODENAME"],
	}
	if info.Name == "" {
		info.Name = fields["NAME"]
	}
	return info, family, nil
}

// parseOSRelease parses the KEY=value lines of an os-release file
func parseOSRelease(raw string) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.Trim(value, `"'`)
	}
	return fields
}
