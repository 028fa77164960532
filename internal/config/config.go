package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cephkit/cephkit/internal/models"
	homedir "github.com/mitchellh/go-homedir"
	ini "gopkg.in/ini.v1"
)

// DefaultPath is where the cephkit config file lives unless overridden
const DefaultPath = "~/.cephkit.conf"

// reservedSections hold tool settings, not repositories
var reservedSections = map[string]bool{
	"cephkit-global":  true,
	"cephkit-install": true,
}

// Document is the read-only view over a parsed cephkit config file.
// It implements models.ConfigDocument.
type Document struct {
	file *ini.File
}

// Load parses the config file at path
func Load(path string) (*Document, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %s: %w", path, err)
	}

	file, err := ini.Load(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}
	return &Document{file: file}, nil
}

// LoadOptional parses the config file at path, returning a nil document
// when the file does not exist
func LoadOptional(path string) (*Document, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %s: %w", path, err)
	}

	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(expanded)
}

// HasRepos reports whether any repository sections exist
func (d *Document) HasRepos() bool {
	return len(d.RepoNames()) > 0
}

// RepoNames returns the repository section names in file order
func (d *Document) RepoNames() []string {
	var names []string
	for _, section := range d.file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || reservedSections[name] {
			continue
		}
		names = append(names, name)
	}
	return names
}

// DefaultRepo returns the first repository section marked with a truthy
// "default" option, or "" when none is
func (d *Document) DefaultRepo() string {
	for _, name := range d.RepoNames() {
		section := d.file.Section(name)
		if section.HasKey("default") && section.Key("default").MustBool(false) {
			return name
		}
	}
	return ""
}

// Options returns a section's options in file order
func (d *Document) Options(section string) models.RepoOptions {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return nil
	}
	var opts models.RepoOptions
	for _, key := range sec.KeyStrings() {
		opts = append(opts, models.RepoOption{Key: key, Value: sec.Key(key).String()})
	}
	return opts
}

// List returns a comma or whitespace separated option as a list
func (d *Document) List(section, key string) []string {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return nil
	}
	if !sec.HasKey(key) {
		return nil
	}
	var items []string
	raw := sec.Key(key).String()
	for _, item := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
