// Package config loads the scaffolding profile: the set of templates a user can pick from
// and whether dependency installation is confirmed interactively or always performed.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/goccy/go-yaml"
	"golang.org/x/mod/semver"
)

type (
	Template struct {
		Name string `toml:"name" yaml:"name"`
		URL  string `toml:"url" yaml:"url"`
		// Branch or tag to check out. Empty means the remote's default branch.
		Ref string `toml:"ref" yaml:"ref"`
	}

	Profile struct {
		DevCommand     string     `toml:"dev_command" yaml:"dev_command"`
		Templates      []Template `toml:"templates" yaml:"templates"`
		ConfirmInstall bool       `toml:"confirm_install" yaml:"confirm_install"`
	}

	Format byte
)

const (
	TOML Format = iota
	YAML
)

const defaultDevCommand = "npm run dev"

var (
	ErrInvalidProfile = errors.New("invalid profile")

	//go:embed default.toml
	defaultProfile []byte
)

// FormatOf picks the decoder by file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: unsupported profile file extension %q", ErrInvalidProfile, filepath.Ext(path))
	}
}

// Default returns the profile embedded in the binary.
func Default() (Profile, error) {
	return Parse(defaultProfile, TOML)
}

// Non-nil returned error wraps [ErrInvalidProfile] when the file was read but its contents are unusable.
func Load(path string) (Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Profile{}, err
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file %q: %w", path, err)
	}

	return Parse(contents, format)
}

// Non-nil returned error wraps [ErrInvalidProfile].
func Parse(contents []byte, format Format) (p Profile, err error) {
	switch format {
	case TOML:
		md, err1 := toml.NewDecoder(bytes.NewReader(contents)).Decode(&p)
		if err1 != nil {
			return Profile{}, fmt.Errorf("%w: failed to decode TOML: %s", ErrInvalidProfile, err1.Error())
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Profile{}, fmt.Errorf("%w: unknown key %q", ErrInvalidProfile, undecoded[0].String())
		}
	case YAML:
		if err = yaml.UnmarshalWithOptions(contents, &p, yaml.Strict()); err != nil {
			return Profile{}, fmt.Errorf("%w: failed to decode YAML: %s", ErrInvalidProfile, err.Error())
		}
	default:
		return Profile{}, fmt.Errorf("%w: unknown format %d", ErrInvalidProfile, format)
	}

	if p.DevCommand == "" {
		p.DevCommand = defaultDevCommand
	}

	if err = p.Validate(); err != nil {
		return Profile{}, err
	}

	return p, nil
}

// Non-nil returned error wraps [ErrInvalidProfile].
func (p Profile) Validate() error {
	if len(p.Templates) == 0 {
		return fmt.Errorf("%w: at least one template is required", ErrInvalidProfile)
	}

	seen := make(map[string]struct{}, len(p.Templates))

	for i, t := range p.Templates {
		if t.Name == "" {
			return fmt.Errorf("%w: template #%d has no name", ErrInvalidProfile, i+1)
		}

		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("%w: duplicate template name %q", ErrInvalidProfile, t.Name)
		}

		seen[t.Name] = struct{}{}

		if t.URL == "" {
			return fmt.Errorf("%w: template %q has no url", ErrInvalidProfile, t.Name)
		}
	}

	return nil
}

func (p Profile) TemplateNames() []string {
	names := make([]string, len(p.Templates))

	for i := range p.Templates {
		names[i] = p.Templates[i].Name
	}

	return names
}

func (p Profile) Lookup(name string) (Template, bool) {
	for i := range p.Templates {
		if p.Templates[i].Name == name {
			return p.Templates[i], true
		}
	}

	return Template{}, false
}

// Reference maps Ref to a git reference: semantic versions are tags, anything else is a branch.
// The zero value means "remote HEAD".
func (t Template) Reference() plumbing.ReferenceName {
	switch {
	case t.Ref == "":
		return ""
	case semver.IsValid(t.Ref), semver.IsValid("v" + t.Ref):
		return plumbing.NewTagReferenceName(t.Ref)
	default:
		return plumbing.NewBranchReferenceName(t.Ref)
	}
}
