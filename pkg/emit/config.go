package emit

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dashweave/dashweave/pkg/buildinfo"
	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/validate"
)

// ConfigFile is the site config file name, relative to the site root.
const ConfigFile = "dashweave.yml"

// SiteConfig is the machine-readable description of an emitted site. The
// preview server and external renderers read it to discover pages and to
// check that their parameter expectations match the build.
type SiteConfig struct {
	Title            string `yaml:"title"`
	Generator        string `yaml:"generator"`
	SharedFirstLevel bool   `yaml:"shared_first_level"`
	RulesVersion     string `yaml:"rules_version"`
	AssetsDir        string `yaml:"assets_dir"`
	Pages            []Page `yaml:"pages"`
	Build            Build  `yaml:"build"`
}

// Build records provenance for one emitted site.
type Build struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
	Commit  string `yaml:"commit"`
	Date    string `yaml:"date"`
}

// writeConfig emits dashweave.yml into the output directory.
func writeConfig(opts Options, pages []Page) (string, error) {
	cfg := SiteConfig{
		Title:            opts.Title,
		Generator:        "dashweave",
		SharedFirstLevel: opts.SharedFirstLevel,
		RulesVersion:     validate.RulesVersion,
		AssetsDir:        AssetsDir,
		Pages:            pages,
		Build: Build{
			ID:      uuid.NewString(),
			Version: buildinfo.Version,
			Commit:  buildinfo.Commit,
			Date:    time.Now().UTC().Format(time.RFC3339),
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEmitFailed, err, "marshal site config")
	}

	path := filepath.Join(opts.OutDir, ConfigFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeEmitFailed, err, "write %s", path)
	}
	return path, nil
}

// ReadConfig loads a site config from an emitted site directory.
func ReadConfig(dir string) (*SiteConfig, error) {
	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no site config at %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return &cfg, nil
}
