// manifest.go loads the optional install manifest written by the package
// manager. The manifest pins layout paths without recompiling the binary.
//
// Two formats are accepted, chosen by file extension:
//   - .yaml / .yml, parsed with gopkg.in/yaml.v3
//   - .json, which may contain // and /* */ comments and trailing commas;
//     github.com/tidwall/jsonc strips those before encoding/json parses it
//
// Relative paths in a manifest are resolved against the manifest's own
// directory so that a relocatable install can ship one.
package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// defaultManifestNames are probed in order inside the config directory.
var defaultManifestNames = []string{"layout.yaml", "layout.yml", "layout.json"}

// LoadManifest reads and parses a manifest file.
//
// Returns a CLIError with ExitGeneralError if the file cannot be read or
// parsed, since a broken manifest leaves the dispatcher unable to find
// the deploy script.
func LoadManifest(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read install manifest %s", path), err)
	}

	var m Layout
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse install manifest %s", path), err)
		}
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse install manifest %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unsupported install manifest format %q (use .yaml, .yml or .json)", filepath.Ext(path)))
	}

	m.absolutize(filepath.Dir(path))
	return &m, nil
}

// findManifest returns the manifest named by APPLE_DEPLOY_LAYOUT, or the
// first default manifest found in configDir. An explicitly named manifest
// must exist; the defaults are optional.
func findManifest(configDir string, getenv Getenv) (*Layout, error) {
	if explicit := getenv(EnvLayoutFile); explicit != "" {
		return LoadManifest(explicit)
	}

	for _, name := range defaultManifestNames {
		path := filepath.Join(configDir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadManifest(path)
		}
	}
	return nil, nil
}

// absolutize rewrites relative paths against base. Empty fields stay
// empty so that merge leaves the defaults alone.
func (l *Layout) absolutize(base string) {
	for _, p := range []*string{&l.InstallDir, &l.ConfigDir, &l.LogDir, &l.GemHome, &l.ScriptsDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
