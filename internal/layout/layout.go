package layout

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shinji-kodama/apple-deploy/internal/model"
)

// Environment variables read by Resolve and exported to the delegate.
const (
	EnvHomebrewPrefix = "HOMEBREW_PREFIX"
	EnvLayoutFile     = "APPLE_DEPLOY_LAYOUT"
	EnvInstallDir     = "APPLE_DEPLOY_HOME"
	EnvConfigDir      = "APPLE_DEPLOY_CONFIG_DIR"
	EnvLogDir         = "APPLE_DEPLOY_LOG_DIR"
	EnvGemHome        = "APPLE_DEPLOY_GEM_HOME"
	EnvScriptsDir     = "FL_SCRIPTS_DIR"

	// EnvVerbose turns on [verbose] trace lines; read by main.
	EnvVerbose = "APPLE_DEPLOY_VERBOSE"
)

const (
	deployScriptName  = "deploy.sh"
	configExampleName = "config.example"
	globalConfigName  = "config.env"
)

// Layout is the set of absolute paths laid out by the package manager.
// The dispatcher only reads these locations.
type Layout struct {
	// InstallDir is the package root holding the vendored tool (libexec).
	InstallDir string `yaml:"install_dir" json:"install_dir"`

	// ConfigDir holds config.example and the global config.env.
	ConfigDir string `yaml:"config_dir" json:"config_dir"`

	// LogDir is where the deploy script writes its logs.
	LogDir string `yaml:"log_dir" json:"log_dir"`

	// GemHome is the vendored Ruby gem directory.
	GemHome string `yaml:"gem_home" json:"gem_home"`

	// ScriptsDir contains deploy.sh and its helpers.
	ScriptsDir string `yaml:"scripts_dir" json:"scripts_dir"`
}

// DeployScript returns the path of the delegate executable.
func (l *Layout) DeployScript() string {
	return filepath.Join(l.ScriptsDir, deployScriptName)
}

// ConfigExample returns the path of the bundled config.env template.
func (l *Layout) ConfigExample() string {
	return filepath.Join(l.ConfigDir, configExampleName)
}

// GlobalConfig returns the path of the machine-wide config.env.
func (l *Layout) GlobalConfig() string {
	return filepath.Join(l.ConfigDir, globalConfigName)
}

// Getenv looks up an environment variable. os.Getenv satisfies it; tests
// pass a map-backed function instead of mutating the process environment.
type Getenv func(key string) string

// Resolve computes the Layout for the given product.
//
// Defaults follow Homebrew's conventions:
//
//	<prefix>/opt/<binary>/libexec     install dir
//	<prefix>/etc/<binary>             config dir
//	<prefix>/var/log/<binary>         log dir
//	<install dir>/vendor              gem home
//	<install dir>/scripts             scripts dir
//
// A manifest then overrides any field it sets, and environment variables
// override the manifest. Derived defaults (gem home, scripts dir) follow
// the final install dir unless they were set explicitly.
func Resolve(product model.Product, getenv Getenv) (*Layout, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	prefix := homebrewPrefix(getenv)
	l := &Layout{
		InstallDir: filepath.Join(prefix, "opt", product.Binary, "libexec"),
		ConfigDir:  filepath.Join(prefix, "etc", product.Binary),
		LogDir:     filepath.Join(prefix, "var", "log", product.Binary),
	}

	// Config dir may move via the environment before the manifest is
	// looked up, because the default manifest lives inside it.
	if v := getenv(EnvConfigDir); v != "" {
		l.ConfigDir = v
	}

	manifest, err := findManifest(l.ConfigDir, getenv)
	if err != nil {
		return nil, err
	}
	if manifest != nil {
		l.merge(manifest)
	}

	l.merge(&Layout{
		InstallDir: getenv(EnvInstallDir),
		ConfigDir:  getenv(EnvConfigDir),
		LogDir:     getenv(EnvLogDir),
		GemHome:    getenv(EnvGemHome),
		ScriptsDir: getenv(EnvScriptsDir),
	})

	if l.GemHome == "" {
		l.GemHome = filepath.Join(l.InstallDir, "vendor")
	}
	if l.ScriptsDir == "" {
		l.ScriptsDir = filepath.Join(l.InstallDir, "scripts")
	}

	return l, nil
}

// merge copies every non-empty field of o into l.
func (l *Layout) merge(o *Layout) {
	if o.InstallDir != "" {
		l.InstallDir = o.InstallDir
	}
	if o.ConfigDir != "" {
		l.ConfigDir = o.ConfigDir
	}
	if o.LogDir != "" {
		l.LogDir = o.LogDir
	}
	if o.GemHome != "" {
		l.GemHome = o.GemHome
	}
	if o.ScriptsDir != "" {
		l.ScriptsDir = o.ScriptsDir
	}
}

// homebrewPrefix returns HOMEBREW_PREFIX, or the platform default:
// /opt/homebrew on Apple Silicon and /usr/local everywhere else.
func homebrewPrefix(getenv Getenv) string {
	if p := getenv(EnvHomebrewPrefix); p != "" {
		return p
	}
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return "/opt/homebrew"
	}
	return "/usr/local"
}

// DelegateEnv returns base with the variables the deploy script needs to
// find its resources. Existing values for those keys are replaced; PATH is
// prefixed with the gem bin directory rather than replaced.
func (l *Layout) DelegateEnv(base []string) []string {
	path := lookup(base, "PATH")
	gemBin := filepath.Join(l.GemHome, "bin")
	if path == "" {
		path = gemBin
	} else {
		path = gemBin + string(os.PathListSeparator) + path
	}

	set := map[string]string{
		"GEM_HOME":    l.GemHome,
		"BUNDLE_PATH": l.GemHome,
		"PATH":        path,
		EnvScriptsDir: l.ScriptsDir,
		EnvInstallDir: l.InstallDir,
		EnvConfigDir:  l.ConfigDir,
		EnvLogDir:     l.LogDir,
	}

	env := make([]string, 0, len(base)+len(set))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := set[key]; overridden {
			continue
		}
		env = append(env, kv)
	}
	// Fixed order keeps the environment deterministic for tests and logs.
	for _, key := range []string{"GEM_HOME", "BUNDLE_PATH", "PATH", EnvScriptsDir, EnvInstallDir, EnvConfigDir, EnvLogDir} {
		env = append(env, key+"="+set[key])
	}
	return env
}

// lookup returns the value of key in a KEY=VALUE list. The last entry
// wins, matching how exec resolves duplicates.
func lookup(env []string, key string) string {
	value := ""
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			value = v
		}
	}
	return value
}
