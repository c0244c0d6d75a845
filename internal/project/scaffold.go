package project

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Names of the scaffolded apple_info tree, relative to the project root.
const (
	AppleInfoDir    = "apple_info"
	CertificatesDir = "certificates"
	ProfilesDir     = "profiles"
	ConfigFile      = "config.env"
)

// ConfigAction records what Scaffold did with apple_info/config.env.
type ConfigAction string

const (
	// ConfigCreated means the template was copied to a new config.env.
	ConfigCreated ConfigAction = "created"

	// ConfigOverwritten means an existing config.env was replaced
	// because Force was set.
	ConfigOverwritten ConfigAction = "overwritten"

	// ConfigKept means config.env already existed and was left untouched.
	ConfigKept ConfigAction = "kept"

	// ConfigNoTemplate means no template was installed, so nothing was
	// written.
	ConfigNoTemplate ConfigAction = "no-template"
)

// ScaffoldOptions controls Scaffold.
type ScaffoldOptions struct {
	// TemplatePath is the installed config.example. It may not exist.
	TemplatePath string

	// Force overwrites an existing apple_info/config.env with the template.
	Force bool
}

// ScaffoldResult describes the outcome of Scaffold.
type ScaffoldResult struct {
	// Dirs are the directories ensured, in creation order.
	Dirs []string

	// ConfigPath is apple_info/config.env under the project root.
	ConfigPath string

	// Config tells whether the template was copied.
	Config ConfigAction
}

// Scaffold creates apple_info/certificates and apple_info/profiles under
// root and, when the template exists, copies it to apple_info/config.env.
//
// It is idempotent: existing directories are left alone and an existing
// config.env is kept unless opts.Force is set, so hand-edited team
// details survive a second init.
func Scaffold(root string, opts ScaffoldOptions) (*ScaffoldResult, error) {
	appleInfo := filepath.Join(root, AppleInfoDir)
	result := &ScaffoldResult{
		Dirs: []string{
			appleInfo,
			filepath.Join(appleInfo, CertificatesDir),
			filepath.Join(appleInfo, ProfilesDir),
		},
		ConfigPath: filepath.Join(appleInfo, ConfigFile),
	}

	for _, dir := range result.Dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	action, err := installConfig(opts.TemplatePath, result.ConfigPath, opts.Force)
	if err != nil {
		return nil, err
	}
	result.Config = action
	return result, nil
}

// installConfig copies template to dest according to the overwrite policy.
func installConfig(template, dest string, force bool) (ConfigAction, error) {
	if template == "" {
		return ConfigNoTemplate, nil
	}
	info, err := os.Stat(template)
	if errors.Is(err, fs.ErrNotExist) {
		return ConfigNoTemplate, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect config template %s: %w", template, err)
	}
	if info.IsDir() {
		return ConfigNoTemplate, nil
	}

	action := ConfigCreated
	if _, err := os.Stat(dest); err == nil {
		if !force {
			return ConfigKept, nil
		}
		action = ConfigOverwritten
	}

	if err := copyFile(template, dest); err != nil {
		return "", err
	}
	return action, nil
}

// copyFile copies src to dst, truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open config template %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
