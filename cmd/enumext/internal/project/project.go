// Package project loads the manifest and settings shared by the enumext
// commands.
package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/broady/enumext/enumgen"
	"github.com/broady/enumext/enumgen/ir"
	"github.com/broady/enumext/enumgen/provider"
	"github.com/broady/enumext/internal/settings"
	"github.com/cockroachdb/errors"
)

// Flags are the settings flags accepted by every command that reads a manifest.
type Flags struct {
	Config string   `help:"Settings file (default: enumext.{yaml,toml,json} next to the manifest)." short:"c" type:"existingfile"`
	Set    []string `help:"Override a setting, e.g. --set metadata_source=Display." short:"s" placeholder:"KEY=VALUE"`
}

// Project is a loaded manifest together with its settings.
type Project struct {
	Manifest string
	Settings *settings.Settings
	Defaults ir.DefaultConfiguration
	Enums    []*ir.EnumDescriptor

	// configFlag is the settings file named on the command line, if any.
	configFlag string
}

// Load reads the settings and the manifest. extra overrides are applied after
// the --set flags.
func Load(ctx context.Context, manifest string, flags Flags, extra ...string) (*Project, error) {
	s, err := settings.Load(settings.LoadOptions{
		File:      flags.Config,
		Dir:       filepath.Dir(manifest),
		Overrides: append(append([]string(nil), flags.Set...), extra...),
	})
	if err != nil {
		return nil, err
	}
	defaults, err := s.Defaults()
	if err != nil {
		return nil, err
	}
	enums, err := provider.Load(ctx, manifest)
	if err != nil {
		return nil, err
	}
	return &Project{
		Manifest:   manifest,
		Settings:   s,
		Defaults:   defaults,
		Enums:      enums,
		configFlag: flags.Config,
	}, nil
}

// Config builds the generator configuration. Relative output directories are
// resolved against the working directory.
func (p *Project) Config(logger *slog.Logger) (*enumgen.Config, error) {
	outDir, err := filepath.Abs(p.Settings.OutDir)
	if err != nil {
		return nil, errors.Wrap(err, "resolve output path")
	}
	return &enumgen.Config{
		OutDir:             outDir,
		Defaults:           p.Defaults,
		StripPackagePrefix: p.Settings.StripPackagePrefix,
		Frontmatter:        p.Settings.Frontmatter,
		Parallelism:        p.Settings.Parallelism,
		Logger:             logger,
	}, nil
}

// WatchFiles returns the files whose change should trigger regeneration: the
// manifest and the settings file. Without --config every settings file name
// Load would find next to the manifest is included, so creating or removing
// one is noticed as well.
func (p *Project) WatchFiles() []string {
	files := []string{p.Manifest}
	if p.configFlag != "" {
		return append(files, p.configFlag)
	}
	return append(files, settings.Candidates(filepath.Dir(p.Manifest))...)
}

// PrintDiagnostics writes one line per diagnostic.
func PrintDiagnostics(w io.Writer, diags []ir.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String())
	}
}

// ErrorCount returns the number of error-severity diagnostics.
func ErrorCount(diags []ir.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity >= ir.SeverityError {
			n++
		}
	}
	return n
}
