// Package enumgen generates reflection-free extension types for Go integer
// enums.
//
// Enum descriptors come from an external frontend, typically through a
// manifest loaded with package provider. Each descriptor is resolved to an
// extension type identity, its member display names are computed, and the
// extension type is rendered as a Go source file:
//
//	enums, err := provider.Load(ctx, "enums.yaml")
//	if err != nil {
//		return err
//	}
//	result, err := enumgen.Generate(ctx, enums, &enumgen.Config{OutDir: "."})
//
// Enums are processed in parallel. Naming collisions are detected after every
// identity is known and are reported as diagnostics; they never block the
// emission of other enums. Distinct types whose file names differ only in
// letter case get a numeric suffix on the later file.
package enumgen

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/broady/enumext/enumgen/golang"
	"github.com/broady/enumext/enumgen/ir"
	"github.com/broady/enumext/enumgen/metadata"
	"github.com/broady/enumext/enumgen/naming"
	"github.com/broady/enumext/enumgen/sink"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Config holds the configuration for one generation run.
type Config struct {
	// OutDir is the directory where generated files are written when Sink is
	// nil. When both are empty nothing is written and the units are only
	// returned.
	OutDir string

	// Sink receives the generated files. Takes precedence over OutDir.
	Sink sink.OutputSink

	// Defaults are the ambient settings consulted when an enum leaves one unset.
	Defaults ir.DefaultConfiguration

	// StripPackagePrefix removes this prefix from import paths when building
	// file paths.
	// Example: "example.com/app/" writes the type for "example.com/app/colors"
	// to "colors/color_extensions.enumext.go".
	StripPackagePrefix string

	// Frontmatter is added as comment lines below the generated-code header.
	Frontmatter string

	// Parallelism bounds the number of enums processed at once.
	// Default: runtime.GOMAXPROCS(0)
	Parallelism int

	// Logger receives progress messages. Default: slog.Default()
	Logger *slog.Logger
}

// GenerateResult is the outcome of a generation run.
type GenerateResult struct {
	// Units holds one generated unit per input enum, in input order.
	Units []*golang.GeneratedUnit

	// Identities holds the resolved extension type of each input enum.
	Identities []ir.ExtensionClassIdentity

	// Collisions lists enums that share an extension type.
	Collisions []naming.CollisionGroup

	// Diagnostics holds every fact found during the run: metadata advisories
	// and emitter warnings in input order, then collisions.
	Diagnostics []ir.Diagnostic

	// Files lists the paths written to the sink, in input order.
	Files []string
}

// HasErrors reports whether any diagnostic has error severity.
func (r *GenerateResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= ir.SeverityError {
			return true
		}
	}
	return false
}

// Generate resolves, renders and writes extension types for enums.
//
// All descriptors and the defaults are validated first; a validation failure
// returns every problem found and generates nothing. Otherwise every enum is
// emitted, including enums that take part in a naming collision. Units that
// declare the same type in the same namespace share a file path and only the
// first is written; every such pair is also reported as a collision.
func Generate(ctx context.Context, enums []*ir.EnumDescriptor, cfg *Config) (*GenerateResult, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg = applyConfigDefaults(cfg)
	log := cfg.Logger
	start := time.Now()

	if err := validateInputs(enums, cfg.Defaults); err != nil {
		return nil, err
	}

	log.Info("generating enum extensions",
		slog.Int("enums", len(enums)),
		slog.String("metadata_source", cfg.Defaults.MetadataSource.Or(ir.DefaultMetadataSource).String()))

	type outcome struct {
		unit       *golang.GeneratedUnit
		advisories []metadata.Advisory
	}
	results := make([]outcome, len(enums))
	emitter := golang.NewEmitter(golang.Options{
		StripPackagePrefix: cfg.StripPackagePrefix,
		Frontmatter:        cfg.Frontmatter,
		ExtensionMembers:   cfg.Defaults.ForceExtensionMembers,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i, d := range enums {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := naming.Resolve(d, cfg.Defaults)
			resolved, advisories := metadata.Resolve(d, cfg.Defaults)
			unit, err := emitter.Emit(resolved, id)
			if err != nil {
				return errors.Wrapf(err, "enum %s", d.QualifiedName())
			}
			results[i] = outcome{unit: unit, advisories: advisories}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Units:      make([]*golang.GeneratedUnit, len(enums)),
		Identities: make([]ir.ExtensionClassIdentity, len(enums)),
	}
	resolved := make([]naming.Resolved, len(enums))
	for i, r := range results {
		result.Units[i] = r.unit
		result.Identities[i] = r.unit.Identity
		resolved[i] = naming.Resolved{Enum: enums[i], Identity: r.unit.Identity}
		for _, a := range r.advisories {
			result.Diagnostics = append(result.Diagnostics, a.Diagnostic())
		}
		result.Diagnostics = append(result.Diagnostics, r.unit.Diagnostics...)
	}

	golang.DisambiguateKeys(result.Units)
	result.Collisions = naming.DetectCollisions(resolved)
	for _, c := range result.Collisions {
		log.Warn("extension type collision",
			slog.String("namespace", c.Namespace),
			slog.String("class", c.ClassName),
			slog.Int("enums", len(c.Enums)))
		result.Diagnostics = append(result.Diagnostics, c.Diagnostic())
	}

	if cfg.Sink != nil {
		files, err := writeUnits(ctx, cfg.Sink, result.Units, log)
		if err != nil {
			return nil, err
		}
		result.Files = files
	}

	log.Info("generated enum extensions",
		slog.Int("units", len(result.Units)),
		slog.Int("files", len(result.Files)),
		slog.Int("diagnostics", len(result.Diagnostics)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// writeUnits writes units to s in order, skipping units whose path was already
// written in this run.
func writeUnits(ctx context.Context, s sink.OutputSink, units []*golang.GeneratedUnit, log *slog.Logger) ([]string, error) {
	written := make(map[string]string, len(units))
	files := make([]string, 0, len(units))
	for _, u := range units {
		if first, ok := written[u.Key]; ok {
			log.Warn("skipping colliding unit",
				slog.String("path", u.Key),
				slog.String("enum", u.Enum),
				slog.String("written_for", first))
			continue
		}
		if err := s.WriteFile(ctx, u.Key, u.Source); err != nil {
			return nil, errors.Wrapf(err, "write %s", u.Key)
		}
		written[u.Key] = u.Enum
		files = append(files, u.Key)
		log.Debug("wrote unit",
			slog.String("path", u.Key),
			slog.String("enum", u.Enum),
			slog.String("type", u.Identity.TypeName()))
	}
	return files, nil
}

func validateInputs(enums []*ir.EnumDescriptor, defaults ir.DefaultConfiguration) error {
	errs := defaults.Validate()
	for _, d := range enums {
		errs = append(errs, d.Validate()...)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.WithHint(
		errors.Wrapf(errors.Join(errs...), "%d invalid input(s)", len(errs)),
		"no files were generated")
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Sink == nil && result.OutDir != "" {
		result.Sink = sink.NewFilesystemSink(result.OutDir)
	}
	if result.Parallelism <= 0 {
		result.Parallelism = runtime.GOMAXPROCS(0)
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}

	return &result
}
