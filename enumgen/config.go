package enumgen

import (
	"context"
	"log/slog"

	"github.com/broady/enumext/enumgen/ir"
	"github.com/broady/enumext/enumgen/sink"
)

// Generator provides a fluent API for code generation.
// Create with FromEnums() and configure with method chaining.
//
// Example:
//
//	enumgen.FromEnums(enums...).
//	    MetadataSource(ir.MetadataSourceDisplay).
//	    StripPackagePrefix("example.com/app/").
//	    ToDir(ctx, "./gen")
type Generator struct {
	enums []*ir.EnumDescriptor
	cfg   Config
}

// FromEnums creates a Generator for the given descriptors.
func FromEnums(enums ...*ir.EnumDescriptor) *Generator {
	return &Generator{enums: enums}
}

// MetadataSource sets the ambient metadata source.
func (g *Generator) MetadataSource(s ir.MetadataSource) *Generator {
	g.cfg.Defaults.MetadataSource = s
	return g
}

// ExtensionMembers also emits ToStringFast, IsDefined and HasFlagFast as
// methods on each enum type.
func (g *Generator) ExtensionMembers() *Generator {
	g.cfg.Defaults.ForceExtensionMembers = true
	return g
}

// Internal makes generated types unexported unless an enum overrides it.
func (g *Generator) Internal() *Generator {
	g.cfg.Defaults.ForceInternalAccessModifier = true
	return g
}

// Defaults replaces all ambient settings at once.
func (g *Generator) Defaults(d ir.DefaultConfiguration) *Generator {
	g.cfg.Defaults = d
	return g
}

// StripPackagePrefix sets the prefix to remove from import paths.
func (g *Generator) StripPackagePrefix(prefix string) *Generator {
	g.cfg.StripPackagePrefix = prefix
	return g
}

// Frontmatter adds comment lines to the top of generated files.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// Parallelism bounds the number of enums processed at once.
func (g *Generator) Parallelism(n int) *Generator {
	g.cfg.Parallelism = n
	return g
}

// Logger sets the logger for progress messages.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// ToDir generates files to the specified directory.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.OutDir = dir
	cfg.Sink = nil
	return Generate(ctx, g.enums, &cfg)
}

// ToSink generates files into s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.Sink = s
	return Generate(ctx, g.enums, &cfg)
}

// Generate returns generated units in memory without writing them.
// Use ToDir() to write files to disk instead.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.OutDir = ""
	cfg.Sink = nil
	return Generate(ctx, g.enums, &cfg)
}
