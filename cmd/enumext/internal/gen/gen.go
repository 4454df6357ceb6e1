package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/broady/enumext/cmd/enumext/internal/project"
	"github.com/broady/enumext/enumgen"
	"github.com/broady/enumext/internal/watch"
	"github.com/cockroachdb/errors"
)

type Cmd struct {
	Manifest        string `arg:"" help:"Enum manifest (.yaml, .toml or .json)." type:"existingfile"`
	Out             string `help:"Output directory (overrides out_dir)." short:"o"`
	Watch           bool   `help:"Watch the manifest and settings and regenerate on change." short:"w"`
	AllowCollisions bool   `help:"Exit successfully even when extension types collide."`

	project.Flags `embed:""`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := c.generate(ctx, logger)
	if !c.Watch {
		return err
	}
	if err != nil {
		if p == nil {
			return err
		}
		logger.Error("generation failed", slog.Any("error", err))
	}

	w, err := watch.New(p.WatchFiles(), watch.Options{Logger: logger})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "watching %s for changes\n", c.Manifest)
	return w.Run(ctx, func(ctx context.Context) error {
		_, err := c.generate(ctx, logger)
		return err
	})
}

// generate loads the project and writes its files. The returned project is
// non-nil whenever loading succeeded.
func (c *Cmd) generate(ctx context.Context, logger *slog.Logger) (*project.Project, error) {
	var extra []string
	if c.Out != "" {
		extra = append(extra, "out_dir="+c.Out)
	}
	p, err := project.Load(ctx, c.Manifest, c.Flags, extra...)
	if err != nil {
		return nil, err
	}
	cfg, err := p.Config(logger)
	if err != nil {
		return p, err
	}

	result, err := enumgen.Generate(ctx, p.Enums, cfg)
	if err != nil {
		return p, err
	}
	project.PrintDiagnostics(c.stderr, result.Diagnostics)
	fmt.Fprintf(c.stdout, "✓ %d enums, %d files written to %s\n", len(result.Units), len(result.Files), cfg.OutDir)

	if n := project.ErrorCount(result.Diagnostics); n > 0 && !c.AllowCollisions {
		return p, errors.WithHint(
			errors.Newf("%d error diagnostic(s)", n),
			"rename the colliding enums, set extensionClassName, or pass --allow-collisions")
	}
	return p, nil
}
