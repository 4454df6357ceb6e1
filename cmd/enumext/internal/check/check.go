package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/enumext/cmd/enumext/internal/project"
	"github.com/broady/enumext/enumgen"
	"github.com/cockroachdb/errors"
)

type Cmd struct {
	Manifest string `arg:"" help:"Enum manifest (.yaml, .toml or .json)." type:"existingfile"`

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
	ctx := context.Background()

	p, err := project.Load(ctx, c.Manifest, c.Flags)
	if err != nil {
		return err
	}
	cfg, err := p.Config(logger)
	if err != nil {
		return err
	}
	// Render in memory only.
	cfg.OutDir = ""

	result, err := enumgen.Generate(ctx, p.Enums, cfg)
	if err != nil {
		return err
	}

	for i, u := range result.Units {
		id := result.Identities[i]
		fmt.Fprintf(c.stdout, "✓ %s → %s (%s)\n", u.Enum, id.TypeName(), u.Key)
	}
	project.PrintDiagnostics(c.stderr, result.Diagnostics)

	if n := project.ErrorCount(result.Diagnostics); n > 0 {
		return errors.Newf("%d error diagnostic(s)", n)
	}
	fmt.Fprintf(c.stdout, "✓ %d enums, no errors\n", len(result.Units))
	return nil
}
