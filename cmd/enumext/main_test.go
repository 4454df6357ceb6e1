package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

func TestParse(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "enums.yaml")
	if err := os.WriteFile(manifest, []byte("enums: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("enumext"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}

	ctx, err := parser.Parse([]string{"-v", "gen", manifest, "-o", "out", "--set", "internal=true", "-s", "parallelism=2", "--allow-collisions"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ctx.Command() != "gen <manifest>" {
		t.Errorf("Command() = %q, want %q", ctx.Command(), "gen <manifest>")
	}
	if !cli.Verbose || cli.Gen.Out != "out" || !cli.Gen.AllowCollisions {
		t.Errorf("flags not parsed: %+v", cli)
	}
	if got := cli.Gen.Set; len(got) != 2 || got[0] != "internal=true" || got[1] != "parallelism=2" {
		t.Errorf("Set = %v", got)
	}

	if _, err := parser.Parse([]string{"check", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("Parse() should reject a missing manifest")
	}
}
