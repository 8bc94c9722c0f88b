// Package cmd implements the bridgen CLI: classify a declaration tree
// dump against a policy file and emit the API model.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/hxforge/bridgen/classify"
	"github.com/hxforge/bridgen/config"
	"github.com/hxforge/bridgen/decl"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the bridgen CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "bridgen",
		Usage:                  "Classify a native declaration tree into a bridge API model",
		Version:                version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			{
				Name:  "classify",
				Usage: "Build the API model from a declaration tree dump",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "decls",
						Aliases:  []string{"d"},
						Usage:    "Declaration tree dump (YAML)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Generation policy file (YAML)",
					},
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Managed-side source file for dependency scanning",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (default: stdout)",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Log classification progress to stderr",
					},
				},
				Action: classifyAction,
			},
			{
				Name:      "check",
				Usage:     "Validate a generation policy file",
				ArgsUsage: "<config.yaml>",
				Action:    checkAction,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", colorRed(), colorReset(), err)
		os.Exit(1)
	}
}

func classifyAction(ctx context.Context, cmd *cli.Command) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if cmd.Bool("verbose") {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	logger = logger.With(slog.String("run", uuid.NewString()))

	cfg := config.New()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return err
		}
		logger.Info("loaded policy", slog.String("path", path))
	}

	var source string
	if path := cmd.String("source"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading source file: %w", err)
		}
		source = string(data)
	}

	items, err := decl.LoadFile(cmd.String("decls"))
	if err != nil {
		return err
	}
	logger.Info("loaded declaration tree", slog.Int("items", len(items)))

	w := &classify.Walker{Config: cfg, Source: source}
	model, err := w.Run(items)
	if err != nil {
		return err
	}
	for _, d := range w.Diagnostics() {
		logger.Warn("declaration skipped",
			slog.String("kind", d.Kind.String()),
			slog.String("at", d.Context),
			slog.String("detail", d.Detail))
	}
	logger.Info("classified", slog.Int("entries", model.Len()))

	out := os.Stdout
	if path := cmd.String("output"); path != "" {
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}
	return model.Dump(out)
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: bridgen check <config.yaml>")
	}
	path := cmd.Args().First()
	if _, err := config.LoadFile(path); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}

// stderr gets ANSI color only when it is a terminal and NO_COLOR is
// unset.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func colorRed() string {
	if colorEnabled() {
		return "\x1b[31m"
	}
	return ""
}

func colorReset() string {
	if colorEnabled() {
		return "\x1b[0m"
	}
	return ""
}
