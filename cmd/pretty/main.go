// Command pretty renders JSON, YAML or TOML documents with the pretty package.
//
//	pretty [-format auto|json|yaml|toml] [-table] [-max-depth n] [-raw-names] [file...]
//	pretty -i
//
// Files ending in .zst are decompressed, "-" reads standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tipee-sa/pretty"
	"github.com/tipee-sa/pretty/internal/config"
	"github.com/tipee-sa/pretty/internal/input"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, files, err := config.Load(args, os.LookupEnv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := rendererOptions(cfg)

	if cfg.Interactive {
		if err := repl(stdout, cfg.History, opts, logger); err != nil {
			logger.Error("interactive session failed", "error", err)
			return 1
		}
		return 0
	}

	if len(files) == 0 {
		files = []string{input.Stdin}
	}

	status := 0
	for _, path := range files {
		if err := renderFile(stdout, stdin, path, cfg, opts, logger); err != nil {
			logger.Error("rendering failed", "path", path, "error", err)
			status = 1
		}
	}
	return status
}

func rendererOptions(cfg config.Config) []pretty.Option {
	opts := []pretty.Option{pretty.WithMaxDepth(cfg.MaxDepth)}
	if cfg.RawNames {
		opts = append(opts, pretty.WithDescriber(pretty.RawDescriber{}))
	}
	return opts
}

func renderFile(w io.Writer, stdin io.Reader, path string, cfg config.Config, opts []pretty.Option, logger *slog.Logger) error {
	doc, err := input.Load(path, cfg.InputFormat(), stdin)
	if err != nil {
		return err
	}
	logger.Debug("document loaded", "path", path, "type", fmt.Sprintf("%T", doc))

	r := pretty.NewRenderer(w, opts...)
	if cfg.Table {
		return r.Table(doc)
	}
	if err := r.Render(doc); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
