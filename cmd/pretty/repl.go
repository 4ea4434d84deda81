package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/tipee-sa/pretty"
	"github.com/tipee-sa/pretty/internal/input"
)

const prompt = "pretty> "

// repl reads one YAML value per line and prints its rendering until EOF or
// :quit.
func repl(w io.Writer, historyPath string, opts []pretty.Option, logger *slog.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(w)
			return nil
		}
		if err != nil {
			return err
		}

		done, err := evalLine(w, line, opts)
		if err != nil {
			logger.Warn("cannot render input", "error", err)
			continue
		}
		if done {
			return nil
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}

// evalLine renders one line of input. It reports true when the session
// should end.
func evalLine(w io.Writer, line string, opts []pretty.Option) (bool, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false, nil
	case line == ":quit" || line == ":q":
		return true, nil
	case strings.HasPrefix(line, ":table "):
		doc, err := input.Decode(strings.NewReader(strings.TrimPrefix(line, ":table ")), input.FormatYAML)
		if err != nil {
			return false, err
		}
		return false, pretty.NewRenderer(w, opts...).Table(doc)
	}

	doc, err := input.Decode(strings.NewReader(line), input.FormatYAML)
	if err != nil {
		return false, err
	}
	if err := pretty.NewRenderer(w, opts...).Render(doc); err != nil {
		return false, err
	}
	_, err = fmt.Fprintln(w)
	return false, err
}
