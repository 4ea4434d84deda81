// Package input opens and decodes the documents the pretty command renders.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown document format")

// Format is a document encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Stdin is the path that reads standard input.
const Stdin = "-"

const zstdExt = ".zst"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detect guesses the format from the file extension, ignoring a trailing
// .zst. YAML is the fallback since it also reads JSON.
func Detect(path string) Format {
	path = strings.TrimSuffix(path, zstdExt)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Open opens path for reading, decompressing .zst files on the fly.
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	var src io.ReadCloser
	if path == Stdin {
		src = io.NopCloser(stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		src = f
	}

	if !strings.HasSuffix(path, zstdExt) {
		return src, nil
	}

	dec, err := zstd.NewReader(src)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("creating zstd reader for %s: %w", path, err)
	}
	rc := dec.IOReadCloser()
	return &multiCloser{Reader: rc, closers: []io.Closer{rc, src}}, nil
}

// Decode reads one document from r. FormatAuto decodes as YAML.
func Decode(r io.Reader, format Format) (any, error) {
	switch format {
	case FormatJSON:
		var doc any
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
		return doc, nil

	case FormatTOML:
		var doc map[string]any
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding TOML: %w", err)
		}
		return doc, nil

	case FormatYAML, FormatAuto:
		var doc any
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
		return doc, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Load opens and decodes the document at path. With FormatAuto the format
// is detected from the extension.
func Load(path string, format Format, stdin io.Reader) (any, error) {
	if format == FormatAuto && path != Stdin {
		format = Detect(path)
	}

	rc, err := Open(path, stdin)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	doc, err := Decode(rc, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
