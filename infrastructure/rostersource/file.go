// Package rostersource provides ports.RosterSource implementations that read
// an already-filtered roster (subjects and students) from local files.
package rostersource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

// Format identifies the encoding of a roster file.
type Format string

// Supported roster file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the roster format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: roster file %q", ports.ErrUnsupportedFormat, path)
	}
}

var _ ports.RosterSource = (*File)(nil)

// File loads a roster from a JSON or YAML file. Unknown fields are rejected
// so that misspelled keys do not silently drop scores.
type File struct {
	path   string
	format Format
}

// NewFile returns a source for path, inferring the format from its
// extension.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: roster path is empty", ports.ErrSourceUnavailable)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, format: format}, nil
}

// Path returns the file the source reads.
func (f *File) Path() string { return f.path }

// Load reads and decodes the roster file. Open failures wrap
// ports.ErrSourceUnavailable and decode failures wrap
// ports.ErrMalformedRoster, both inside a *ports.SourceError.
func (f *File) Load(ctx context.Context) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}

	fh, err := os.Open(f.path)
	if err != nil {
		return domain.Roster{}, ports.NewSourceError(f.path, "open", errors.Join(ports.ErrSourceUnavailable, err))
	}
	defer fh.Close()

	roster, err := Decode(fh, f.format)
	if err != nil {
		return domain.Roster{}, ports.NewSourceError(f.path, "decode", err)
	}
	return roster, nil
}

// Decode reads a roster in the given format from r.
func Decode(r io.Reader, format Format) (domain.Roster, error) {
	var roster domain.Roster
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&roster); err != nil {
			return domain.Roster{}, errors.Join(ports.ErrMalformedRoster, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&roster); err != nil && !errors.Is(err, io.EOF) {
			return domain.Roster{}, errors.Join(ports.ErrMalformedRoster, err)
		}
	default:
		return domain.Roster{}, fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, format)
	}
	return roster, nil
}

// Save writes roster to path in the format implied by its extension,
// creating parent directories as needed.
func Save(roster domain.Roster, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(roster, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(roster)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}
	return nil
}
