// Package export renders finished reports for dashboards and spreadsheets.
// Every writer implements ports.ReportWriter.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/domain"
	"github.com/AfnanLeewan/IDS-Eportfolio-sub000/internal/ports"
)

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a case-insensitive format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, s)
	}
}

// NewWriter returns the writer for format that writes to w.
func NewWriter(format Format, w io.Writer) (ports.ReportWriter, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatXLSX:
		return NewXLSXWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ports.ErrUnsupportedFormat, format)
	}
}

var _ ports.ReportWriter = (*JSONWriter)(nil)

// JSONWriter writes the report view model as indented JSON.
type JSONWriter struct {
	w      io.Writer
	indent string
}

// NewJSONWriter returns a JSONWriter indenting with two spaces.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, indent: "  "}
}

// Write encodes report to the underlying writer.
func (jw *JSONWriter) Write(ctx context.Context, report domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", jw.indent)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report %s: %w", report.ID, err)
	}
	return nil
}
