package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the human-readable outline (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is a plain-text grid.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON:
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|table|yaml)")
	}
}

// IsStructured reports whether the format is machine-readable structured output.
func IsStructured(format Format) bool {
	switch format {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Texter is implemented by values with their own text rendering.
type Texter interface {
	Text() string
}

// Tabler is implemented by values that can be shown as a Table.
type Tabler interface {
	Table() Table
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print outputs data in the configured format. A jq query from ctx filters JSON
// and NDJSON output.
func (p *Printer) Print(ctx context.Context, data any) error {
	if data == nil {
		return nil
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		return p.printText(data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printJSON outputs data as pretty-printed JSON, or the results of the query one per line.
func (p *Printer) printJSON(ctx context.Context, data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	if query := QueryFromContext(ctx); query != "" {
		return runQuery(query, data, enc)
	}
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printNDJSON writes one JSON value per line; slices are split into their elements.
func (p *Printer) printNDJSON(ctx context.Context, data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	if query := QueryFromContext(ctx); query != "" {
		return runQuery(query, data, enc)
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			if err := enc.Encode(v.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	return enc.Encode(data)
}

// runQuery evaluates a jq expression against data. gojq only accepts the types
// encoding/json produces, so data goes through a JSON round trip first.
func runQuery(query string, data any, enc *json.Encoder) error {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	input, err := toJSONValue(data)
	if err != nil {
		return err
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %w", err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}

	return nil
}

func toJSONValue(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding query input: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding query input: %w", err)
	}
	return v, nil
}

// printYAML outputs data as YAML.
func (p *Printer) printYAML(data any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

func (p *Printer) printText(data any) error {
	switch v := data.(type) {
	case Texter:
		_, err := io.WriteString(p.w, v.Text())
		return err
	case string:
		_, err := fmt.Fprintln(p.w, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(p.w, v.String())
		return err
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			if err := p.printText(v.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(p.w, data)
	return err
}

func (p *Printer) printTable(data any) error {
	switch v := data.(type) {
	case Table:
		return p.printTableData(v.Headers, v.Rows)
	case Tabler:
		t := v.Table()
		return p.printTableData(t.Headers, t.Rows)
	default:
		return fmt.Errorf("table format is not supported for %T", data)
	}
}

func (p *Printer) printTableData(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)

	if len(headers) > 0 {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}
