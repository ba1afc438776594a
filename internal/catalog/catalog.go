// Package catalog loads product records for filter evaluation.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ivoronin/catfilter/internal/filter"
)

// Format is the encoding of a record file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// ErrUnsuccessful is returned for an API envelope with "success": false.
var ErrUnsuccessful = errors.New("product API reported failure")

// envelope is the response shape of the product and segment endpoints.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// FormatForPath picks the format from a file extension.
// Anything other than .yaml/.yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads records from the file at path. Callers reading stdin
// use Load directly.
func LoadFile(path string) ([]filter.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Load(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load decodes records. JSON input may be a bare array of objects or a
// {"success": true, "data": [...]} envelope. JSON numbers are kept as
// json.Number so large values and decimals compare exactly.
func Load(r io.Reader, format Format) ([]filter.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]filter.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []filter.Record{}, nil
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		if env.Success != nil && !*env.Success {
			return nil, ErrUnsuccessful
		}
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("decode envelope: missing data array")
		}
		trimmed = env.Data
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var records []filter.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return nonNil(records), nil
}

func decodeYAML(data []byte) ([]filter.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []filter.Record{}, nil
	}

	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode yaml records: %w", err)
	}

	out := make([]filter.Record, 0, len(records))
	for _, r := range records {
		out = append(out, filter.Record(r))
	}
	return out, nil
}

func nonNil(records []filter.Record) []filter.Record {
	if records == nil {
		return []filter.Record{}
	}
	return records
}
