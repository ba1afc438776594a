// Package output renders command results as aligned text tables or JSON.
package output

// Format represents the output format type.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// FormatFor returns FormatJSON when jsonMode is set, FormatText otherwise.
func FormatFor(jsonMode bool) Format {
	if jsonMode {
		return FormatJSON
	}
	return FormatText
}

// Formatter is implemented by every printable result.
type Formatter interface {
	FormatText() string
	FormatJSON() ([]byte, error)
}

// FormatOutput formats the given Formatter based on the specified format.
func FormatOutput(f Formatter, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := f.FormatJSON()
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return f.FormatText(), nil
	}
}
