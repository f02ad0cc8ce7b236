package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Marshal renders v with sorted keys, indented when pretty is set. HTML
// characters are left alone since passwords are printed verbatim.
func Marshal(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding inventory: %w", err)
	}
	return buf.Bytes(), nil
}

// Write marshals v completely before writing it, so w never receives a
// partial document.
func Write(w io.Writer, v any, pretty bool) error {
	data, err := Marshal(v, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
