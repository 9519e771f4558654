package colortable

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const tableSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "array",
		"minItems": 4,
		"maxItems": 4,
		"items": {"type": "integer", "minimum": 0, "maximum": 255}
	}
}`

var schema = jsonschema.MustCompileString("colortable.schema.json", tableSchema)

// Load reads a JSON colour table from r. The key order of the JSON object is
// preserved; if a key is repeated it keeps its first position but takes the
// last value.
func Load(r io.Reader) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// The schema guarantees an object of 4-tuples; walk the tokens to keep
	// the key order that a map would lose
	d := json.NewDecoder(bytes.NewReader(b))
	if _, err := d.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var entries []Entry
	seen := make(map[string]int)
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		name := tok.(string)

		var c Color
		if err := d.Decode(&c); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, name, err)
		}

		if i, ok := seen[name]; ok {
			entries[i].Color = c
			continue
		}
		seen[name] = len(entries)
		entries = append(entries, Entry{Name: name, Color: c})
	}

	return New(entries)
}

// WriteJSON writes the table to w as a JSON object in table order.
func (t *Table) WriteJSON(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			bw.WriteString(", ")
		}
		k, err := json.Marshal(e.Name)
		if err != nil {
			return err
		}
		bw.Write(k)
		bw.WriteString(": [")
		for j, v := range e.Color {
			if j > 0 {
				bw.WriteString(", ")
			}
			bw.WriteString(strconv.Itoa(int(v)))
		}
		bw.WriteByte(']')
	}
	bw.WriteByte('}')
	return bw.Flush()
}
