// Package jsonutil wraps github.com/go-json-experiment/json behind the
// encoding/json call shapes used across the repo. Verdict batches and
// JSONL event streams sit on hot output paths, so the faster codec is
// worth the thin wrapper.
package jsonutil

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the JSON encoding of v indented with indent.
// The prefix argument exists for call-site compatibility and is
// ignored, matching how every caller here passes "".
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// Encoder streams values to w, one JSON document per line. It mirrors
// encoding/json.Encoder closely enough that writers can switch between
// the two forms without call-site changes.
type Encoder struct {
	w      io.Writer
	indent string
}

// NewEncoder creates an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the JSON encoding of v followed by a newline.
func (e *Encoder) Encode(v any) error {
	var err error
	if e.indent != "" {
		err = json.MarshalWrite(e.w, v, jsontext.WithIndent(e.indent))
	} else {
		err = json.MarshalWrite(e.w, v)
	}
	if err != nil {
		return err
	}
	_, err = e.w.Write([]byte{'\n'})
	return err
}

// SetIndent formats each subsequent value with the given indentation.
func (e *Encoder) SetIndent(prefix, indent string) {
	e.indent = indent
}

// Decoder reads JSON values from a stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the next JSON value from the stream into v.
func (d *Decoder) Decode(v any) error {
	return json.UnmarshalRead(d.r, v)
}
