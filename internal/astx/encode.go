// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package astx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for [Document]s.
type Format int

const (
	YAML Format = iota
	JSON
)

var formatNames = [...]string{
	YAML: "yaml",
	JSON: "json",
}

// String implements [fmt.Stringer].
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat looks up a format by its [Format.String] name.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("astx: unknown format %q (want yaml or json)", name)
}

// Encoder writes a stream of values in some [Format].
//
// YAML values are written as separate documents; JSON values are written
// one after another.
type Encoder struct {
	yaml *yaml.Encoder
	json *json.Encoder

	// Whether any document has been written. A YAML stream with no documents
	// cannot be closed.
	wrote bool
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer, format Format) *Encoder {
	if format == JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &Encoder{json: enc}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &Encoder{yaml: enc}
}

// Encode writes v.
func (e *Encoder) Encode(v any) error {
	e.wrote = true
	if e.json != nil {
		return e.json.Encode(v)
	}
	return e.yaml.Encode(v)
}

// Close flushes any buffered output. Closing an encoder that never wrote
// anything does nothing.
func (e *Encoder) Close() error {
	if e.yaml != nil && e.wrote {
		return e.yaml.Close()
	}
	return nil
}

// Marshal encodes a single value in the given format.
func Marshal(format Format, v any) ([]byte, error) {
	if format == JSON {
		return json.MarshalIndent(v, "", "  ")
	}

	var buf bytes.Buffer
	enc := NewEncoder(&buf, format)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
