// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"math"
)

// Payload is the key/value object produced by a form submission. Keys keep
// insertion order so that serialization is deterministic. Text values are
// strings; Integer values are float64 and may be NaN.
type Payload struct {
	keys   []string
	values map[string]any
}

// Set stores value under key, appending the key on first use.
func (p *Payload) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key.
func (p Payload) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p Payload) Len() int { return len(p.keys) }

// Without returns a copy of p with key removed.
func (p Payload) Without(key string) Payload {
	var out Payload
	for _, k := range p.keys {
		if k != key {
			out.Set(k, p.values[k])
		}
	}
	return out
}

// Map returns a plain map copy of the payload.
func (p Payload) Map() map[string]any {
	out := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		out[k] = p.values[k]
	}
	return out
}

// MarshalJSON writes the keys in order. Non-finite numbers become null, the
// same value a browser produces for NaN.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		v := p.values[k]
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			buf.WriteString("null")
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
