// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ExportData is the document written by Export.
type ExportData struct {
	SchemaVersion int     `json:"schema_version"`
	Entries       []Entry `json:"entries"`
}

// Export writes every entry, newest first, as zstd compressed JSON and
// returns the number of entries written.
func (j *Journal) Export(ctx context.Context, w io.Writer) (int, error) {
	entries, err := j.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	if err := WriteExport(&ExportData{SchemaVersion: 1, Entries: entries}, w); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// WriteExport writes data as zstd compressed JSON.
func WriteExport(data *ExportData, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode journal: %w", err)
	}
	return zw.Close()
}

// ReadExport decodes a document written by Export.
func ReadExport(r io.Reader) (*ExportData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var data ExportData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	return &data, nil
}
