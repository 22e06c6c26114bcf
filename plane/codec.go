package plane

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads a frame whose first record is the header.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("plane: read csv header: %w", err)
	}
	cols := make(map[string][]any, len(header))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("plane: read csv: %w", err)
		}
		for i, name := range header {
			cols[name] = append(cols[name], parseCell(rec[i]))
		}
	}
	for _, name := range header {
		if cols[name] == nil {
			cols[name] = []any{}
		}
	}
	return FromColumns(header, cols)
}

func WriteCSV(w io.Writer, f *Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.names); err != nil {
		return err
	}
	row := make([]string, len(f.names))
	for i := 0; i < f.rows; i++ {
		for j, n := range f.names {
			row[j] = formatCell(f.cols[n][i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeJSON accepts a single object (one row) or an array of objects.
func DecodeJSON(b []byte) (*Frame, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("plane: empty json payload")
	}
	var recs []map[string]any
	if b[0] == '{' {
		var rec map[string]any
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("plane: decode json: %w", err)
		}
		recs = []map[string]any{rec}
	} else if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("plane: decode json: %w", err)
	}
	return FromRecords(recs), nil
}

// EncodeJSON writes the frame as an array of row objects.
func EncodeJSON(f *Frame) ([]byte, error) {
	return json.Marshal(f.Records())
}
