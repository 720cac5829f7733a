package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

func checkFormat(format string) (string, error) {
	switch f := strings.ToLower(format); f {
	case formatTable, formatJSON, formatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, must be table, json or csv", format)
	}
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputCSV(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFloats(v []float64) string {
	s := make([]string, len(v))
	for i := range v {
		s[i] = formatFloat(v[i])
	}
	return strings.Join(s, " ")
}
