// Package feed loads OHLCV bars from CSV files.
package feed

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gotix/indicator/core"
)

// ErrMalformedCSV is returned for rows that cannot be parsed.
var ErrMalformedCSV = errors.New("malformed csv")

var header = []string{"timestamp", "open", "high", "low", "close", "volume"}

// Header returns the column layout written by WriteCSV and accepted by ParseCSV.
func Header() []string { return append([]string(nil), header...) }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadCSV reads a series from a file.
func LoadCSV(path string) (core.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Series{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	s, err := ParseCSV(f)
	if err != nil {
		return core.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseCSV reads rows of timestamp,open,high,low,close[,volume]. A header row
// is skipped when present. Prices are parsed as exact decimals before
// conversion, and the bars are validated by core.NewSeries.
func ParseCSV(r io.Reader) (core.Series, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var bars []core.Bar
	lineNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			return core.Series{}, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, lineNum, err)
		}
		if lineNum == 1 && isHeader(record) {
			continue
		}
		if len(record) < 5 {
			return core.Series{}, fmt.Errorf("%w: line %d: want at least 5 fields, got %d",
				ErrMalformedCSV, lineNum, len(record))
		}
		bar, err := parseRecord(record)
		if err != nil {
			return core.Series{}, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, lineNum, err)
		}
		bars = append(bars, bar)
	}
	return core.NewSeries(bars)
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := parseTimestamp(record[0])
	return err != nil
}

func parseRecord(record []string) (core.Bar, error) {
	var bar core.Bar
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return bar, err
	}
	bar.Time = ts

	fields := []struct {
		name string
		dst  *float64
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
		{"volume", &bar.Volume},
	}
	for i, f := range fields {
		col := i + 1
		if col >= len(record) || strings.TrimSpace(record[col]) == "" {
			if f.name == "volume" {
				continue
			}
			return bar, fmt.Errorf("missing %s", f.name)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(record[col]))
		if err != nil {
			return bar, fmt.Errorf("parse %s: %w", f.name, err)
		}
		*f.dst = d.InexactFloat64()
	}
	return bar, nil
}

// parseTimestamp accepts unix seconds or one of timeLayouts; layouts without
// a zone are read as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// WriteCSV writes s with a header row, timestamps in RFC 3339 and prices in
// their shortest exact decimal form.
func WriteCSV(w io.Writer, s core.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		row := []string{
			b.Time.Format(time.RFC3339Nano),
			decimal.NewFromFloat(b.Open).String(),
			decimal.NewFromFloat(b.High).String(),
			decimal.NewFromFloat(b.Low).String(),
			decimal.NewFromFloat(b.Close).String(),
			decimal.NewFromFloat(b.Volume).String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
