package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads daily bars from a CSV file with rows:
//
//	date,open,high,low,close,volume
//
// where date is "2006-01-02" or RFC3339. A header row ("date,...") is
// allowed. Empty and short rows are skipped. Bars are filtered to
// [from, to) when either bound is non-zero.
//
// The returned series is validated: strictly ascending timestamps and
// positive finite closes.
func LoadCSV(path string, from, to time.Time) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []Bar
	sawFirst := false

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		b, ok, err := parseBarRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			continue
		}
		if !inRange(b.Time, from, to) {
			continue
		}
		bars = append(bars, b)
	}

	if err := Validate(bars); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bars, nil
}

func parseBarRow(row []string) (Bar, bool, error) {
	// Need at least: date,open,high,low,close
	if len(row) < 5 {
		return Bar{}, false, nil
	}

	ts, err := parseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, false, fmt.Errorf("bad date %q: %w", row[0], err)
	}

	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Bar{}, false, fmt.Errorf("bad price %q: %w", row[i+1], err)
		}
		vals[i] = v
	}

	b := Bar{
		Time:  ts,
		Open:  vals[0],
		High:  vals[1],
		Low:   vals[2],
		Close: vals[3],
	}

	if len(row) > 5 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64); err == nil {
			b.Volume = v
		}
	}
	return b, true, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
