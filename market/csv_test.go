package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBarRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		row     []string
		wantOk  bool
		wantErr bool
		check   func(t *testing.T, b Bar)
	}{
		{
			name:   "valid row",
			row:    []string{"2024-01-02", "100", "105", "99", "102", "1000"},
			wantOk: true,
			check: func(t *testing.T, b Bar) {
				assert.Equal(t, 102.0, b.Close)
				assert.Equal(t, 1000.0, b.Volume)
			},
		},
		{
			name:   "valid row rfc3339",
			row:    []string{"2024-01-02T00:00:00Z", "100", "105", "99", "102", "1000"},
			wantOk: true,
			check: func(t *testing.T, b Bar) {
				assert.Equal(t, 2024, b.Time.Year())
			},
		},
		{
			name:   "row with whitespace",
			row:    []string{" 2024-01-02 ", " 100 ", " 105 ", " 99 ", " 102 "},
			wantOk: true,
			check: func(t *testing.T, b Bar) {
				assert.Equal(t, 102.0, b.Close)
				assert.Equal(t, 0.0, b.Volume)
			},
		},
		{
			name:   "too few columns",
			row:    []string{"2024-01-02", "100", "105"},
			wantOk: false,
		},
		{
			name:    "bad date",
			row:     []string{"yesterday", "100", "105", "99", "102"},
			wantErr: true,
		},
		{
			name:    "bad price",
			row:     []string{"2024-01-02", "100", "abc", "99", "102"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok, err := parseBarRow(tt.row)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOk, ok)
			if tt.check != nil {
				tt.check(t, b)
			}
		})
	}
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, `date,open,high,low,close,volume
2024-01-02,100,105,99,102,1000
2024-01-03,102,107,101,105,1100
2024-01-04,105,108,104,106,900
`)

	bars, err := LoadCSV(path, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, 102.0, bars[0].Close)
	assert.Equal(t, 106.0, bars[2].Close)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
}

func TestLoadCSVRange(t *testing.T) {
	path := writeTempCSV(t, `date,open,high,low,close,volume
2024-01-02,100,105,99,102,1000
2024-01-03,102,107,101,105,1100
2024-01-04,105,108,104,106,900
`)

	from := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	bars, err := LoadCSV(path, from, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 105.0, bars[0].Close)
}

func TestLoadCSVUnsorted(t *testing.T) {
	path := writeTempCSV(t, `date,open,high,low,close,volume
2024-01-03,102,107,101,105,1100
2024-01-02,100,105,99,102,1000
`)

	_, err := LoadCSV(path, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	good := []Bar{
		{Time: t0, Close: 100},
		{Time: t0.AddDate(0, 0, 1), Close: 101},
	}
	assert.NoError(t, Validate(good))

	assert.Error(t, Validate(nil), "empty series")

	bad := []Bar{{Time: t0, Close: -5}}
	assert.Error(t, Validate(bad), "negative close")

	dup := []Bar{
		{Time: t0, Close: 100},
		{Time: t0, Close: 101},
	}
	assert.Error(t, Validate(dup), "duplicate timestamp")
}
