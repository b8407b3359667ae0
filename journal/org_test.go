package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOrg(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteOrg(&sb, testRun("RUN-1", 1.4)))

	out := sb.String()
	assert.Contains(t, out, "* BACKTEST: momentum 2330.csv")
	assert.Contains(t, out, ":RUN_ID:      RUN-1")
	assert.Contains(t, out, ":SHARPE:      1.40")
	assert.Contains(t, out, "| Wins    | 3 |")
	assert.Contains(t, out, `{"short_window":20,"long_window":60}`)
}

func TestWriteOrgZeroCreated(t *testing.T) {
	r := testRun("RUN-2", 1.0)
	r.Created = time.Time{}

	var sb strings.Builder
	require.NoError(t, WriteOrg(&sb, r))
	// Zero Created falls back to "now" rather than the epoch.
	assert.NotContains(t, sb.String(), "[0001-01-01")
}
