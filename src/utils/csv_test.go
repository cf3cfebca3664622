package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type csvRow struct {
	Rule    string  `csv:"rule"`
	Message string  `csv:"message"`
	Value   float64 `csv:"value"`
}

func TestWriteCsv(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteCsv(&out, []csvRow{
		{Rule: "TickSize", Message: "price, tick mismatch", Value: 10.03},
	}))

	assert.Equal(t, "rule,message,value\nTickSize,\"price, tick mismatch\",10.03\n", out.String())
}

func TestExportToCsv(t *testing.T) {
	now := time.Date(2020, 3, 17, 14, 5, 33, 0, time.UTC)
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := ExportToCsv(dir, []csvRow{{Rule: "LotSize", Value: 7}}, "findings", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "findings_2020-03-17_14-05-33.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rule,message,value\nLotSize,,7\n", string(data))
}
