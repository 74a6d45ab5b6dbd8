package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Sheet:  "Department 10/2026",
		Header: []string{"Employee ID", "Name", "Days Present", "Total Hours"},
		Rows: [][]string{
			{"u-1", "Doe, Jane", "20", "164.50"},
			{"u-2", "John", "18", "150.00"},
		},
	}
}

func TestWriteCSV_QuotesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	want := "Employee ID,Name,Days Present,Total Hours\n" +
		"u-1,\"Doe, Jane\",20,164.50\n" +
		"u-2,John,18,150.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Department 10-2026")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee ID", "Name", "Days Present", "Total Hours"}, rows[0])
	assert.Equal(t, "Doe, Jane", rows[1][1])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "xlsx", f.Extension())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(" "))
	assert.Equal(t, "a-b", sheetName("a/b"))
	assert.Len(t, sheetName("a very long sheet name that goes past the limit"), 31)
}
