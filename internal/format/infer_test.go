package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tabload/pkg/tabload"
)

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   tabload.ColumnType
	}{
		{"all integers", []string{"1", "-2", "30"}, tabload.TypeInteger},
		{"integers and floats", []string{"1", "2.5"}, tabload.TypeFloat},
		{"scientific notation", []string{"1e3", "2.5"}, tabload.TypeFloat},
		{"booleans", []string{"yes", "no", "TRUE"}, tabload.TypeBool},
		{"iso dates", []string{"2020-01-02", "2021-12-31"}, tabload.TypeDate},
		{"timestamps", []string{"2020-01-02 10:30:00"}, tabload.TypeDate},
		{"mixed numbers and text", []string{"1", "apple"}, tabload.TypeText},
		{"empty values ignored", []string{"", "5", ""}, tabload.TypeInteger},
		{"all empty stays text", []string{"", "", ""}, tabload.TypeText},
		{"no values stays text", nil, tabload.TypeText},
		{"us dates are text", []string{"01/02/2020"}, tabload.TypeText},
		{"leading zeros still parse as int", []string{"007"}, tabload.TypeInteger},
		{"integers and booleans are text", []string{"1", "true"}, tabload.TypeText},
		{"booleans then integers are text", []string{"true", "1"}, tabload.TypeText},
		{"floats and dates are text", []string{"2.5", "2020-01-02"}, tabload.TypeText},
		{"booleans and dates are text", []string{"yes", "2020-01-02"}, tabload.TypeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([][]string, len(tt.values))
			for i, v := range tt.values {
				records[i] = []string{v}
			}
			assert.Equal(t, tt.want, inferColumnType(records, 0))
		})
	}
}

// A type never climbs back up the ladder: one text value among thousands of
// integers makes the whole column text.
func TestInferColumnTypeNeverPromotes(t *testing.T) {
	records := [][]string{{"1"}, {"2"}, {"oops"}, {"3"}}
	assert.Equal(t, tabload.TypeText, inferColumnType(records, 0))
}

// A candidate type must admit every value in the column, including values
// seen before the one that forced a demotion. If it doesn't, the column is
// text and every original string survives conversion untouched.
func TestBuildTypedMixedValuesKeepEveryValue(t *testing.T) {
	t.Run("integer then boolean", func(t *testing.T) {
		data, err := buildTyped([]string{"v"}, [][]string{{"1"}, {"true"}})
		require.NoError(t, err)
		assert.Equal(t, tabload.TypeText, data.Columns()[0].Type)
		assert.Equal(t, "1", data.Value(0, 0))
		assert.Equal(t, "true", data.Value(1, 0))
	})

	t.Run("float then date", func(t *testing.T) {
		data, err := buildTyped([]string{"v"}, [][]string{{"2.5"}, {"2020-01-02"}})
		require.NoError(t, err)
		assert.Equal(t, tabload.TypeText, data.Columns()[0].Type)
		assert.Equal(t, "2.5", data.Value(0, 0))
		assert.Equal(t, "2020-01-02", data.Value(1, 0))
	})
}

func TestConvertCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		typ  tabload.ColumnType
		want any
	}{
		{"blank is null", "", tabload.TypeInteger, nil},
		{"whitespace is null", "   ", tabload.TypeText, nil},
		{"integer", "42", tabload.TypeInteger, int64(42)},
		{"padded integer", " 42 ", tabload.TypeInteger, int64(42)},
		{"float", "1.5", tabload.TypeFloat, 1.5},
		{"bool", "Yes", tabload.TypeBool, true},
		{"date", "2020-01-02", tabload.TypeDate, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"text kept verbatim", " padded ", tabload.TypeText, " padded "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertCell(tt.in, tt.typ))
		})
	}
}

func TestBuildTypedRaggedRecords(t *testing.T) {
	// Trailing cells may be missing (Excel drops empty tails); they are NULL.
	data, err := buildTyped([]string{"a", "b", "c"}, [][]string{
		{"1", "x", "2"},
		{"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Value(1, 0))
	assert.Nil(t, data.Value(1, 1))
	assert.Nil(t, data.Value(1, 2))
}

func TestBuildTypedDeterministic(t *testing.T) {
	header := []string{"n", "s"}
	records := [][]string{{"1", "a"}, {"2", "b"}}

	first, err := buildTyped(header, records)
	require.NoError(t, err)
	second, err := buildTyped(header, records)
	require.NoError(t, err)

	assert.Equal(t, first.Columns(), second.Columns())
	for r := 0; r < first.NumRows(); r++ {
		assert.Equal(t, first.Row(r), second.Row(r))
	}
}
