package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/tabload/pkg/tabload"
)

func TestDBFColumnType(t *testing.T) {
	tests := []struct {
		name      string
		fieldType byte
		decimals  byte
		want      tabload.ColumnType
	}{
		{"numeric without decimals", 'N', 0, tabload.TypeInteger},
		{"numeric with decimals", 'N', 2, tabload.TypeFloat},
		{"float", 'F', 0, tabload.TypeFloat},
		{"date", 'D', 0, tabload.TypeDate},
		{"logical", 'L', 0, tabload.TypeBool},
		{"character", 'C', 0, tabload.TypeText},
		{"memo falls back to text", 'M', 0, tabload.TypeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dbfColumnType(tt.fieldType, tt.decimals))
		})
	}
}

func TestDBFValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		typ  tabload.ColumnType
		want any
	}{
		{"blank is null", "   ", tabload.TypeInteger, nil},
		{"integer", " 42", tabload.TypeInteger, int64(42)},
		{"float", " 3.14", tabload.TypeFloat, 3.14},
		{"date", "20200102", tabload.TypeDate, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"logical true", "T", tabload.TypeBool, true},
		{"logical yes", "y", tabload.TypeBool, true},
		{"logical false", "F", tabload.TypeBool, false},
		{"logical uninitialized", "?", tabload.TypeBool, nil},
		{"text is trimmed", "ACME   ", tabload.TypeText, "ACME"},
		{"unparsable numeric is null", "**", tabload.TypeInteger, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dbfValue(tt.in, tt.typ))
		})
	}
}

func TestDBFEncodingNames(t *testing.T) {
	assert.Equal(t, "CP1252", dbfEncoding(""))
	assert.Equal(t, "CP1252", dbfEncoding("cp1252"))
	assert.Equal(t, "CP1252", dbfEncoding("windows-1252"))
	assert.Equal(t, "UTF8", dbfEncoding("utf-8"))
}
