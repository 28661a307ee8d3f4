package format

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tabload/pkg/tabload"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadDelimitedInfersTypes(t *testing.T) {
	path := writeTemp(t, "people.csv", []byte("name,age,score,active,joined\nalice,30,1.5,yes,2020-01-02\nbob,25,2.25,no,2021-03-04\n"))

	data, err := readDelimited(context.Background(), path, tabload.ReadOptions{})
	require.NoError(t, err)

	cols := data.Columns()
	require.Len(t, cols, 5)
	assert.Equal(t, tabload.TypeText, cols[0].Type)
	assert.Equal(t, tabload.TypeInteger, cols[1].Type)
	assert.Equal(t, tabload.TypeFloat, cols[2].Type)
	assert.Equal(t, tabload.TypeBool, cols[3].Type)
	assert.Equal(t, tabload.TypeDate, cols[4].Type)

	assert.Equal(t, 2, data.NumRows())
	assert.Equal(t, "alice", data.Value(0, 0))
	assert.Equal(t, int64(30), data.Value(0, 1))
	assert.Equal(t, 1.5, data.Value(0, 2))
	assert.Equal(t, true, data.Value(0, 3))
}

func TestReadDelimitedCustomDelimiter(t *testing.T) {
	path := writeTemp(t, "tanks.txt", []byte("tank|volume\nT1|500\nT2|750\n"))

	data, err := readDelimited(context.Background(), path, tabload.ReadOptions{Delimiter: '|'})
	require.NoError(t, err)

	require.Equal(t, 2, data.NumColumns())
	assert.Equal(t, "tank", data.Columns()[0].Name)
	assert.Equal(t, int64(500), data.Value(0, 1))
}

func TestReadDelimitedBlankFieldsAreNull(t *testing.T) {
	path := writeTemp(t, "gaps.csv", []byte("name,age\nalice,30\nbob,\n,40\n"))

	data, err := readDelimited(context.Background(), path, tabload.ReadOptions{})
	require.NoError(t, err)

	assert.Nil(t, data.Value(1, 1))
	assert.Nil(t, data.Value(2, 0))
	assert.Equal(t, int64(40), data.Value(2, 1))
}

func TestReadDelimitedEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.csv", nil)

	_, err := readDelimited(context.Background(), path, tabload.ReadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrParse))
	assert.Contains(t, err.Error(), "header row")
}

func TestReadDelimitedHeaderOnly(t *testing.T) {
	path := writeTemp(t, "header.csv", []byte("name,age\n"))

	data, err := readDelimited(context.Background(), path, tabload.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, data.NumColumns())
	assert.Equal(t, 0, data.NumRows())
	// No values to sample, so the columns stay text.
	assert.Equal(t, tabload.TypeText, data.Columns()[0].Type)
}

func TestReadDelimitedCP1252Fallback(t *testing.T) {
	// "José" in Windows-1252: é is the single byte 0xE9, invalid as UTF-8.
	content := []byte("name\nJos\xe9\n")
	path := writeTemp(t, "latin.csv", content)

	data, err := readDelimited(context.Background(), path, tabload.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "José", data.Value(0, 0))
}

func TestReadDelimitedForcedUTF8RejectsLatin(t *testing.T) {
	path := writeTemp(t, "latin.csv", []byte("name\nJos\xe9\n"))

	_, err := readDelimited(context.Background(), path, tabload.ReadOptions{Encoding: "utf8"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrParse))
}

func TestReadDelimitedUnknownEncoding(t *testing.T) {
	path := writeTemp(t, "data.csv", []byte("a\n1\n"))

	_, err := readDelimited(context.Background(), path, tabload.ReadOptions{Encoding: "ebcdic"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrInvalidConfig))
}

func TestReadDelimitedQualifiedQuoting(t *testing.T) {
	path := writeTemp(t, "quoted.csv", []byte("name,notes\n\"smith, john\",\"said \"\"hi\"\"\"\n"))

	data, err := readDelimited(context.Background(), path, tabload.ReadOptions{Qualified: true})
	require.NoError(t, err)
	assert.Equal(t, "smith, john", data.Value(0, 0))
	assert.Equal(t, `said "hi"`, data.Value(0, 1))
}

func TestReadDelimitedCancelledContext(t *testing.T) {
	path := writeTemp(t, "data.csv", []byte("a\n1\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := readDelimited(ctx, path, tabload.ReadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
