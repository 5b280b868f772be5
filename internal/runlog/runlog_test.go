package runlog

import (
	"errors"
	"strings"
	"testing"

	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs_PositionalColumns(t *testing.T) {
	in := "PosX,PosY,Extra\n1,2,foo\n3.5, -4.25,bar\n"

	tbl, err := ParsePairs(strings.NewReader(in), "coins.csv", SkipRow)
	require.NoError(t, err)

	want := []Pair{{A: 1, B: 2}, {A: 3.5, B: -4.25}}
	if diff := cmp.Diff(want, tbl.Pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, tbl.Skipped)
	assert.Equal(t, "coins.csv", tbl.File)
}

func TestParsePairs_EmptyInput(t *testing.T) {
	tbl, err := ParsePairs(strings.NewReader(""), "empty.csv", SkipRow)
	require.NoError(t, err)
	assert.Empty(t, tbl.Pairs)

	tbl, err = ParsePairs(strings.NewReader("x,y\n"), "header.csv", SkipRow)
	require.NoError(t, err)
	assert.Empty(t, tbl.Pairs)
}

func TestParsePairs_SkipRowPolicy(t *testing.T) {
	in := "x,y\n1,1\nabc,2\n7\n2,NaN\n3,3\n"

	tbl, err := ParsePairs(strings.NewReader(in), "bad.csv", SkipRow)
	require.NoError(t, err)

	assert.Equal(t, []Pair{{A: 1, B: 1}, {A: 3, B: 3}}, tbl.Pairs)
	require.Len(t, tbl.Skipped, 3)

	assert.Equal(t, 3, tbl.Skipped[0].Line)
	assert.Equal(t, 0, tbl.Skipped[0].Column)
	assert.Equal(t, "abc", tbl.Skipped[0].Value)

	assert.Equal(t, -1, tbl.Skipped[1].Column)
	assert.Contains(t, tbl.Skipped[1].Error(), "fewer than 2 columns")

	assert.Equal(t, 1, tbl.Skipped[2].Column)
	assert.ErrorIs(t, tbl.Skipped[2], errNotFinite)
}

func TestParsePairs_FailFilePolicy(t *testing.T) {
	in := "x,y\n1,1\n1,oops\n"

	_, err := ParsePairs(strings.NewReader(in), "bad.csv", FailFile)
	require.Error(t, err)

	var mre *MalformedRowError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, "bad.csv", mre.File)
	assert.Equal(t, 3, mre.Line)
	assert.Equal(t, "oops", mre.Value)
}

func TestParsePairs_SyntaxErrorFailsFile(t *testing.T) {
	in := "x,y\n1,\"2\n"

	_, err := ParsePairs(strings.NewReader(in), "broken.csv", SkipRow)
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/logs/a.csv", []byte("x,y\n4,5\n"), 0644))

	tbl, err := ReadFile(mfs, "/logs/a.csv", SkipRow)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{A: 4, B: 5}}, tbl.Pairs)

	_, err = ReadFile(mfs, "/logs/missing.csv", SkipRow)
	assert.Error(t, err)
}

func TestRowPolicy_Valid(t *testing.T) {
	assert.True(t, SkipRow.Valid())
	assert.True(t, FailFile.Valid())
	assert.False(t, RowPolicy("ignore").Valid())
}
