package overlay

import (
	"testing"

	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/runlog"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_KeepsRowsVerbatim(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/high.csv", []byte("x,y\n3,4\n3,4\n25,-2\n"), 0644))
	require.NoError(t, mfs.WriteFile("/low.csv", []byte("x,y\n1.5,2\n"), 0644))

	ov, err := Load(mfs, "/high.csv", "/low.csv", runlog.SkipRow)
	require.NoError(t, err)

	wantHigh := []Marker{{3, 4}, {3, 4}, {25, -2}}
	if diff := cmp.Diff(wantHigh, ov.HighScore.Markers); diff != "" {
		t.Errorf("high markers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []Marker{{1.5, 2}}, ov.LowScore.Markers)
	assert.Equal(t, HighScoreLabel, ov.HighScore.Label)
	assert.Equal(t, LowScoreLabel, ov.LowScore.Label)
}

func TestLoad_EmptyPath(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/high.csv", []byte("x,y\n3,4\n"), 0644))

	ov, err := Load(mfs, "/high.csv", "", runlog.SkipRow)
	require.NoError(t, err)
	assert.False(t, ov.HighScore.Empty())
	assert.True(t, ov.LowScore.Empty())
}

func TestLoad_MissingFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()

	_, err := Load(mfs, "/nope.csv", "", runlog.SkipRow)
	assert.ErrorContains(t, err, HighScoreLabel)
}

func TestHighlightSet_Centred(t *testing.T) {
	set := HighlightSet{Markers: []Marker{{0, 0}, {19, 3}}}

	assert.Equal(t, []Marker{{0.5, 0.5}, {19.5, 3.5}}, set.Centred())
	assert.Equal(t, []Marker{{0, 0}, {19, 3}}, set.Markers)
}
