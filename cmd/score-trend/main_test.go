package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/banshee-data/coinviz/internal/config"
	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/render"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestRun(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/score/run1.csv", []byte("Score,Time\n0,0\n10,1\n"), 0644))
	require.NoError(t, mfs.WriteFile("/score/run2.csv", []byte("Score,Time\n0,0\n14,1\n"), 0644))
	require.NoError(t, mfs.WriteFile("/score/Greedy/g.csv", []byte("Score,Time\n0,0\n20,1\n"), 0644))

	cfg, err := config.Load("", map[string]any{
		"score_dir":    "/score",
		"baseline_dir": "/score/Greedy",
		"output_dir":   "/plots",
	})
	require.NoError(t, err)

	require.NoError(t, run(context.Background(), cfg, mfs))

	for _, name := range []string{render.TrendPNGFile, render.TrendHTMLFile} {
		data, err := mfs.ReadFile(filepath.Join("/plots", name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	html, err := mfs.ReadFile(filepath.Join("/plots", render.TrendHTMLFile))
	require.NoError(t, err)
	m := regexp.MustCompile(`run=([0-9a-f-]{36})`).FindSubmatch(html)
	require.NotNil(t, m, "subtitle carries the run ID")
	_, err = uuid.ParseBytes(m[1])
	assert.NoError(t, err)
}

func TestRun_UnreadableLogsReportedSeparately(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/score/run1.csv", []byte("Score,Time\n1,nope\n"), 0644))

	cfg, err := config.Load("", map[string]any{
		"score_dir":    "/score",
		"baseline_dir": "/score/Greedy",
		"output_dir":   "/plots",
		"row_policy":   "fail_file",
	})
	require.NoError(t, err)

	logs := captureLog(t)
	require.NoError(t, run(context.Background(), cfg, mfs))

	assert.Contains(t, logs.String(), "all 1 files failed")
	assert.NotContains(t, logs.String(), "No CSV files")
	assert.False(t, mfs.Exists("/plots"))
}

func TestRun_NoLogs(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	cfg, err := config.Load("", map[string]any{"score_dir": "/score", "baseline_dir": "/score/Greedy", "output_dir": "/plots"})
	require.NoError(t, err)

	logs := captureLog(t)
	require.NoError(t, run(context.Background(), cfg, mfs))
	assert.False(t, mfs.Exists("/plots"))
	assert.Contains(t, logs.String(), "No CSV files")
}
