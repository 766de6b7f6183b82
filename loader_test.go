package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-series/config"
	"github.com/andareed/siftly-series/history"
	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/logging"
)

func TestLoadAll_KeepsOrderAndCollectsErrors(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	l := newLoader(config.Default(), store)
	a := writeFile(t, "a.csv", hourlyCSV)
	b := writeFile(t, "b.csv", "x,y\n1,2\n2,3\n3,5\n")
	missing := filepath.Join(t.TempDir(), "nope.csv")

	tabs, errs := l.loadAll(context.Background(), []loadSpec{
		{path: b},
		{path: missing},
		{path: a, columns: []string{"high", "note", "ghost"}},
	})

	require.Len(t, tabs, 2)
	assert.Equal(t, "b", tabs[0].name)
	assert.Equal(t, "a", tabs[1].name)
	assert.Equal(t, []string{"high"}, tabs[1].columns, "text and unknown columns are dropped")

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "load "+missing)
	var ie *ingest.IngestError
	require.ErrorAs(t, errs[0], &ie)
	assert.Equal(t, ingest.KindNotFound, ie.Kind)

	recent, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	var buf bytes.Buffer
	require.NoError(t, printRecent(&buf, store))
	assert.Contains(t, buf.String(), "OPENED")
	assert.Contains(t, buf.String(), a)
	assert.Contains(t, buf.String(), "(row)")
}

func TestPrintRecent_Disabled(t *testing.T) {
	assert.EqualError(t, printRecent(&bytes.Buffer{}, nil), "history is disabled")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"date", "time"}, splitList(" date, ,time,"))
	assert.Nil(t, splitList(""))
}

func TestLoad_BadTimestampsWarnOnce(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "series.log")
	cleanup, err := logging.SetupLogging(logging.Options{File: logPath, Level: "warn", Format: "json"})
	require.NoError(t, err)
	t.Cleanup(func() {
		c, _ := logging.SetupLogging(logging.Options{})
		c()
	})

	l := newLoader(config.Default(), nil)
	path := writeFile(t, "gaps.csv", "date,v\n2024-01-01,1\nsoon,2\n2024-01-03,3\n")
	tab, err := l.load(context.Background(), loadSpec{path: path})
	require.NoError(t, err)
	require.True(t, tab.frame.Report.Degraded())
	cleanup()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "degraded:"))
}
