package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) (*runner, *bytes.Buffer) {
	var out bytes.Buffer
	r, err := newRunner(Default(), "test-run", nil, &out)
	require.NoError(t, err)
	return r, &out
}

func TestRunnerStep(t *testing.T) {
	r, _ := newTestRunner(t)

	res, err := r.step("A")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iteration)
	assert.Equal(t, "A", res.Symbol)
	assert.NotEmpty(t, res.Active)
	// nothing was predicted for the first symbol
	assert.Equal(t, len(res.Active), res.Bursting)
	assert.Equal(t, res.Active, r.baseline.Predicted(r.methods[0]))
}

func TestRunnerFeedStopsOnCancel(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.feed(ctx, "ABC")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Equal(t, 0, r.region.Iteration())
}

func TestRunPasses(t *testing.T) {
	r, out := newTestRunner(t)
	require.NoError(t, r.runPasses(context.Background(), "ABCABC", 8))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "pass   1  bursting"))
	assert.Contains(t, lines[0], "last missing")
	assert.Contains(t, lines[0], "zeroth missing")

	r.reset()
	results, err := r.feed(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "B", results[0].PredictedSymbol)

	assert.Error(t, r.runPasses(context.Background(), "", 1))
}

func TestShellCommands(t *testing.T) {
	r, _ := newTestRunner(t)
	var out bytes.Buffer
	sh := &Shell{runner: r, out: &out}
	ctx := context.Background()

	require.NoError(t, sh.handleLine(ctx, "ABC"))
	assert.Equal(t, 3, r.region.Iteration())
	assert.Contains(t, out.String(), `"C"`)

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/stats"))
	assert.Contains(t, out.String(), "nPredictions")
	assert.Contains(t, out.String(), "baseline last")

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/segments"))
	assert.Contains(t, out.String(), "segments per cell")
	assert.Contains(t, out.String(), "proximal: ")

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/snapshot"))
	assert.True(t, strings.HasPrefix(out.String(),
		fmt.Sprintf("iteration 3: %d active columns", len(r.region.ActiveColumnIndices()))))

	out.Reset()
	col := r.region.ActiveColumnIndices()[0]
	require.NoError(t, sh.handleLine(ctx, fmt.Sprintf("/snapshot %d", col)))
	assert.True(t, strings.HasPrefix(out.String(), fmt.Sprintf("column %d overlap", col)))
	assert.Contains(t, out.String(), "cell 3 active=")
	assert.Error(t, sh.handleLine(ctx, "/snapshot 99999"))
	assert.Error(t, sh.handleLine(ctx, "/snapshot x"))

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/snapshot all"))
	assert.Contains(t, out.String(), "----- predictive cells -----")
	assert.Equal(t, 1+4*(r.region.NumColumns()+1), len(strings.Split(strings.TrimSpace(out.String()), "\n")))

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/cell 0 1"))
	assert.True(t, strings.HasPrefix(out.String(), "Column: 0 Cell: 1"))
	assert.Error(t, sh.handleLine(ctx, "/cell 0 9"))
	assert.Error(t, sh.handleLine(ctx, "/cell x 1"))
	assert.Error(t, sh.handleLine(ctx, "/cell 0"))

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/learn off"))
	assert.False(t, r.region.Learning())
	assert.Contains(t, out.String(), "Learning: false")
	assert.Error(t, sh.handleLine(ctx, "/learn maybe"))

	require.NoError(t, sh.handleLine(ctx, "/reset"))
	assert.Empty(t, r.region.ActiveColumnIndices())

	out.Reset()
	require.NoError(t, sh.handleLine(ctx, "/grid"))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), r.region.Height())

	assert.Equal(t, errQuit, sh.handleLine(ctx, "/quit"))
	assert.NoError(t, sh.handleLine(ctx, "   "))
}

func TestRenderGrid(t *testing.T) {
	r, _ := newTestRunner(t)
	res, err := r.step("A")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderGrid(&buf, r.region, false))
	grid := buf.String()

	rows := strings.Split(strings.TrimSuffix(grid, "\n"), "\n")
	require.Len(t, rows, r.region.Height())
	for _, row := range rows {
		assert.Len(t, row, r.region.Width())
	}
	// every active column burst on the first tick
	assert.Equal(t, len(res.Active), strings.Count(grid, "B"))
	assert.NotContains(t, grid, "\033[")

	buf.Reset()
	require.NoError(t, renderGrid(&buf, r.region, true))
	assert.Contains(t, buf.String(), ansiRed+"B"+ansiReset)

	assert.False(t, isTerminalWriter(&buf))
}

func TestFormatHistogram(t *testing.T) {
	assert.Equal(t, "0:3 2:1 10:4", formatHistogram(map[int]int{10: 4, 0: 3, 2: 1}))
	assert.Equal(t, "", formatHistogram(map[int]int{}))
}
