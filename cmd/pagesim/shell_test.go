package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bietkhonhungvandi212/pagesim/internal/driver"
	"github.com/bietkhonhungvandi212/pagesim/internal/paging"
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	opts := util.DefaultOptions()
	opts.Frames = 3
	engine, err := paging.NewEngine(opts)
	require.NoError(t, err)
	cfg := driver.DefaultConfig()
	cfg.StepDelay = 0
	cfg.Seed = 3
	drv, err := driver.New(engine, cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &shell{engine: engine, driver: drv, out: out, logger: zap.NewNop()}, out
}

func run(t *testing.T, sh *shell, line string) error {
	t.Helper()
	return sh.execute(context.Background(), strings.Fields(line))
}

func TestShellScenario(t *testing.T) {
	sh, out := newTestShell(t)

	require.NoError(t, run(t, sh, "start 2 A B C"))
	assert.Contains(t, out.String(), "Process 1 started: 2 frames, 3 pages, FIFO")

	out.Reset()
	require.NoError(t, run(t, sh, "run A B A C"))
	assert.Contains(t, out.String(), "Hit")
	assert.Equal(t, 5, strings.Count(out.String(), "\n"), "header plus four records")

	out.Reset()
	require.NoError(t, run(t, sh, "stats"))
	assert.Contains(t, out.String(), "25.00%")
	assert.Regexp(t, `Faults\s+3`, out.String())
	assert.NotContains(t, out.String(), "SEQ", "history only on request")

	out.Reset()
	require.NoError(t, run(t, sh, "stats history"))
	assert.Contains(t, out.String(), "SEQ")
	assert.Regexp(t, `4\s+C\s+Fault\s+0\s+A`, out.String(), "C evicted A")
	assert.Error(t, run(t, sh, "stats everything"))
	assert.Error(t, run(t, sh, "stats history all"))

	out.Reset()
	require.NoError(t, run(t, sh, "state"))
	assert.Regexp(t, `A\s+disk`, out.String(), "A was evicted")
	assert.Contains(t, out.String(), "Replacement order: [B C]")

	require.NoError(t, run(t, sh, "validate"))
}

func TestShellAlgorithm(t *testing.T) {
	sh, out := newTestShell(t)

	require.NoError(t, run(t, sh, "algo lru"))
	assert.Contains(t, out.String(), "Algorithm: LRU")
	assert.ErrorIs(t, run(t, sh, "algo mru"), util.ErrUnknownAlgorithm)

	require.NoError(t, run(t, sh, "new 2 4"))
	assert.ErrorIs(t, run(t, sh, "algo fifo"), util.ErrProcessActive)
	require.NoError(t, run(t, sh, "reset"))
	assert.NoError(t, run(t, sh, "algo fifo"))
}

func TestShellRandomAndPlay(t *testing.T) {
	sh, out := newTestShell(t)

	assert.ErrorIs(t, run(t, sh, "random"), util.ErrNoActiveProcess)
	out.Reset()
	require.NoError(t, run(t, sh, "new"))
	assert.Contains(t, out.String(), "3 frames", "configured frame count")
	require.NoError(t, run(t, sh, "random 5"))
	assert.Equal(t, uint64(5), sh.engine.GetStatistics().Total())

	out.Reset()
	require.NoError(t, run(t, sh, "play -n 4"))
	assert.Equal(t, uint64(9), sh.engine.GetStatistics().Total())
	assert.Contains(t, out.String(), "SEQ")

	assert.Error(t, run(t, sh, "play -n"))
	assert.Error(t, run(t, sh, "play -n zero"))
	assert.Error(t, run(t, sh, "play -n 0"))

	require.NoError(t, run(t, sh, "algo"))
}

func TestShellPlayNumericPages(t *testing.T) {
	sh, out := newTestShell(t)
	require.NoError(t, run(t, sh, "start 3 7 0 1 2 3 4"))

	out.Reset()
	require.NoError(t, run(t, sh, "play 7"))
	stats := sh.engine.GetStatistics()
	require.Equal(t, uint64(1), stats.Total(), "a numeric id is a page, not a count")
	assert.Equal(t, util.PageID("7"), stats.History[0].Page)

	require.NoError(t, run(t, sh, "play 7 0 1 2 0 3"))
	assert.Equal(t, uint64(7), sh.engine.GetStatistics().Total())
}

func TestShellErrors(t *testing.T) {
	sh, _ := newTestShell(t)

	assert.ErrorIs(t, run(t, sh, "access A"), util.ErrNoActiveProcess)
	assert.Error(t, run(t, sh, "start"))
	assert.Error(t, run(t, sh, "start x A"))
	assert.ErrorIs(t, run(t, sh, "start 0 A"), util.ErrInvalidCapacity)
	assert.Error(t, run(t, sh, "random zero"))
	assert.Error(t, run(t, sh, "bogus"))
	assert.ErrorIs(t, run(t, sh, "quit"), errQuit)
	assert.NoError(t, run(t, sh, ""))

	require.NoError(t, run(t, sh, "start 1 A"))
	assert.ErrorIs(t, run(t, sh, "access B"), util.ErrUnknownPage)
	assert.Error(t, run(t, sh, "access"))
}

func TestRenderInactiveState(t *testing.T) {
	out := &bytes.Buffer{}
	renderState(out, paging.State{Algorithm: util.AlgorithmClock})
	assert.Contains(t, out.String(), "No active process (algorithm CLOCK)")
}
