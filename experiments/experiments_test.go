package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"splendor/config"
	"splendor/experiments/metrics"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRunMatch(t *testing.T) {
	m := config.DefaultMatch()
	m.Name = "random-vs-greedy"
	m.Games = 2
	m.MaxTurns = 12
	m.Seed = 1
	m.OutputDir = t.TempDir()
	m.Agents[0].Strategy = config.StrategyRandom
	m.Agents[0].Seed = 1
	m.Agents[1].Strategy = config.StrategyGreedy
	m.Agents[1].Seed = 2
	m.Agents[1].ThinkTime = 5 * time.Millisecond
	m.Agents[1].Weights = config.WeightsConfig{Backend: config.BackendMemory}

	summary, err := RunMatch(m, nil)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Games)

	total := summary.Draws
	for _, wins := range summary.Wins {
		total += wins
	}
	require.Equal(t, summary.Games, total)

	games := readCSV(t, filepath.Join(summary.Dir, "game_records.csv"))
	require.Len(t, games, 3)
	require.Equal(t, []string{"1", "2"}, games[1][2:4])
	require.Equal(t, []string{"2", "1"}, games[2][2:4], "seats swap every other game")

	moves := readCSV(t, filepath.Join(summary.Dir, "move_records.csv"))
	require.Len(t, moves, 1+2*12)

	configs := readCSV(t, filepath.Join(summary.Dir, "agent_configs.csv"))
	require.Equal(t, config.StrategyGreedy, configs[2][2])
}

func TestRunTournament(t *testing.T) {
	base := config.Default()
	base.ThinkTime = 2 * time.Millisecond
	base.Seed = 3
	reg := prometheus.NewRegistry()
	exporter := metrics.NewPrometheusMetrics(reg)

	summary, err := RunTournament([]string{config.StrategyBFS, config.StrategyDLS, config.StrategyMCTS}, base, 1, 4, t.TempDir(), exporter)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Games, "one game per pair")

	count, err := testutil.GatherAndCount(reg, "splendor_search_decisions_total")
	require.NoError(t, err)
	require.Equal(t, 3, count, "decisions exported per strategy")

	_, err = RunTournament([]string{config.StrategyBFS}, base, 1, 4, t.TempDir(), nil)
	require.Error(t, err)
}
