package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"splendor/config"
	"splendor/experiments"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher/agent"
	"splendor/weights"
)

var (
	configPath  string
	logLevel    string
	metricsAddr string

	matchPath  string
	strategies string
	games      int
	maxTurns   int
	thinkTime  time.Duration
	outputDir  string
	opponent   string
	serveAddr  string
	trendPath  string
	chartPath  string

	rootCmd = &cobra.Command{
		Use:           "splendor",
		Short:         "Anytime search agents for two-player Splendor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a match between two agents and record the results as CSV",
		RunE:  runPlay,
	}

	tournamentCmd = &cobra.Command{
		Use:   "tournament",
		Short: "Play every pair of strategies against each other",
		RunE:  runTournament,
	}

	trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Train the linear evaluator online against an opponent",
		RunE:  runTrain,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve an agent over HTTP",
		RunE:  runServe,
	}

	plotCmd = &cobra.Command{
		Use:   "plot",
		Short: "Render a weight trend log as an HTML line chart",
		RunE:  runPlot,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "agent config YAML (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&matchPath, "match", "", "match config YAML")

	rootCmd.AddCommand(tournamentCmd)
	tournamentCmd.Flags().StringVar(&strategies, "strategies", "bfs,dls,mcts,greedy", "comma separated strategies")
	tournamentCmd.Flags().IntVar(&games, "games", 10, "games per pair")
	tournamentCmd.Flags().IntVar(&maxTurns, "max-turns", 300, "turn cap per game")
	tournamentCmd.Flags().DurationVar(&thinkTime, "think-time", 100*time.Millisecond, "budget per decision")
	tournamentCmd.Flags().StringVar(&outputDir, "out", ".", "directory for experiment records")

	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().IntVar(&games, "games", 10, "training games")
	trainCmd.Flags().StringVar(&opponent, "opponent", config.StrategyRandom, "opponent strategy")
	trainCmd.Flags().StringVar(&outputDir, "out", ".", "directory for experiment records")

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&trendPath, "trend", "trend.csv", "trend log to plot")
	plotCmd.Flags().StringVar(&chartPath, "out", "trend.html", "chart output path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "bad log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// startMetrics serves /metrics in the background and returns an exporter
// registered with the default registry, or nil when addr is empty.
func startMetrics(addr string) *metrics.PrometheusMetrics {
	if addr == "" {
		return nil
	}
	exporter := metrics.NewPrometheusMetrics(nil)
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Info().Msgf("serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	return exporter
}

func loadAgentConfig() (config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return c, err
	}
	if c.LogLevel != "" && !rootCmd.PersistentFlags().Changed("log-level") {
		if err := setupLogging(c.LogLevel); err != nil {
			return c, err
		}
	}
	if metricsAddr == "" {
		metricsAddr = c.MetricsAddr
	}
	return c, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	m, err := config.LoadMatch(matchPath)
	if err != nil {
		return err
	}
	summary, err := experiments.RunMatch(m, startMetrics(metricsAddr))
	if err != nil {
		return err
	}
	log.Info().Interface("wins", summary.Wins).Int("draws", summary.Draws).Str("dir", summary.Dir).Msg("match complete")
	return nil
}

func runTournament(cmd *cobra.Command, args []string) error {
	base, err := loadAgentConfig()
	if err != nil {
		return err
	}
	base.ThinkTime = thinkTime
	summary, err := experiments.RunTournament(strings.Split(strategies, ","), base, games, maxTurns, outputDir, startMetrics(metricsAddr))
	if err != nil {
		return err
	}
	log.Info().Interface("wins", summary.Wins).Int("draws", summary.Draws).Str("dir", summary.Dir).Msg("tournament complete")
	return nil
}

func runTrain(cmd *cobra.Command, args []string) error {
	trainer, err := loadAgentConfig()
	if err != nil {
		return err
	}
	trainer.Strategy = config.StrategyTrain
	if trainer.TrendPath == "" {
		trainer.TrendPath = "trend.csv"
	}

	rival := config.Default()
	rival.Strategy = opponent
	rival.ThinkTime = trainer.ThinkTime
	rival.Features = trainer.Features
	// A badger directory cannot be opened twice; a badger-backed rival plays
	// unit weights from memory.
	rival.Weights = trainer.Weights
	if rival.Weights.Backend == config.BackendBadger {
		rival.Weights = config.WeightsConfig{Backend: config.BackendMemory}
	}

	m := config.DefaultMatch()
	m.Name = "train"
	m.Games = games
	m.OutputDir = outputDir
	m.Seed = trainer.Seed
	m.Agents = []config.Config{trainer, rival}

	summary, err := experiments.RunMatch(m, startMetrics(metricsAddr))
	if err != nil {
		return err
	}
	log.Info().Interface("wins", summary.Wins).Str("trend", trainer.TrendPath).Msg("training complete")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := loadAgentConfig()
	if err != nil {
		return err
	}
	rules := game.NewRules()
	rules.WinningScore = c.WinningScore

	var collector metrics.Collector = metrics.NewCollector()
	withMetrics := metricsAddr != ""
	if withMetrics {
		collector = metrics.NewPrometheusMetrics(nil).Collector(collector)
	}

	a, closeAgent, err := agent.New(c, rules, collector)
	if err != nil {
		return err
	}
	defer closeAgent()

	return agent.StartAgentServer(serveAddr, a, rules, withMetrics)
}

func runPlot(cmd *cobra.Command, args []string) error {
	rows, err := weights.ReadTrend(trendPath)
	if err != nil {
		return err
	}
	f, err := os.Create(chartPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", chartPath)
	}
	defer f.Close()

	if err := weights.PlotTrend(rows, f); err != nil {
		return errors.Wrap(err, "failed to render trend chart")
	}
	log.Info().Int("rows", len(rows)).Str("out", chartPath).Msg("trend chart written")
	return nil
}
