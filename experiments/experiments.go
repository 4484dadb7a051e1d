package experiments

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"splendor/config"
	"splendor/engine"
	"splendor/experiments/metrics"
	"splendor/game"
	"splendor/searcher/agent"
)

// Summary tallies an experiment's results per agent config ID.
type Summary struct {
	RunID string
	Dir   string
	Games int
	Wins  map[int]int
	Draws int
}

type experiment struct {
	name      string
	configs   []config.Config
	matchUps  [][2]int // indices into configs
	games     int
	maxTurns  int
	seed      uint64
	outputDir string
	exporter  *metrics.PrometheusMetrics
}

// RunMatch plays the two agents of m against each other, alternating seats
// between games.
func RunMatch(m config.MatchConfig, exporter *metrics.PrometheusMetrics) (Summary, error) {
	if err := m.Validate(); err != nil {
		return Summary{}, err
	}
	return experiment{
		name:      m.Name,
		configs:   m.Agents,
		matchUps:  [][2]int{{0, 1}},
		games:     m.Games,
		maxTurns:  m.MaxTurns,
		seed:      m.Seed,
		outputDir: m.OutputDir,
		exporter:  exporter,
	}.run()
}

// RunTournament plays every pair of strategies against each other, each
// built from base with only the strategy changed.
func RunTournament(strategies []string, base config.Config, games, maxTurns int, outputDir string, exporter *metrics.PrometheusMetrics) (Summary, error) {
	if len(strategies) < 2 {
		return Summary{}, errors.New("a tournament needs at least two strategies")
	}
	configs := make([]config.Config, 0, len(strategies))
	for _, strategy := range strategies {
		c := base
		c.Strategy = strategy
		if err := c.Validate(); err != nil {
			return Summary{}, err
		}
		configs = append(configs, c)
	}

	var matchUps [][2]int
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, [2]int{i, j})
		}
	}
	return experiment{
		name:      "tournament",
		configs:   configs,
		matchUps:  matchUps,
		games:     games,
		maxTurns:  maxTurns,
		seed:      base.Seed,
		outputDir: outputDir,
		exporter:  exporter,
	}.run()
}

func (x experiment) run() (Summary, error) {
	summary := Summary{Wins: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.name)

	count := 0
	for mi, matchUp := range x.matchUps {
		log.Info().Msgf("starting matchup %d of %d between %s and %s...",
			mi+1, len(x.matchUps), x.configs[matchUp[0]].Strategy, x.configs[matchUp[1]].Strategy)

		for i := 0; i < x.games; i++ {
			count++
			// Swap seats every other game; seat 0 always opens.
			seats := [2]int{matchUp[0], matchUp[1]}
			if i%2 == 1 {
				seats = [2]int{matchUp[1], matchUp[0]}
			}

			winner, gameMetric, moveMetrics, err := x.runGame(seats, uint64(count))
			if err != nil {
				return summary, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}

			// Record IDs are 1-based config indices.
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[0] + 1,
				Agent2:     seats[1] + 1,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			summary.Games++
			if winner < 0 {
				summary.Draws++
			} else {
				summary.Wins[seats[winner]+1]++
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(x.matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", x.name)

	writer, err := metrics.NewWriter(x.outputDir, x.name)
	if err != nil {
		return summary, errors.Wrap(err, "failed to create experiment writer")
	}
	summary.RunID, summary.Dir = writer.RunID(), writer.Dir()

	agentConfigs := make([]metrics.AgentConfig, 0, len(x.configs))
	for i, c := range x.configs {
		agentConfigs = append(agentConfigs, metrics.AgentConfig{
			ID:        i + 1,
			Strategy:  c.Strategy,
			ThinkTime: c.ThinkTime,
			Cutoff:    c.Cutoff,
			MaxDepth:  c.MaxDepth,
			Seed:      c.Seed,
		})
	}
	if err := writer.WriteAgentConfigs(agentConfigs); err != nil {
		return summary, errors.Wrap(err, "failed to store agent configs")
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, errors.Wrap(err, "failed to write game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, errors.Wrap(err, "failed to write move records")
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	return summary, nil
}

// runGame executes a single game between the configs seated at seats.
func (x experiment) runGame(seats [2]int, index uint64) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	rules := game.NewRules()
	rules.WinningScore = x.configs[seats[0]].WinningScore

	agents := make([]agent.Agent, 0, len(seats))
	for _, seat := range seats {
		c := x.configs[seat]
		if c.Seed != 0 {
			c.Seed += index
		}

		var collector metrics.Collector = metrics.NewCollector()
		if x.exporter != nil {
			collector = x.exporter.Collector(collector)
		}
		a, closeAgent, err := agent.New(c, rules, collector)
		if err != nil {
			return -1, metrics.GameMetric{}, nil, err
		}
		defer closeAgent()
		agents = append(agents, a)
	}

	seed := x.seed + index
	if x.seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	e := engine.LocalEngine(game.NewGameState(seed), rules, agents)
	e.MaxTurns = x.maxTurns
	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}
