package agent

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"splendor/game"
	"splendor/utils"
)

// SelectActionRequest is the body of POST /selectaction. When Actions is
// empty the server enumerates them for the agent to move; otherwise every
// action must be legal in State.
type SelectActionRequest struct {
	State   game.GameState `json:"state"`
	Actions []game.Action  `json:"actions"`
}

// Server exposes an Agent over HTTP. Decisions are serialised: an agent is
// not safe for concurrent use.
type Server struct {
	agent  Agent
	oracle game.Oracle
	mu     sync.Mutex
	mux    *http.ServeMux
}

// NewServer wires /selectaction and, when withMetrics is set, /metrics.
func NewServer(agent Agent, oracle game.Oracle, withMetrics bool) *Server {
	s := &Server{agent: agent, oracle: oracle, mux: http.NewServeMux()}
	s.mux.HandleFunc("/selectaction", s.handleSelectAction)
	if withMetrics {
		s.mux.Handle("/metrics", promhttp.Handler())
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// StartAgentServer serves agent on addr until the listener fails.
func StartAgentServer(addr string, agent Agent, oracle game.Oracle, withMetrics bool) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, NewServer(agent, oracle, withMetrics))
}

func (s *Server) handleSelectAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload SelectActionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	state := &payload.State
	if err := state.Validate(); err != nil {
		http.Error(w, "bad request: malformed state: "+err.Error(), http.StatusBadRequest)
		return
	}
	legal := s.oracle.LegalActions(state, state.ToMove)
	actions := payload.Actions
	if len(actions) == 0 {
		actions = legal
	}
	for _, action := range actions {
		if !utils.Contains(legal, action) {
			http.Error(w, "bad request: illegal action "+action.String(), http.StatusBadRequest)
			return
		}
	}
	if len(actions) == 0 {
		http.Error(w, "no legal actions", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	chosen := s.agent.SelectAction(actions, state)
	s.mu.Unlock()

	if !utils.Contains(actions, chosen) {
		log.Warn().Msgf("agent returned %s outside the legal set, using the first action", chosen)
		chosen = actions[0]
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chosen); err != nil {
		http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
	}
}
