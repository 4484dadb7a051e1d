package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"splendor/game"
	"splendor/searcher/agent"
)

// RemoteAgent asks an agent server for each decision. Transport failures
// fall back to the first legal action so a game never stalls.
type RemoteAgent struct {
	URL    string
	Client *http.Client
}

func NewRemoteAgent(url string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (r *RemoteAgent) SelectAction(actions []game.Action, state *game.GameState) game.Action {
	action, err := r.request(actions, state)
	if err != nil {
		log.Warn().Err(err).Str("url", r.URL).Msg("remote agent failed, playing the first legal action")
		if len(actions) == 0 {
			return game.Action{Type: game.Pass}
		}
		return actions[0]
	}
	return action
}

func (r *RemoteAgent) request(actions []game.Action, state *game.GameState) (game.Action, error) {
	body, err := json.Marshal(agent.SelectActionRequest{State: *state, Actions: actions})
	if err != nil {
		return game.Action{}, errors.Wrap(err, "failed to encode request")
	}

	resp, err := r.Client.Post(r.URL+"/selectaction", "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Action{}, errors.Wrap(err, "failed to reach agent")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Action{}, errors.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}

	var action game.Action
	if err := json.NewDecoder(resp.Body).Decode(&action); err != nil {
		return game.Action{}, errors.Wrap(err, "failed to decode action")
	}
	return action, nil
}
