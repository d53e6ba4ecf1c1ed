package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/moneyadventure/adventure-server-go/internal/config"
	"github.com/moneyadventure/adventure-server-go/internal/game"
	"github.com/moneyadventure/adventure-server-go/internal/game/rules"
	"github.com/moneyadventure/adventure-server-go/internal/game/tables"
	"github.com/moneyadventure/adventure-server-go/internal/server"
)

const mixedTableConfig = `
game:
  difficulty: teen
  seed: 2024
  roster:
    - id: ada
      name: Ada
      controller: human
      cash: 1500
      salary: 2500
      monthly_expenses: 1700
    - id: rex
      name: Rex
      controller: computer
      personality: aggressive
      cash: 1200
      salary: 2200
      monthly_expenses: 1500
    - id: mia
      name: Mia
      controller: computer
      personality: charitable
      cash: 1800
      salary: 2800
      monthly_expenses: 2000
pacing:
  roll_delay: 0s
  think_delay: 0s
  end_turn_delay: 0s
`

type httpClient struct {
	t       *testing.T
	handler http.Handler
}

func (c httpClient) command(name string, body interface{}) server.CommandResponse {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode %s: %v", name, err)
		}
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/commands/"+name, &buf))

	var resp server.CommandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		c.t.Fatalf("decode %s response: %v", name, err)
	}
	if rec.Code != http.StatusOK || !resp.OK {
		c.t.Fatalf("%s failed with %d: %s", name, rec.Code, resp.Error)
	}
	return resp
}

func (c httpClient) state() game.Snapshot {
	c.t.Helper()
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	var snap game.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		c.t.Fatalf("decode state: %v", err)
	}
	return snap
}

func loadMixedTable(t *testing.T) (*game.Engine, httpClient) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(mixedTableConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	engine, err := game.NewEngine(cfg.EngineOptions(1), zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	srv := server.New(cfg.Server, engine, zap.NewNop())
	return engine, httpClient{t: t, handler: srv.Handler()}
}

// TestConfiguredGameOverHTTP plays a human seat over HTTP while the engine
// drives the computer seats.
func TestConfiguredGameOverHTTP(t *testing.T) {
	engine, client := loadMixedTable(t)

	client.command("select_difficulty", server.CommandRequest{Difficulty: "teen"})
	client.command("select_goal", server.CommandRequest{GoalID: "open_cafe"})
	engine.RunPending()

	snap := client.state()
	if snap.Phase != rules.PhaseRoll {
		t.Fatalf("expected ROLL after goal selection, got %s", snap.Phase)
	}
	for _, p := range snap.Players {
		if p.SelectedGoal == nil {
			t.Fatalf("player %s has no goal", p.ID)
		}
	}

	for turn := 0; turn < 15; turn++ {
		snap = client.state()
		if snap.Phase == rules.PhaseGameOver {
			break
		}
		if snap.CurrentPlayerID != "ada" {
			t.Fatalf("expected Ada to be up, got %s in %s", snap.CurrentPlayerID, snap.Phase)
		}

		client.command("roll_dice", nil)
		engine.RunPending()

		snap = client.state()
		if snap.Phase == rules.PhaseDecision {
			if snap.CurrentCard == nil {
				t.Fatal("decision phase without a card")
			}
			if snap.CurrentCard.Effect().Kind == tables.EffectFlatCost {
				client.command("pay_penalty", nil)
			} else {
				client.command("pass", nil)
			}
		}
		if client.state().Phase == rules.PhaseEndTurn {
			client.command("advance_turn", nil)
		}
		engine.RunPending()

		snap = client.state()
		if snap.SupportRequest != nil {
			client.command("respond_support", server.CommandRequest{Accept: false})
			engine.RunPending()
		}

		for _, p := range client.state().Players {
			if p.Cash < 0 {
				t.Errorf("player %s has negative cash %d", p.ID, p.Cash)
			}
		}
	}

	served := client.state()
	local := engine.Snapshot()
	if !served.Matches(local.Checksum()) {
		t.Errorf("served state does not match the engine checksum")
	}
	if engine.History().Size() < 2 {
		t.Errorf("expected turn snapshots in history, got %d", engine.History().Size())
	}
}

// TestRestartOverHTTPKeepsRoster checks that a restart returns the table to
// setup with the configured seats.
func TestRestartOverHTTPKeepsRoster(t *testing.T) {
	engine, client := loadMixedTable(t)

	client.command("select_difficulty", server.CommandRequest{Difficulty: "adult"})
	before := client.state()
	client.command("restart", nil)
	engine.RunPending()

	after := client.state()
	if after.Phase != rules.PhaseSetup {
		t.Fatalf("expected SETUP after restart, got %s", after.Phase)
	}
	if after.GameID != before.GameID {
		t.Errorf("restart changed the game id")
	}
	if len(after.Players) != 3 || after.Players[1].Personality != tables.PersonalityAggressive {
		t.Errorf("restart lost the configured roster: %+v", after.Players)
	}
}
