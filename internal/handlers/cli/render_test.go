package cli

import (
	"testing"

	"github.com/KirkDiggler/bank/internal/engine"
	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/services/game"
	"github.com/stretchr/testify/assert"
)

func boardState(mutate func(g *models.Game)) *game.GameState {
	g := &models.Game{
		ID: "game-1",
		Players: []models.Player{
			{ID: "player-1", Name: "Alice", TotalScore: 40},
			{ID: "player-2", Name: "Bob", TotalScore: 10},
		},
		TotalRounds:         10,
		CurrentRound:        1,
		Status:              models.GameStatusActive,
		RoundEndPlayerIndex: models.NoPlayerIndex,
	}
	if mutate != nil {
		mutate(g)
	}
	return &game.GameState{Game: g, Leaderboard: engine.GetStatus(g)}
}

func TestRenderBoard_ProtectedWindow(t *testing.T) {
	out := RenderBoard(boardState(func(g *models.Game) {
		g.Settings.FirstThreeRollsSevenRule = true
		g.RollCountInRound = 2
		g.BankTotal = 15
	}))

	assert.Contains(t, out, "Round 1/10")
	assert.Contains(t, out, "15")
	assert.Contains(t, out, "(sevens pay 70)")
	assert.Contains(t, out, "Turn:  Alice")
	assert.NotContains(t, out, "undo available")
}

func TestRenderBoard_AfterWindow(t *testing.T) {
	state := boardState(func(g *models.Game) {
		g.Settings.FirstThreeRollsSevenRule = true
		g.RollCountInRound = 3
		g.Players[1].BankedThisRound = true
	})
	state.CanUndo = true

	out := RenderBoard(state)
	assert.NotContains(t, out, "sevens pay 70")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "banked")
	assert.Contains(t, out, "undo available")
}

func TestRenderBoard_RoundAndGameEnd(t *testing.T) {
	out := RenderBoard(boardState(func(g *models.Game) {
		g.RoundEnded = true
		g.RoundEndReason = models.RoundEndReasonAllBanked
	}))
	assert.Contains(t, out, "round over, everyone banked")

	out = RenderBoard(boardState(func(g *models.Game) {
		g.Status = models.GameStatusEnded
		g.Players[1].BankedThisRound = true
	}))
	assert.Contains(t, out, "game over")
	assert.Contains(t, out, "winner")
	assert.NotContains(t, out, "banked")
}

func TestRenderActiveGames(t *testing.T) {
	assert.Contains(t, RenderActiveGames(nil), "No games in progress.")

	out := RenderActiveGames([]game.ActiveGame{
		{TableID: "a", CurrentRound: 1, TotalRounds: 10, PlayerCount: 3},
		{TableID: "b", CurrentRound: 4, TotalRounds: 5, PlayerCount: 2},
	})
	assert.Contains(t, out, "a  round 1 of 10, 3 players")
	assert.Contains(t, out, "b  round 4 of 5, 2 players")
}

func TestRenderMessage(t *testing.T) {
	assert.Equal(t, "plain", RenderMessage("", "plain"))
	assert.Contains(t, RenderMessage("Banked!", "Alice banks 18."), "Alice banks 18.")
	assert.Contains(t, RenderError("Game Over", "It's done."), "Game Over:")
}
