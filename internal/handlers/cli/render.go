package cli

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/scoring"
	"github.com/KirkDiggler/bank/internal/services/game"
	"github.com/charmbracelet/lipgloss"
)

// RenderBoard renders the pot, round, turn and standings of a game
func RenderBoard(state *game.GameState) string {
	g := state.Game

	lines := []string{
		HeaderStyle.Render(fmt.Sprintf("BANK  Round %d/%d", g.CurrentRound, g.TotalRounds)),
		"",
	}

	pot := "Pot:   " + PotStyle.Render(fmt.Sprintf("%d", g.BankTotal))
	if g.Settings.FirstThreeRollsSevenRule && !g.RoundEnded && scoring.IsProtectedRoll(g.RollCountInRound+1) {
		pot += InfoStyle.Render("  (sevens pay 70)")
	}
	lines = append(lines, pot, fmt.Sprintf("Rolls: %d", g.RollCountInRound))

	switch {
	case g.Status.IsEnded():
		lines = append(lines, "Turn:  "+WinnerStyle.Render("game over"))
	case g.RoundEnded:
		lines = append(lines, "Turn:  "+WarningStyle.Render(roundEndLabel(g.RoundEndReason)))
	default:
		if p := g.CurrentPlayer(); p != nil {
			lines = append(lines, "Turn:  "+TurnStyle.Render(p.Name))
		}
	}

	if state.Leaderboard != nil {
		lines = append(lines, "", renderStandings(state.Leaderboard, g))
	}

	if state.CanUndo {
		lines = append(lines, "", InfoStyle.Render("undo available"))
	}

	return BoardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func roundEndLabel(reason models.RoundEndReason) string {
	switch reason {
	case models.RoundEndReasonSevenRolled:
		return "round over, seven rolled"
	case models.RoundEndReasonAllBanked:
		return "round over, everyone banked"
	}
	return "round over"
}

func renderStandings(board *models.Leaderboard, g *models.Game) string {
	banked := make(map[string]bool, len(g.Players))
	width := 0
	for _, p := range g.Players {
		banked[p.ID] = p.BankedThisRound
		width = max(width, lipgloss.Width(p.Name))
	}

	rows := make([]string, 0, len(board.Standings))
	for i, p := range board.Standings {
		row := fmt.Sprintf("%2d. %-*s %6d", i+1, width, p.Name, p.TotalScore)

		switch {
		case board.IsGameComplete && board.Winner != nil && p.TotalScore == board.Winner.TotalScore:
			row = WinnerStyle.Render(row + "  winner")
		case banked[p.ID] && !g.Status.IsEnded():
			row = BankedStyle.Render(row + "  banked")
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

// RenderMessage renders a titled message line
func RenderMessage(title, message string) string {
	if title == "" {
		return message
	}
	return SuccessStyle.Render(title) + " " + message
}

// RenderError renders an error title and message
func RenderError(title, message string) string {
	return ErrorStyle.Render(title+":") + " " + message
}

// RenderActiveGames lists tables with a game in progress
func RenderActiveGames(games []game.ActiveGame) string {
	if len(games) == 0 {
		return InfoStyle.Render("No games in progress.")
	}

	rows := make([]string, 0, len(games)+1)
	rows = append(rows, HeaderStyle.Render("Games in progress"))
	for _, g := range games {
		rows = append(rows, fmt.Sprintf("%s  round %d of %d, %d players", g.TableID, g.CurrentRound, g.TotalRounds, g.PlayerCount))
	}
	return strings.Join(rows, "\n")
}
