package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/scoring"
	"github.com/KirkDiggler/bank/internal/services/game"
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorActive     = 0x00ff00
	colorRoundEnded = 0xffa500
	colorGameEnded  = 0xffd700
	colorError      = 0xff0000
)

// Discord allows five rows of five buttons; the last row holds the game controls
const (
	buttonsPerRow  = 5
	maxBankButtons = 20
)

// renderGameState renders a table's game as an embed with action buttons
func renderGameState(state *game.GameState, title, description string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{renderGameEmbed(state, title, description)},
		Components: renderGameComponents(state),
	}
}

// renderGameEmbed renders the pot, round, turn and standings
func renderGameEmbed(state *game.GameState, title, description string) *discordgo.MessageEmbed {
	g := state.Game

	color := colorActive
	switch {
	case g.Status.IsEnded():
		color = colorGameEnded
	case g.RoundEnded:
		color = colorRoundEnded
	}

	pot := fmt.Sprintf("**%d**", g.BankTotal)
	if g.Settings.FirstThreeRollsSevenRule && !g.RoundEnded && scoring.IsProtectedRoll(g.RollCountInRound+1) {
		pot += "\nSevens pay 70"
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Round",
			Value:  fmt.Sprintf("%d / %d", g.CurrentRound, g.TotalRounds),
			Inline: true,
		},
		{
			Name:   "Pot",
			Value:  pot,
			Inline: true,
		},
		{
			Name:   "Rolls",
			Value:  fmt.Sprintf("%d", g.RollCountInRound),
			Inline: true,
		},
		{
			Name:   "Turn",
			Value:  turnLabel(g),
			Inline: true,
		},
	}

	if state.Leaderboard != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Standings",
			Value: renderStandings(state.Leaderboard, g),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Game %s", g.ID),
		},
	}
}

func turnLabel(g *models.Game) string {
	switch {
	case g.Status.IsEnded():
		return "Game over"
	case g.RoundEnded:
		return "Round over"
	}

	current := g.CurrentPlayer()
	if current == nil {
		return "-"
	}
	return current.Name
}

// renderStandings lists players by score, marking who has banked this round
func renderStandings(board *models.Leaderboard, g *models.Game) string {
	// Standings are reset between rounds, so read banked flags from the game
	banked := make(map[string]bool, len(g.Players))
	for _, p := range g.Players {
		banked[p.ID] = p.BankedThisRound
	}

	var sb strings.Builder
	for i, p := range board.Standings {
		marker := ""
		if banked[p.ID] && !g.Status.IsEnded() {
			marker = " 🏦"
		}
		if board.IsGameComplete && board.Winner != nil && p.TotalScore == board.Winner.TotalScore {
			marker = " 🏆"
		}
		fmt.Fprintf(&sb, "%d. %s: %d%s\n", i+1, p.Name, p.TotalScore, marker)
	}

	// Embed field values are capped at 1024 characters
	out := strings.TrimSuffix(sb.String(), "\n")
	if runes := []rune(out); len(runes) > 1024 {
		out = string(runes[:1020]) + "\n..."
	}
	if out == "" {
		out = "-"
	}
	return out
}

// renderGameComponents builds bank buttons for unbanked players plus the controls row
func renderGameComponents(state *game.GameState) []discordgo.MessageComponent {
	g := state.Game

	var rows []discordgo.MessageComponent

	if g.AcceptsActions() {
		var bankButtons []discordgo.MessageComponent
		for _, p := range g.Players {
			if p.BankedThisRound {
				continue
			}
			if len(bankButtons) == maxBankButtons {
				break
			}
			bankButtons = append(bankButtons, discordgo.Button{
				Label:    truncateLabel("Bank " + p.Name),
				Style:    discordgo.SuccessButton,
				CustomID: ButtonBankPrefix + p.ID,
				Disabled: g.BankTotal <= 0,
			})
		}
		rows = append(rows, chunkRows(bankButtons)...)
	}

	var controls []discordgo.MessageComponent
	switch {
	case g.AcceptsActions():
		controls = append(controls, discordgo.Button{
			Label:    "Roll",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonRollDice,
			Emoji: &discordgo.ComponentEmoji{
				Name: "🎲",
			},
		})
	case g.RoundEnded:
		label := "Next Round"
		if g.CurrentRound >= g.TotalRounds {
			label = "Finish Game"
		}
		controls = append(controls, discordgo.Button{
			Label:    label,
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonNextRound,
		})
	}

	if state.CanUndo {
		controls = append(controls, discordgo.Button{
			Label:    "Undo",
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonUndo,
		})
	}

	if len(controls) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: controls})
	}

	return rows
}

func chunkRows(buttons []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := min(start+buttonsPerRow, len(buttons))
		rows = append(rows, discordgo.ActionsRow{Components: buttons[start:end]})
	}
	return rows
}

// Discord rejects button labels over 80 characters
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= 80 {
		return label
	}
	return string(runes[:77]) + "..."
}

// renderError renders an ephemeral error embed
func renderError(title, message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       colorError,
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

// renderActiveGames lists tables with a game in progress
func renderActiveGames(games []game.ActiveGame) *discordgo.InteractionResponseData {
	if len(games) == 0 {
		return &discordgo.InteractionResponseData{
			Content: "No games in progress.",
			Flags:   discordgo.MessageFlagsEphemeral,
		}
	}

	var sb strings.Builder
	for _, g := range games {
		fmt.Fprintf(&sb, "<#%s>: round %d of %d, %d players\n", g.TableID, g.CurrentRound, g.TotalRounds, g.PlayerCount)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Games in Progress",
				Description: sb.String(),
				Color:       colorActive,
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}
