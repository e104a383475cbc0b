package discord

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/KirkDiggler/bank/internal/engine"
	"github.com/KirkDiggler/bank/internal/models"
	"github.com/KirkDiggler/bank/internal/services/game"
	gameMocks "github.com/KirkDiggler/bank/internal/services/game/mocks"
	"github.com/KirkDiggler/bank/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/bank/internal/services/messaging/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BankCommandTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockGame      *gameMocks.MockService
	mockMessaging *messagingMocks.MockService
	cmd           *BankCommand
	ctx           context.Context
	tableID       string
}

func (s *BankCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGame = gameMocks.NewMockService(s.mockCtrl)
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()
	s.tableID = "channel-1"

	cmd, err := NewBankCommand(&BankCommandConfig{
		GameService:      s.mockGame,
		MessagingService: s.mockMessaging,
		Logger:           log.New(io.Discard),
	})
	s.Require().NoError(err)
	s.cmd = cmd
}

func (s *BankCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBankCommandSuite(t *testing.T) {
	suite.Run(t, new(BankCommandTestSuite))
}

func (s *BankCommandTestSuite) state() *game.GameState {
	g := &models.Game{
		ID: "game-1",
		Players: []models.Player{
			{ID: "player-1", Name: "Alice"},
			{ID: "player-2", Name: "Bob"},
		},
		TotalRounds:         3,
		CurrentRound:        1,
		BankTotal:           20,
		RollCountInRound:    4,
		Status:              models.GameStatusActive,
		RoundEndPlayerIndex: models.NoPlayerIndex,
	}
	return &game.GameState{
		Game:        g,
		Leaderboard: engine.GetStatus(g),
		CanUndo:     true,
	}
}

func subcommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: options,
	}
}

func intOption(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(v),
	}
}

func boolOption(name string, v bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: v,
	}
}

func stringOption(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: v,
	}
}

func (s *BankCommandTestSuite) TestNewBankCommand_Validation() {
	_, err := NewBankCommand(nil)
	s.Error(err)

	_, err = NewBankCommand(&BankCommandConfig{MessagingService: s.mockMessaging})
	s.Error(err)

	_, err = NewBankCommand(&BankCommandConfig{GameService: s.mockGame})
	s.Error(err)
}

func (s *BankCommandTestSuite) TestCommandDefinition() {
	def := s.cmd.GetCommand()
	s.Equal("bank", def.Name)

	var names []string
	for _, o := range def.Options {
		names = append(names, o.Name)
	}
	s.Equal([]string{"start", "roll", "dice", "random", "bank", "next", "status", "undo", "reset", "games"}, names)
}

func (s *BankCommandTestSuite) TestStart_WithPlayers() {
	state := s.state()
	s.mockGame.EXPECT().
		StartGame(s.ctx, &game.StartGameInput{
			TableID:     s.tableID,
			PlayerNames: []string{"Alice", " Bob"},
			TotalRounds: 3,
			Settings:    &models.Settings{FirstThreeRollsSevenRule: false},
		}).
		Return(&game.StartGameOutput{State: state}, nil)

	resp, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("start",
		stringOption("players", "Alice, Bob"),
		intOption("rounds", 3),
		boolOption("seven_rule", false),
	))
	s.Require().NoError(err)
	s.Require().Len(resp.Embeds, 1)
	s.Equal("New Game of Bank", resp.Embeds[0].Title)
	s.Contains(resp.Embeds[0].Description, "Alice rolls first")
}

func (s *BankCommandTestSuite) TestStart_UsesRoster() {
	s.mockGame.EXPECT().
		GetRoster(s.ctx, &game.GetRosterInput{TableID: s.tableID}).
		Return(&game.GetRosterOutput{PlayerNames: []string{"Alice", "Bob"}}, nil)
	s.mockGame.EXPECT().
		StartGame(s.ctx, &game.StartGameInput{
			TableID:     s.tableID,
			PlayerNames: []string{"Alice", "Bob"},
			Replace:     true,
		}).
		Return(&game.StartGameOutput{State: s.state()}, nil)

	_, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("start", boolOption("replace", true)))
	s.NoError(err)
}

func (s *BankCommandTestSuite) TestRollSum() {
	state := s.state()
	out := &game.RollDiceOutput{
		State:       state,
		Roll:        models.Roll{Die1: 3, Die2: 3, Sum: 6, IsDoubles: true},
		RollerName:  "Alice",
		PreviousPot: 10,
		Doubled:     true,
	}
	s.mockGame.EXPECT().
		RollSum(s.ctx, &game.RollSumInput{TableID: s.tableID, Sum: 6, IsDoubles: true}).
		Return(out, nil)
	s.mockMessaging.EXPECT().
		GetRollResultMessage(s.ctx, &messaging.GetRollResultMessageInput{
			PlayerName:  "Alice",
			Roll:        out.Roll,
			PreviousPot: 10,
			NewPot:      20,
			Doubled:     true,
		}).
		Return(&messaging.GetRollResultMessageOutput{Title: "DOUBLES!", Message: "Pot doubled"}, nil)

	resp, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("roll",
		intOption("sum", 6),
		boolOption("doubles", true),
	))
	s.Require().NoError(err)
	s.Equal("DOUBLES!", resp.Embeds[0].Title)
	s.Contains(resp.Embeds[0].Description, "3 + 3 = **6**")
	s.Contains(resp.Embeds[0].Description, "Pot doubled")
}

func (s *BankCommandTestSuite) TestRollDice_EndsRound() {
	state := s.state()
	state.Game.RoundEnded = true
	state.Game.RoundEndReason = models.RoundEndReasonSevenRolled
	state.Game.BankTotal = 0
	out := &game.RollDiceOutput{
		State:       state,
		Roll:        models.Roll{Die1: 3, Die2: 4, Sum: 7},
		RollerName:  "Bob",
		PreviousPot: 44,
		SevenRolled: true,
		RoundEnded:  true,
	}
	s.mockGame.EXPECT().
		RollDice(s.ctx, &game.RollDiceInput{TableID: s.tableID, Die1: 3, Die2: 4}).
		Return(out, nil)
	s.mockMessaging.EXPECT().
		GetRollResultMessage(s.ctx, gomock.Any()).
		Return(&messaging.GetRollResultMessageOutput{Title: "SEVEN!", Message: "Gone"}, nil)
	s.mockMessaging.EXPECT().
		GetRoundEndMessage(s.ctx, &messaging.GetRoundEndMessageInput{
			Reason:      models.RoundEndReasonSevenRolled,
			PlayerName:  "Bob",
			LostPot:     44,
			Round:       1,
			TotalRounds: 3,
		}).
		Return(&messaging.GetRoundEndMessageOutput{Title: "Round 1 of 3 Over", Message: "Lost 44"}, nil)

	resp, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("dice",
		intOption("die1", 3),
		intOption("die2", 4),
	))
	s.Require().NoError(err)
	s.Contains(resp.Embeds[0].Description, "Round 1 of 3 Over")
}

func (s *BankCommandTestSuite) TestBankByName() {
	s.mockGame.EXPECT().
		GetStatus(s.ctx, &game.GetStatusInput{TableID: s.tableID}).
		Return(&game.GetStatusOutput{State: s.state()}, nil)

	banked := s.state()
	banked.Game.Players[1].BankedThisRound = true
	banked.Game.Players[1].TotalScore = 20
	s.mockGame.EXPECT().
		Bank(s.ctx, &game.BankInput{TableID: s.tableID, PlayerID: "player-2"}).
		Return(&game.BankOutput{State: banked, PlayerName: "Bob", Amount: 20}, nil)
	s.mockMessaging.EXPECT().
		GetBankMessage(s.ctx, &messaging.GetBankMessageInput{
			PlayerName:       "Bob",
			Amount:           20,
			TotalScore:       20,
			RemainingPlayers: 1,
		}).
		Return(&messaging.GetBankMessageOutput{Title: "Banked!", Message: "Bob banks 20"}, nil)

	resp, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("bank", stringOption("player", "bob")))
	s.Require().NoError(err)
	s.Equal("Banked!", resp.Embeds[0].Title)
}

func (s *BankCommandTestSuite) TestBankByName_UnknownPlayer() {
	s.mockGame.EXPECT().
		GetStatus(s.ctx, gomock.Any()).
		Return(&game.GetStatusOutput{State: s.state()}, nil)

	_, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("bank", stringOption("player", "Zed")))
	s.ErrorIs(err, errPlayerName)

	resp := s.cmd.errorResponse(s.ctx, err, "Alice")
	s.Equal("Unknown Player", resp.Embeds[0].Title)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Flags)
}

func (s *BankCommandTestSuite) TestBankButton() {
	banked := s.state()
	banked.Game.Players[0].BankedThisRound = true
	s.mockGame.EXPECT().
		Bank(s.ctx, &game.BankInput{TableID: s.tableID, PlayerID: "player-1"}).
		Return(&game.BankOutput{State: banked, PlayerName: "Alice", Amount: 20}, nil)
	s.mockMessaging.EXPECT().
		GetBankMessage(s.ctx, gomock.Any()).
		Return(&messaging.GetBankMessageOutput{Title: "Banked!", Message: "Alice banks 20"}, nil)

	s.True(s.cmd.HandlesComponent(ButtonBankPrefix + "player-1"))
	resp, err := s.cmd.handleButton(s.ctx, s.tableID, ButtonBankPrefix+"player-1")
	s.Require().NoError(err)
	s.Equal("Alice banks 20", resp.Embeds[0].Description)
}

func (s *BankCommandTestSuite) TestBankButton_AlreadyBankedNamesTarget() {
	rejected := &game.PlayerError{PlayerName: "Bob", Err: engine.ErrAlreadyBanked}
	s.mockGame.EXPECT().
		Bank(s.ctx, &game.BankInput{TableID: s.tableID, PlayerID: "player-2"}).
		Return(nil, rejected)

	_, err := s.cmd.handleButton(s.ctx, s.tableID, ButtonBankPrefix+"player-2")
	s.Require().ErrorIs(err, engine.ErrAlreadyBanked)

	// Alice clicked, but the message is about Bob
	s.mockMessaging.EXPECT().
		GetErrorMessage(s.ctx, &messaging.GetErrorMessageInput{Err: err}).
		Return(&messaging.GetErrorMessageOutput{Title: "Already Banked", Message: "Bob already banked this round."}, nil)

	resp := s.cmd.errorResponse(s.ctx, err, "Alice")
	s.Equal("Bob already banked this round.", resp.Embeds[0].Description)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Flags)
}

func (s *BankCommandTestSuite) TestNextRoundButton_GameOver() {
	state := s.state()
	state.Game.Status = models.GameStatusEnded
	state.Game.Players[0].TotalScore = 90
	state.Leaderboard = engine.GetStatus(state.Game)
	s.mockGame.EXPECT().
		NextRound(s.ctx, &game.NextRoundInput{TableID: s.tableID}).
		Return(&game.NextRoundOutput{State: state, GameEnded: true}, nil)
	s.mockMessaging.EXPECT().
		GetGameOverMessage(s.ctx, &messaging.GetGameOverMessageInput{Leaderboard: state.Leaderboard}).
		Return(&messaging.GetGameOverMessageOutput{Title: "Game Over!", Message: "Alice wins with 90 points!"}, nil)

	resp, err := s.cmd.handleButton(s.ctx, s.tableID, ButtonNextRound)
	s.Require().NoError(err)
	s.Equal("Game Over!", resp.Embeds[0].Title)
}

func (s *BankCommandTestSuite) TestUndoButton_NothingToUndo() {
	s.mockGame.EXPECT().
		Undo(s.ctx, &game.UndoInput{TableID: s.tableID}).
		Return(nil, game.ErrNothingToUndo)

	_, err := s.cmd.handleButton(s.ctx, s.tableID, ButtonUndo)
	s.Require().ErrorIs(err, game.ErrNothingToUndo)

	s.mockMessaging.EXPECT().
		GetErrorMessage(s.ctx, &messaging.GetErrorMessageInput{Err: err}).
		Return(&messaging.GetErrorMessageOutput{Title: "Nothing to Undo", Message: "There's nothing left to undo."}, nil)

	resp := s.cmd.errorResponse(s.ctx, err, "Alice")
	s.Equal("Nothing to Undo", resp.Embeds[0].Title)
}

func (s *BankCommandTestSuite) TestErrorResponse_MessagingFailure() {
	s.mockMessaging.EXPECT().
		GetErrorMessage(s.ctx, gomock.Any()).
		Return(nil, errors.New("boom"))

	resp := s.cmd.errorResponse(s.ctx, game.ErrGameNotFound, "")
	s.Equal("Error", resp.Embeds[0].Title)
	s.Equal(game.ErrGameNotFound.Error(), resp.Embeds[0].Description)
}

func (s *BankCommandTestSuite) TestUnknownInputs() {
	_, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("fold"))
	s.Error(err)

	s.False(s.cmd.HandlesComponent("join_game"))
	_, err = s.cmd.handleButton(s.ctx, s.tableID, "join_game")
	s.Error(err)
}

func (s *BankCommandTestSuite) TestGames() {
	s.mockGame.EXPECT().
		ListActiveGames(s.ctx, &game.ListActiveGamesInput{}).
		Return(&game.ListActiveGamesOutput{Games: []game.ActiveGame{
			{TableID: "c1", CurrentRound: 2, TotalRounds: 10, PlayerCount: 4},
		}}, nil)

	resp, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("games"))
	s.Require().NoError(err)
	s.Contains(resp.Embeds[0].Description, "<#c1>: round 2 of 10, 4 players")
}

func (s *BankCommandTestSuite) TestReset() {
	s.mockGame.EXPECT().
		ResetGame(s.ctx, &game.ResetGameInput{TableID: s.tableID}).
		Return(&game.ResetGameOutput{Success: true}, nil)

	resp, err := s.cmd.handleSubcommand(s.ctx, s.tableID, subcommand("reset"))
	s.Require().NoError(err)
	s.Contains(resp.Content, "/bank start")
}
