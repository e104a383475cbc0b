package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/bank/internal/common/clock"
	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/engine"
	"github.com/KirkDiggler/bank/internal/models"
	gameRepo "github.com/KirkDiggler/bank/internal/repositories/game"
	rosterRepo "github.com/KirkDiggler/bank/internal/repositories/roster"
	"github.com/charmbracelet/log"
)

// service implements the Service interface
type service struct {
	maxPlayers         int
	defaultTotalRounds int
	defaultSettings    models.Settings

	gameRepo   gameRepo.Repository
	rosterRepo rosterRepo.Repository
	diceRoller dice.Roller
	clock      clock.Clock
	engine     *engine.Engine
	logger     *log.Logger

	// One action per table at a time within this process. Writers in other
	// processes are caught by the repository's version check.
	tableLocks sync.Map
}

// maxConflictRetries bounds how often an action is rebuilt on a newer snapshot
const maxConflictRetries = 3

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	eng, err := engine.New(&engine.Config{
		Clock:         cfg.Clock,
		UUIDGenerator: cfg.UUIDGenerator,
		DiceRoller:    cfg.DiceRoller,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	totalRounds := cfg.DefaultTotalRounds
	if totalRounds <= 0 {
		totalRounds = DefaultTotalRounds
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &service{
		maxPlayers:         maxPlayers,
		defaultTotalRounds: totalRounds,
		defaultSettings:    cfg.DefaultSettings,
		gameRepo:           cfg.GameRepo,
		rosterRepo:         cfg.RosterRepo,
		diceRoller:         cfg.DiceRoller,
		clock:              cfg.Clock,
		engine:             eng,
		logger:             logger.WithPrefix("game"),
	}, nil
}

// lockTable serializes actions at a single table
func (s *service) lockTable(tableID string) func() {
	mu, _ := s.tableLocks.LoadOrStore(tableID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// StartGame creates a new game at a table
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	names := cleanNames(input.PlayerNames)
	if len(names) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	if len(names) > s.maxPlayers {
		return nil, fmt.Errorf("%w: maximum is %d", ErrTooManyPlayers, s.maxPlayers)
	}

	if dup := duplicateName(names); dup != "" {
		return nil, fmt.Errorf("%w: %s", engine.ErrDuplicatePlayer, dup)
	}

	totalRounds := input.TotalRounds
	if totalRounds == 0 {
		totalRounds = s.defaultTotalRounds
	}
	if totalRounds < 1 {
		return nil, ErrInvalidRounds
	}

	settings := s.defaultSettings
	if input.Settings != nil {
		settings = *input.Settings
	}

	defer s.lockTable(input.TableID)()

	existing, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		TableID: input.TableID,
	})
	if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, err
	}

	if existing != nil && existing.Status.IsActive() && !input.Replace {
		return nil, ErrGameAlreadyExists
	}

	players := make([]engine.PlayerConfig, len(names))
	for i, name := range names {
		players[i] = engine.PlayerConfig{
			ID:   fmt.Sprintf("player-%d", i+1),
			Name: name,
		}
	}

	game, err := s.engine.Initialize(&engine.InitializeInput{
		Players:     players,
		TotalRounds: totalRounds,
		Settings:    settings,
	})
	if err != nil {
		return nil, err
	}

	// A new game replaces the old one and its undo history in one write
	save := &gameRepo.SaveGameInput{
		TableID: input.TableID,
		Game:    game,
	}
	if existing != nil {
		save.ExpectedVersion = existing.Version
		save.ClearHistory = true
	}
	if err := s.gameRepo.SaveGame(ctx, save); err != nil {
		return nil, mapSaveError(err)
	}

	if err := s.rosterRepo.SaveRoster(ctx, &rosterRepo.SaveRosterInput{
		Roster: &models.Roster{
			TableID:     input.TableID,
			PlayerNames: names,
			UpdatedAt:   s.clock.Now(),
		},
	}); err != nil {
		// The game is already saved; a lost roster only costs the next setup
		s.logger.Warn("failed to save roster", "table", input.TableID, "err", err)
	}

	s.logger.Info("game started",
		"table", input.TableID,
		"game", game.ID,
		"players", len(players),
		"rounds", totalRounds,
		"sevenRule", settings.FirstThreeRollsSevenRule,
		"starter", game.Players[game.CurrentPlayerIndex].Name)

	return &StartGameOutput{
		State: &GameState{
			Game:        game,
			Leaderboard: engine.GetStatus(game),
			CanUndo:     false,
		},
	}, nil
}

// RollDice applies an explicit die pair
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	return s.roll(ctx, input.TableID, func(*models.Game) (int, int, error) {
		return input.Die1, input.Die2, nil
	})
}

// RollSum applies a roll entered as a sum and a doubles flag
func (s *service) RollSum(ctx context.Context, input *RollSumInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	return s.roll(ctx, input.TableID, func(*models.Game) (int, int, error) {
		return dice.PairForSum(input.Sum, input.IsDoubles)
	})
}

// RollRandom rolls the dice for the current player
func (s *service) RollRandom(ctx context.Context, input *RollRandomInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	return s.roll(ctx, input.TableID, func(game *models.Game) (int, int, error) {
		// Don't burn dice on a game that can't take them
		if err := engine.CheckAcceptsActions(game); err != nil {
			return 0, 0, err
		}
		roll := dice.RollPair(s.diceRoller)
		return roll.Die1, roll.Die2, nil
	})
}

func (s *service) roll(ctx context.Context, tableID string, pick func(*models.Game) (int, int, error)) (*RollDiceOutput, error) {
	if tableID == "" {
		return nil, ErrEmptyTableID
	}

	defer s.lockTable(tableID)()

	game, err := s.getGame(ctx, tableID)
	if err != nil {
		return nil, err
	}

	die1, die2, err := pick(game)
	if err != nil {
		return nil, err
	}

	result, err := engine.Roll(game, die1, die2)
	if err != nil {
		s.logger.Warn("roll rejected", "table", tableID, "die1", die1, "die2", die2, "err", err)
		return nil, err
	}

	state, err := s.save(ctx, tableID, result.Game, game)
	if err != nil {
		return nil, err
	}

	roller := game.Players[result.RollerIndex]
	s.logger.Debug("dice rolled",
		"table", tableID,
		"player", roller.Name,
		"sum", result.Roll.Sum,
		"doubles", result.Roll.IsDoubles,
		"pot", result.Game.BankTotal,
		"roundEnded", result.Game.RoundEnded)

	return &RollDiceOutput{
		State:        state,
		Roll:         result.Roll,
		RollerName:   roller.Name,
		PreviousPot:  result.PreviousPot,
		Doubled:      result.Scoring.Doubled,
		BonusApplied: result.Scoring.BonusApplied,
		SevenRolled:  result.Scoring.SevenRolled,
		RoundEnded:   result.Game.RoundEnded,
	}, nil
}

// Bank locks in the pot for a player. If another process changes the table
// first, the bank is checked again against the newer snapshot.
func (s *service) Bank(ctx context.Context, input *BankInput) (*BankOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	defer s.lockTable(input.TableID)()

	var (
		result *engine.BankResult
		state  *GameState
	)
	err := s.retryOnConflict(input.TableID, func() error {
		game, err := s.getGame(ctx, input.TableID)
		if err != nil {
			return err
		}

		result, err = engine.Bank(game, input.PlayerID)
		if err != nil {
			s.logger.Warn("bank rejected", "table", input.TableID, "player", input.PlayerID, "err", err)
			if i := game.PlayerIndex(input.PlayerID); i >= 0 {
				return &PlayerError{PlayerName: game.Players[i].Name, Err: err}
			}
			return err
		}

		state, err = s.save(ctx, input.TableID, result.Game, game)
		return err
	})
	if err != nil {
		return nil, err
	}

	banker := result.Game.Players[result.PlayerIndex]
	s.logger.Debug("player banked",
		"table", input.TableID,
		"player", banker.Name,
		"amount", result.Amount,
		"score", banker.TotalScore)

	return &BankOutput{
		State:      state,
		PlayerName: banker.Name,
		Amount:     result.Amount,
		RoundEnded: result.Game.RoundEnded,
	}, nil
}

// NextRound advances past an ended round
func (s *service) NextRound(ctx context.Context, input *NextRoundInput) (*NextRoundOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	defer s.lockTable(input.TableID)()

	var (
		next  *models.Game
		state *GameState
	)
	err := s.retryOnConflict(input.TableID, func() error {
		game, err := s.getGame(ctx, input.TableID)
		if err != nil {
			return err
		}

		next, err = engine.AdvanceRound(game)
		if err != nil {
			s.logger.Warn("advance rejected", "table", input.TableID, "err", err)
			return err
		}

		state, err = s.save(ctx, input.TableID, next, game)
		return err
	})
	if err != nil {
		return nil, err
	}

	gameEnded := next.Status.IsEnded()
	if gameEnded {
		s.logger.Info("game ended", "table", input.TableID, "game", next.ID, "winner", state.Leaderboard.Winner.Name, "tie", state.Leaderboard.IsTie)
	} else {
		s.logger.Debug("round advanced", "table", input.TableID, "round", next.CurrentRound)
	}

	return &NextRoundOutput{
		State:     state,
		GameEnded: gameEnded,
	}, nil
}

// GetStatus returns the current game and leaderboard
func (s *service) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	game, err := s.getGame(ctx, input.TableID)
	if err != nil {
		return nil, err
	}

	state, err := s.buildState(ctx, input.TableID, game)
	if err != nil {
		return nil, err
	}

	return &GetStatusOutput{
		State: state,
	}, nil
}

// Undo restores the snapshot before the last action
func (s *service) Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	defer s.lockTable(input.TableID)()

	game, err := s.gameRepo.Undo(ctx, &gameRepo.UndoInput{
		TableID: input.TableID,
	})
	if err != nil {
		switch {
		case errors.Is(err, gameRepo.ErrNothingToUndo):
			return nil, ErrNothingToUndo
		case errors.Is(err, gameRepo.ErrVersionConflict):
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	state, err := s.buildState(ctx, input.TableID, game)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("action undone", "table", input.TableID, "round", game.CurrentRound, "pot", game.BankTotal)

	return &UndoOutput{
		State: state,
	}, nil
}

// ResetGame discards the game at a table
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	defer s.lockTable(input.TableID)()

	if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		TableID: input.TableID,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("game reset", "table", input.TableID)

	return &ResetGameOutput{
		Success: true,
	}, nil
}

// GetRoster returns the player names last used at a table
func (s *service) GetRoster(ctx context.Context, input *GetRosterInput) (*GetRosterOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.TableID == "" {
		return nil, ErrEmptyTableID
	}

	roster, err := s.rosterRepo.GetRoster(ctx, &rosterRepo.GetRosterInput{
		TableID: input.TableID,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrRosterNotFound) {
			return &GetRosterOutput{PlayerNames: []string{}}, nil
		}
		return nil, err
	}

	return &GetRosterOutput{
		PlayerNames: roster.PlayerNames,
	}, nil
}

// ListActiveGames returns every table with a game in progress
func (s *service) ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error) {
	out, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{})
	if err != nil {
		return nil, err
	}

	games := make([]ActiveGame, 0, len(out.Games))
	for tableID, game := range out.Games {
		games = append(games, ActiveGame{
			TableID:      tableID,
			GameID:       game.ID,
			CurrentRound: game.CurrentRound,
			TotalRounds:  game.TotalRounds,
			PlayerCount:  len(game.Players),
		})
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].TableID < games[j].TableID
	})

	return &ListActiveGamesOutput{
		Games: games,
	}, nil
}

func (s *service) getGame(ctx context.Context, tableID string) (*models.Game, error) {
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		TableID: tableID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// save replaces the table's snapshot, keeping the previous one for undo.
// It fails with ErrConcurrentUpdate if previous is no longer the stored snapshot.
func (s *service) save(ctx context.Context, tableID string, next, previous *models.Game) (*GameState, error) {
	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		TableID:         tableID,
		Game:            next,
		Previous:        previous,
		ExpectedVersion: previous.Version,
	}); err != nil {
		return nil, mapSaveError(err)
	}

	return &GameState{
		Game:        next,
		Leaderboard: engine.GetStatus(next),
		CanUndo:     true,
	}, nil
}

func mapSaveError(err error) error {
	if errors.Is(err, gameRepo.ErrVersionConflict) {
		return ErrConcurrentUpdate
	}
	return err
}

// retryOnConflict reruns fn on a fresh read while another process keeps winning the write
func (s *service) retryOnConflict(tableID string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		if err = fn(); !errors.Is(err, ErrConcurrentUpdate) {
			return err
		}
		s.logger.Debug("table changed by another action, retrying", "table", tableID, "attempt", attempt)
	}
	return err
}

func (s *service) buildState(ctx context.Context, tableID string, game *models.Game) (*GameState, error) {
	n, err := s.gameRepo.GetHistoryLength(ctx, &gameRepo.GetHistoryLengthInput{
		TableID: tableID,
	})
	if err != nil {
		return nil, err
	}

	return &GameState{
		Game:        game,
		Leaderboard: engine.GetStatus(game),
		CanUndo:     n > 0,
	}, nil
}

// duplicateName returns the first name that repeats, ignoring case, or ""
func duplicateName(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			return name
		}
		seen[key] = true
	}
	return ""
}

// cleanNames trims names and drops blank ones
func cleanNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned
}
