package main

import (
	"context"
	"os"
	"time"

	"github.com/KirkDiggler/bank/internal/common/clock"
	"github.com/KirkDiggler/bank/internal/common/uuid"
	"github.com/KirkDiggler/bank/internal/config"
	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/handlers/cli"
	"github.com/KirkDiggler/bank/internal/models"
	gameRepo "github.com/KirkDiggler/bank/internal/repositories/game"
	rosterRepo "github.com/KirkDiggler/bank/internal/repositories/roster"
	gameService "github.com/KirkDiggler/bank/internal/services/game"
	"github.com/KirkDiggler/bank/internal/services/messaging"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Table string `short:"t" help:"Table the game is played at" default:"cli" env:"BANK_TABLE"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Start   StartCmd         `cmd:"" help:"Start a new game"`
	Roll    RollCmd          `cmd:"" help:"Record a roll by its sum"`
	Dice    DiceCmd          `cmd:"" help:"Record a roll by both dice"`
	Random  RandomCmd        `cmd:"" help:"Roll the dice for the current player"`
	Bank    BankCmd          `cmd:"" help:"Bank the pot for a player"`
	Next    NextCmd          `cmd:"" help:"Start the next round"`
	Status  StatusCmd        `cmd:"" help:"Show the board"`
	Undo    UndoCmd          `cmd:"" help:"Take back the last action"`
	Reset   ResetCmd         `cmd:"" help:"Discard the game at this table"`
	Games   GamesCmd         `cmd:"" help:"List tables with a game in progress"`
	Roster  RosterCmd        `cmd:"" help:"Show the players last used at this table"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}

	logger := cfg.NewLogger()

	ctx := context.Background()

	var c CLI
	kctx := kong.Parse(&c,
		kong.Name("bank"),
		kong.Description("Score a game of Bank from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"seven_rule": boolString(cfg.SevenRule),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	redisClient := redis.NewClient(cfg.RedisOptions())
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", "addr", cfg.RedisAddr, "err", err)
	}

	games, err := gameRepo.NewRedis(&gameRepo.Config{
		RedisClient:  redisClient,
		HistoryLimit: cfg.HistoryLimit,
	})
	if err != nil {
		logger.Fatal("failed to create game repository", "err", err)
	}

	rosters, err := rosterRepo.NewRedis(&rosterRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create roster repository", "err", err)
	}

	gameSvc, err := gameService.New(&gameService.Config{
		MaxPlayers:         cfg.MaxPlayers,
		DefaultTotalRounds: cfg.DefaultRounds,
		DefaultSettings:    models.Settings{FirstThreeRollsSevenRule: cfg.SevenRule},
		GameRepo:           games,
		RosterRepo:         rosters,
		DiceRoller:         dice.New(&dice.Config{}),
		Clock:              &clock.DefaultClock{},
		UUIDGenerator:      uuid.New(),
		Logger:             logger,
	})
	if err != nil {
		logger.Fatal("failed to create game service", "err", err)
	}

	messagingSvc, err := messaging.New(&messaging.Config{})
	if err != nil {
		logger.Fatal("failed to create messaging service", "err", err)
	}

	handler, err := cli.New(&cli.Config{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Out:              os.Stdout,
	})
	if err != nil {
		logger.Fatal("failed to create handler", "err", err)
	}

	if err := kctx.Run(handler, &c.Globals); err != nil {
		handler.PrintError(ctx, err)
		os.Exit(1)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
