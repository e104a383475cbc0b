package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/bank/internal/common/clock"
	"github.com/KirkDiggler/bank/internal/common/uuid"
	"github.com/KirkDiggler/bank/internal/config"
	"github.com/KirkDiggler/bank/internal/dice"
	"github.com/KirkDiggler/bank/internal/handlers/discord"
	"github.com/KirkDiggler/bank/internal/models"
	gameRepo "github.com/KirkDiggler/bank/internal/repositories/game"
	rosterRepo "github.com/KirkDiggler/bank/internal/repositories/roster"
	gameService "github.com/KirkDiggler/bank/internal/services/game"
	"github.com/KirkDiggler/bank/internal/services/messaging"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}

	logger := cfg.NewLogger()

	if cfg.DiscordToken == "" {
		logger.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.RedisOptions())
	defer redisClient.Close()

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", "addr", cfg.RedisAddr, "err", err)
	}

	// Initialize repositories
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

	// Initialize game service
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

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:            cfg.DiscordToken,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("failed to create Discord bot", "err", err)
	}

	if err := bot.Start(); err != nil {
		logger.Fatal("failed to start Discord bot", "err", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info("shutting down")
	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", "err", err)
	}
}
