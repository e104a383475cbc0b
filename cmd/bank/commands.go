package main

import (
	"context"

	"github.com/KirkDiggler/bank/internal/handlers/cli"
	"github.com/KirkDiggler/bank/internal/models"
)

type StartCmd struct {
	Players   []string `arg:"" optional:"" help:"Player names in turn order, defaults to the saved roster"`
	Rounds    int      `short:"r" help:"Number of rounds, 0 uses the configured default"`
	SevenRule bool     `help:"Sevens in the first three rolls add 70" default:"${seven_rule}" negatable:""`
	Replace   bool     `help:"Replace a game already in progress"`
}

func (c *StartCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Start(ctx, &cli.StartInput{
		TableID:     g.Table,
		PlayerNames: c.Players,
		TotalRounds: c.Rounds,
		Settings:    &models.Settings{FirstThreeRollsSevenRule: c.SevenRule},
		Replace:     c.Replace,
	})
}

type RollCmd struct {
	Sum     int  `arg:"" help:"Sum of the dice, 2 to 12"`
	Doubles bool `short:"d" help:"Both dice showed the same face"`
}

func (c *RollCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Roll(ctx, g.Table, c.Sum, c.Doubles)
}

type DiceCmd struct {
	Die1 int `arg:"" help:"First die"`
	Die2 int `arg:"" help:"Second die"`
}

func (c *DiceCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Dice(ctx, g.Table, c.Die1, c.Die2)
}

type RandomCmd struct{}

func (c *RandomCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Random(ctx, g.Table)
}

type BankCmd struct {
	Player string `arg:"" help:"Name of the player banking"`
}

func (c *BankCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Bank(ctx, g.Table, c.Player)
}

type NextCmd struct{}

func (c *NextCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Next(ctx, g.Table)
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Status(ctx, g.Table)
}

type UndoCmd struct{}

func (c *UndoCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Undo(ctx, g.Table)
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Reset(ctx, g.Table)
}

type GamesCmd struct{}

func (c *GamesCmd) Run(ctx context.Context, h *cli.Handler) error {
	return h.Games(ctx)
}

type RosterCmd struct{}

func (c *RosterCmd) Run(ctx context.Context, h *cli.Handler, g *Globals) error {
	return h.Roster(ctx, g.Table)
}
