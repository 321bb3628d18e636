package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/cli"
	"github.com/BruksfildServices01/expert-scheduler/internal/client"
)

var CLI struct {
	Server  string `help:"Scheduler API base URL." env:"AVAILCTL_SERVER" default:"http://localhost:8080"`
	Session string `help:"File the login session is kept in." type:"path" default:"~/.config/availctl/session.json"`
	Expert  string `help:"Expert whose calendar is read. Defaults to the logged in user." env:"AVAILCTL_EXPERT"`
	Verbose bool   `help:"Log client activity to stderr." short:"v"`

	Login      cli.LoginCmd      `cmd:"" help:"Log in and store the session."`
	Month      cli.MonthCmd      `cmd:"" help:"Show which days of a month are available."`
	Day        cli.DayCmd        `cmd:"" help:"List the slots of a day."`
	Patterns   cli.PatternsCmd   `cmd:"" help:"List the weekly availability."`
	Add        cli.AddCmd        `cmd:"" help:"Add a slot on a day's weekday."`
	Edit       cli.EditCmd       `cmd:"" help:"Change the bounds of a slot."`
	Delete     cli.DeleteCmd     `cmd:"" help:"Delete a slot."`
	BlockDay   cli.BlockDayCmd   `cmd:"" name:"block-day" help:"Block a whole day."`
	BlockSlot  cli.BlockSlotCmd  `cmd:"" name:"block-slot" help:"Block a single slot."`
	UnblockDay cli.UnblockDayCmd `cmd:"" name:"unblock-day" help:"Remove a day's blocks."`
}

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx := kong.Parse(&CLI,
		kong.Name("availctl"),
		kong.Description("Manage an expert's availability from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(sigCtx, (*context.Context)(nil)),
	)

	log := zap.NewNop()
	if CLI.Verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			log = l
		}
	}
	defer log.Sync()

	storage := client.NewFileStorage(CLI.Session)
	api := client.NewAPI(CLI.Server, storage)
	appCtx := cli.NewContext(api, storage, CLI.Expert, log, os.Stdout)

	err := ctx.Run(appCtx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
