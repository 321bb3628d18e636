package cli

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ======================================================
// Session
// ======================================================

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"AVAILCTL_PASSWORD" required:""`
}

func (c *LoginCmd) Run(ctx context.Context, app *Context) error {
	sess, err := app.API.Login(ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	app.printf("Logged in as %s (%s)\n", sess.UserID, sess.Role)
	return nil
}

// ======================================================
// Reads
// ======================================================

type MonthCmd struct {
	Month int `arg:"" optional:"" help:"Month 1-12, defaults to the current one."`
	Year  int `arg:"" optional:"" help:"Year, defaults to the current one."`
}

func (c *MonthCmd) Run(ctx context.Context, app *Context) error {
	if err := app.requireExpert(); err != nil {
		return err
	}

	now := time.Now()
	if c.Month == 0 {
		c.Month = int(now.Month())
	}
	if c.Year == 0 {
		c.Year = now.Year()
	}

	m, err := app.Store.LoadMonth(ctx, c.Month, c.Year)
	if err != nil {
		return err
	}

	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		mark := "-"
		if m[d] {
			mark = "available"
		}
		app.printf("%s  %s\n", d, mark)
	}
	return nil
}

type DayCmd struct {
	Date string `arg:"" help:"Day as YYYY-MM-DD."`
}

func (c *DayCmd) Run(ctx context.Context, app *Context) error {
	if err := app.requireExpert(); err != nil {
		return err
	}

	slots, err := app.Store.LoadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		app.printf("No slots on %s.\n", c.Date)
		return nil
	}
	for _, s := range slots {
		printSlot(app, s)
	}
	return nil
}

func printSlot(app *Context, s domain.TimeSlot) {
	line := s.StartTime + "-" + s.EndTime + "  " + s.Status.Label()
	if s.Reason != "" {
		line += " (" + s.Reason + ")"
	}
	app.printf("%s  [%s]\n", line, s.ID)
}

type PatternsCmd struct{}

func (c *PatternsCmd) Run(ctx context.Context, app *Context) error {
	if err := app.requireExpert(); err != nil {
		return err
	}

	patterns, err := app.Store.LoadPatterns(ctx)
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		app.printf("No weekly availability yet.\n")
		return nil
	}
	for _, p := range patterns {
		name := "?"
		if domain.ValidWeekday(p.DayOfWeek) {
			name = weekdayNames[p.DayOfWeek]
		}
		app.printf("%s  %s-%s  [%s]\n", name, p.StartTime, p.EndTime, p.ID)
	}
	return nil
}

// ======================================================
// Slot commands
// ======================================================

type AddCmd struct {
	Date  string `arg:"" help:"Day as YYYY-MM-DD."`
	Start string `arg:"" help:"Start time HH:MM."`
	End   string `arg:"" help:"End time HH:MM."`
}

func (c *AddCmd) Run(ctx context.Context, app *Context) error {
	if err := app.requireExpert(); err != nil {
		return err
	}

	slot, err := app.Commands.AddSlot(ctx, c.Date, c.Start, c.End)
	if err != nil {
		return err
	}
	app.printf("Added ")
	printSlot(app, slot)
	return nil
}

type EditCmd struct {
	Date  string `arg:"" help:"Day the slot is on, YYYY-MM-DD."`
	ID    string `arg:"" help:"Slot id as shown by day."`
	Start string `arg:"" help:"New start time HH:MM."`
	End   string `arg:"" help:"New end time HH:MM."`
}

func (c *EditCmd) Run(ctx context.Context, app *Context) error {
	if err := app.requireExpert(); err != nil {
		return err
	}

	if _, err := app.Store.LoadDay(ctx, c.Date); err != nil {
		return err
	}
	if err := app.Commands.EditSlot(ctx, c.ID, c.Start, c.End); err != nil {
		return err
	}
	app.printf("Moved %s to %s-%s\n", c.ID, c.Start, c.End)
	return nil
}

type DeleteCmd struct {
	Date string `arg:"" help:"Day the slot is on, YYYY-MM-DD."`
	ID   string `arg:"" help:"Slot id as shown by day."`
}

func (c *DeleteCmd) Run(ctx context.Context, app *Context) error {
	if err := app.requireExpert(); err != nil {
		return err
	}

	if _, err := app.Store.LoadDay(ctx, c.Date); err != nil {
		return err
	}
	if err := app.Commands.DeleteSlot(ctx, c.ID); err != nil {
		return err
	}
	app.printf("Deleted %s\n", c.ID)
	return nil
}

// ======================================================
// Blocking
// ======================================================

type BlockDayCmd struct {
	Date   string `arg:"" help:"Day as YYYY-MM-DD."`
	Reason string `help:"Why the day is blocked." short:"r"`
}

func (c *BlockDayCmd) Run(ctx context.Context, app *Context) error {
	if err := app.Commands.BlockDay(ctx, c.Date, c.Reason); err != nil {
		return err
	}
	app.printf("Blocked %s\n", c.Date)
	return nil
}

type BlockSlotCmd struct {
	Date   string `arg:"" help:"Day as YYYY-MM-DD."`
	Start  string `arg:"" help:"Slot start HH:MM."`
	End    string `arg:"" help:"Slot end HH:MM."`
	Reason string `help:"Why the slot is blocked." short:"r"`
}

func (c *BlockSlotCmd) Run(ctx context.Context, app *Context) error {
	slot := domain.TimeSlot{Date: c.Date, StartTime: c.Start, EndTime: c.End}
	if err := app.Commands.BlockSlot(ctx, c.Date, slot, c.Reason); err != nil {
		return err
	}
	app.printf("Blocked %s %s-%s\n", c.Date, c.Start, c.End)
	return nil
}

type UnblockDayCmd struct {
	Date string `arg:"" help:"Day as YYYY-MM-DD."`
}

func (c *UnblockDayCmd) Run(ctx context.Context, app *Context) error {
	if err := app.Commands.UnblockDay(ctx, c.Date); err != nil {
		return err
	}
	app.printf("Unblocked %s\n", c.Date)
	return nil
}
