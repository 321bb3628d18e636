package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

// Validation errors. Commands return them before any remote call.
var (
	ErrInvalidDate     = errors.New("date must use YYYY-MM-DD")
	ErrInvalidRange    = errors.New("start time must be before end time")
	ErrOverlap         = errors.New("slot overlaps an existing slot")
	ErrReasonRequired  = errors.New("a reason is required to block")
	ErrSlotBooked      = errors.New("slot is not available and cannot be deleted")
	ErrSlotNotFound    = errors.New("slot not found on the loaded day")
	ErrPatternNotFound = errors.New("no availability pattern matches the slot")
)

// Commands edits an expert's availability. Every command validates locally,
// issues at most one mutating remote call and touches the Store only after
// that call succeeded.
type Commands struct {
	store   *Store
	backend Backend
	log     *zap.Logger
}

func NewCommands(store *Store, log *zap.Logger) *Commands {
	if log == nil {
		log = zap.NewNop()
	}
	return &Commands{store: store, backend: store.backend, log: log}
}

func parseDate(date string) (int, error) {
	d, err := domain.ParseDate(date, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return int(d.Weekday()), nil
}

func parseRange(start, end string) (domain.Interval, error) {
	iv, err := domain.ParseRange(start, end)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %s-%s", ErrInvalidRange, start, end)
	}
	return iv, nil
}

// daySlots returns the slots of date, loading the day when the store holds
// another one.
func (c *Commands) daySlots(ctx context.Context, date string) ([]domain.TimeSlot, error) {
	if slots, ok := c.store.slotsFor(date); ok {
		return slots, nil
	}
	return c.store.LoadDay(ctx, date)
}

func (c *Commands) patterns(ctx context.Context) ([]domain.Pattern, error) {
	if p, ok := c.store.patternsSnapshot(); ok {
		return p, nil
	}
	return c.store.LoadPatterns(ctx)
}

// refresh reloads day and pattern data after a successful mutation. The
// mutation already happened, so failures are only logged.
func (c *Commands) refresh(ctx context.Context, date string, patterns bool) {
	if date != "" {
		if _, err := c.store.LoadDay(ctx, date); err != nil && !errors.Is(err, ErrStale) {
			c.log.Warn("refresh day failed", zap.String("date", date), zap.Error(err))
		}
	}
	if patterns {
		if _, err := c.store.LoadPatterns(ctx); err != nil && !errors.Is(err, ErrStale) {
			c.log.Warn("refresh patterns failed", zap.Error(err))
		}
	}
}

// findPattern prefers the pattern whose id is the slot id and falls back to
// the first pattern with the slot's weekday and bounds.
func findPattern(patterns []domain.Pattern, slot domain.TimeSlot, weekday int) (domain.Pattern, bool) {
	if slot.ID != "" {
		for _, p := range patterns {
			if p.ID == slot.ID {
				return p, true
			}
		}
	}
	for _, p := range patterns {
		if p.Matches(weekday, slot.StartTime, slot.EndTime) {
			return p, true
		}
	}
	return domain.Pattern{}, false
}

// ======================================================
// Slots
// ======================================================

func (c *Commands) AddSlot(ctx context.Context, date, start, end string) (domain.TimeSlot, error) {
	weekday, err := parseDate(date)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	iv, err := parseRange(start, end)
	if err != nil {
		return domain.TimeSlot{}, err
	}

	existing, err := c.daySlots(ctx, date)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	if domain.Overlaps(iv, domain.SlotIntervals(existing), "") {
		return domain.TimeSlot{}, ErrOverlap
	}

	created, err := c.backend.CreatePatterns(ctx, date, []domain.Pattern{{
		DayOfWeek: weekday,
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
	}})
	if err != nil {
		return domain.TimeSlot{}, err
	}

	slot := domain.TimeSlot{
		Date:      date,
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
		Available: true,
		Status:    domain.StatusAvailable,
	}
	if len(created) > 0 && created[0].ID != "" {
		slot.ID = created[0].ID
		c.store.upsertPattern(created[0])
	} else {
		slot.ID = "local-" + uuid.New().String()
	}

	c.store.setDayAvailable(date, true)
	c.store.addSlot(slot)
	c.refresh(ctx, date, true)

	return slot, nil
}

// EditSlot moves the loaded slot id to new bounds by updating the pattern
// behind it.
func (c *Commands) EditSlot(ctx context.Context, id, start, end string) error {
	slot, ok := c.store.findSlot(id)
	if !ok {
		return ErrSlotNotFound
	}
	weekday, err := parseDate(slot.Date)
	if err != nil {
		return err
	}
	iv, err := parseRange(start, end)
	if err != nil {
		return err
	}

	existing, ok := c.store.slotsFor(slot.Date)
	if !ok {
		return ErrSlotNotFound
	}
	if domain.Overlaps(iv, domain.SlotIntervals(existing), id) {
		return ErrOverlap
	}

	patterns, err := c.patterns(ctx)
	if err != nil {
		return err
	}
	p, ok := findPattern(patterns, slot, weekday)
	if !ok {
		return ErrPatternNotFound
	}

	p.StartTime = iv.Start.String()
	p.EndTime = iv.End.String()
	if _, err := c.backend.UpdatePatterns(ctx, []domain.Pattern{p}); err != nil {
		return err
	}

	c.store.updateSlot(id, p.StartTime, p.EndTime)
	c.store.upsertPattern(p)
	c.refresh(ctx, slot.Date, true)

	return nil
}

func (c *Commands) DeleteSlot(ctx context.Context, id string) error {
	slot, ok := c.store.findSlot(id)
	if !ok {
		return ErrSlotNotFound
	}
	if !slot.Available {
		return ErrSlotBooked
	}
	weekday, err := parseDate(slot.Date)
	if err != nil {
		return err
	}

	patterns, err := c.patterns(ctx)
	if err != nil {
		return err
	}
	p, ok := findPattern(patterns, slot, weekday)
	if !ok {
		return ErrPatternNotFound
	}

	if err := c.backend.DeletePatterns(ctx, []string{p.ID}); err != nil {
		return err
	}

	c.store.removeSlot(id)
	c.store.removePattern(p.ID)
	c.refresh(ctx, "", true)

	return nil
}

// ======================================================
// Blocking
// ======================================================

func (c *Commands) BlockDay(ctx context.Context, date, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if _, err := parseDate(date); err != nil {
		return err
	}

	if err := c.backend.Block(ctx, BlockRequest{Date: date, Reason: reason}); err != nil {
		return err
	}

	c.store.setDayAvailable(date, false)
	return nil
}

func (c *Commands) BlockSlot(ctx context.Context, date string, slot domain.TimeSlot, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	if _, err := parseDate(date); err != nil {
		return err
	}
	iv, err := parseRange(slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}

	req := BlockRequest{
		Date:      date,
		Reason:    reason,
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
	}
	if err := c.backend.Block(ctx, req); err != nil {
		return err
	}

	c.store.blockSlot(date, req.StartTime, req.EndTime, reason)
	return nil
}

// UnblockDay lifts a whole-day block and reloads the day's slots.
func (c *Commands) UnblockDay(ctx context.Context, date string) error {
	if _, err := parseDate(date); err != nil {
		return err
	}

	if err := c.backend.Unblock(ctx, UnblockRequest{Date: date}); err != nil {
		return err
	}

	c.store.setDayAvailable(date, true)
	c.refresh(ctx, date, false)
	return nil
}
