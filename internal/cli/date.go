package cli

import (
	"context"

	"github.com/runnerr0/daybook/internal/events"
)

// Execute implements the go-flags Commander interface for DateCommand.
func (c *DateCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithApp(a)
}

// executeWithApp runs the date logic against a provided app (used by tests).
func (c *DateCommand) executeWithApp(a *app) error {
	if err := validDate(c.Month, c.Day); err != nil {
		return err
	}

	ctx := context.Background()

	switch {
	case c.Prev:
		ev, err := a.source.PrevDay(ctx, c.Month, c.Day)
		if err != nil {
			return err
		}
		return printEvent(ev, c.globals.JSON)
	case c.Next:
		ev, err := a.source.NextDay(ctx, c.Month, c.Day)
		if err != nil {
			return err
		}
		return printEvent(ev, c.globals.JSON)
	default:
		evs, err := a.source.EventsByDate(ctx, c.Month, c.Day)
		if err != nil {
			return err
		}
		if c.Event > 0 {
			if len(evs) == 0 {
				return printEvent(nil, c.globals.JSON)
			}
			ev, _ := events.Advance(evs, evs[0], c.Event-1)
			return printEvent(&ev, c.globals.JSON)
		}
		return printEvents(evs, c.globals.JSON)
	}
}
