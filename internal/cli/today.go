package cli

import (
	"context"
	"time"
)

// Execute implements the go-flags Commander interface for TodayCommand.
func (c *TodayCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithApp(a)
}

// executeWithApp runs the today logic against a provided app (used by tests).
func (c *TodayCommand) executeWithApp(a *app) error {
	now := time.Now()
	evs, err := a.source.EventsByDate(context.Background(), int(now.Month()), now.Day())
	if err != nil {
		return err
	}
	return printEvents(evs, c.globals.JSON)
}
