package cli

import "context"

// Execute implements the go-flags Commander interface for RandomCommand.
func (c *RandomCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithApp(a)
}

// executeWithApp runs the random logic against a provided app (used by tests).
func (c *RandomCommand) executeWithApp(a *app) error {
	ev, err := a.source.RandomEvent(context.Background())
	if err != nil {
		return err
	}
	return printEvent(ev, c.globals.JSON)
}
