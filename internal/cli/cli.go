package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Today  *TodayCommand
	Date   *DateCommand
	Random *RandomCommand
	Image  *ImageCommand
	Status *StatusCommand
	Prune  *PruneCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "daybook"
	parser.LongDescription = "On-this-day historical events with images, cached locally for offline use."

	cmds := &commands{
		Today:  &TodayCommand{globals: &globals, version: version},
		Date:   &DateCommand{globals: &globals, version: version},
		Random: &RandomCommand{globals: &globals, version: version},
		Image:  &ImageCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
		Prune:  &PruneCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("today", "Show today's historical events", "Show the historical events recorded for today's month and day.", cmds.Today)
	parser.AddCommand("date", "Show events for a month and day", "Show the historical events for a specific month and day.", cmds.Date)
	parser.AddCommand("random", "Show one random event", "Show one random historical event, local-only when offline.", cmds.Random)
	parser.AddCommand("image", "Resolve an image for a query", "Resolve an image for a free-text query, spending daily search quota on cache misses.", cmds.Image)
	parser.AddCommand("status", "Show stores, quota, and connectivity", "Show event store statistics, image cache size, remaining search quota, and connectivity.", cmds.Status)
	parser.AddCommand("prune", "Remove old downloaded images", "Remove downloaded images past their age limit.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL daybook data", "Delete ALL daybook data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the daybook CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("daybook %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
