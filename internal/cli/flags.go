package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Offline bool   `long:"offline" description:"Force offline mode (no network calls)"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// TodayCommand — show the historical events for today's date.
type TodayCommand struct {
	globals *GlobalFlags
	version string
}

// DateCommand — show the historical events for a specific month and day.
type DateCommand struct {
	Month int  `long:"month" short:"m" description:"Month (1-12)" required:"true"`
	Day   int  `long:"day" short:"d" description:"Day (1-31)" required:"true"`
	Event int  `long:"event" description:"Show only the Nth event for the date (1-based, clamped)"`
	Prev  bool `long:"prev" description:"Show the first event of the previous day instead"`
	Next  bool `long:"next" description:"Show the first event of the next day instead"`

	globals *GlobalFlags
	version string
}

// RandomCommand — show one random historical event.
type RandomCommand struct {
	globals *GlobalFlags
	version string
}

// ImageCommand — resolve an image for a free-text query.
type ImageCommand struct {
	Query  string `long:"query" short:"q" description:"Search query (required)"`
	Output string `long:"out" short:"o" description:"Write the decoded image to this file instead of printing base64"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show store statistics, quota, and connectivity.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand — remove downloaded images past their age limit.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Age limit for downloaded images (e.g., 7d, 24h)" default:"7d"`
	DryRun    bool   `long:"dry-run" description:"Show what would be removed without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL daybook data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}
