package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: Storage{
			Path:          "~/.config/daybook",
			EventsFile:    "events.csv",
			ImageCacheDir: "cache",
			CacheFile:     "image_cache.csv",
			DownloadDir:   "downloaded",
			QuotaFile:     "api_counter.json",
		},
		Events: Events{
			ProviderURL:      "https://history.muffinlabs.com",
			TimeoutSeconds:   5,
			ProbeHost:        "8.8.8.8",
			ProbePort:        53,
			ProbeTimeoutSecs: 3,
		},
		Images: Images{
			SearchURL:      "https://www.googleapis.com/customsearch/v1",
			FileType:       "png",
			ResultCount:    10,
			DailyQuota:     95,
			CacheTTLDays:   7,
			TimeoutSeconds: 10,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}
