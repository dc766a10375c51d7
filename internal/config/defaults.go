package config

const (
	defaultDataDir             = "~/.local/share/sagedialog"
	defaultLogDir              = "~/.local/share/sagedialog/logs"
	defaultOutputFolder        = "processed"
	defaultOutputSuffix        = "_enhanced.mkv"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultEventPollIntervalMS = 100
)

// Default returns a Config populated with repository defaults. The equalizer
// and speechnorm values reproduce the stock dialog enhancement recipe: cut
// the low-frequency rumble bands, then expand speech loudness.
func Default() Config {
	return Config{
		Files: Files{
			Extensions:   []string{".mkv", ".mp4", ".mov"},
			OutputFolder: defaultOutputFolder,
			OutputSuffix: defaultOutputSuffix,
		},
		Equalizer: Equalizer{
			Bands: []Band{
				{Frequency: "50", WidthType: "q", Width: "2", GainDB: "-12"},
				{Frequency: "100", WidthType: "q", Width: "2", GainDB: "-10"},
				{Frequency: "150", WidthType: "q", Width: "2", GainDB: "-6"},
			},
		},
		Speechnorm: Speechnorm{
			Expansion:    "6.25",
			Raise:        "0.00001",
			LinkChannels: "1",
		},
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Workflow: Workflow{
			EventPollIntervalMS: defaultEventPollIntervalMS,
		},
	}
}
