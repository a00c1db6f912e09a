package config

const (
	defaultWorkDir      = "~/.local/share/loom/work"
	defaultOutputDir    = "~/videos"
	defaultLogDir       = "~/.local/share/loom/logs"
	defaultDecoder      = "ffmpeg"
	defaultEncoder      = "ffmpeg"
	defaultMuxer        = "ffmpeg"
	defaultScaleWidth   = 640
	defaultVideoBitrate = "768k"
	defaultPreset       = "medium"
	defaultProfile      = "main"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			Decoder:    defaultDecoder,
			Encoder:    defaultEncoder,
			Muxer:      defaultMuxer,
			ScaleWidth: defaultScaleWidth,
		},
		Encoding: Encoding{
			VideoBitrate: defaultVideoBitrate,
			Preset:       defaultPreset,
			Profile:      defaultProfile,
		},
		Ledger: Ledger{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
