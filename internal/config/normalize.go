package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeEncoding()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Decoder = strings.TrimSpace(c.Tools.Decoder)
	if c.Tools.Decoder == "" {
		c.Tools.Decoder = defaultDecoder
	}
	c.Tools.Encoder = strings.TrimSpace(c.Tools.Encoder)
	if c.Tools.Encoder == "" {
		c.Tools.Encoder = defaultEncoder
	}
	c.Tools.Muxer = strings.TrimSpace(c.Tools.Muxer)
	if c.Tools.Muxer == "" {
		c.Tools.Muxer = defaultMuxer
	}
	if c.Tools.ScaleWidth == 0 {
		c.Tools.ScaleWidth = defaultScaleWidth
	}
}

func (c *Config) normalizeEncoding() {
	c.Encoding.VideoBitrate = strings.TrimSpace(c.Encoding.VideoBitrate)
	if c.Encoding.VideoBitrate == "" {
		c.Encoding.VideoBitrate = defaultVideoBitrate
	}
	c.Encoding.Preset = strings.TrimSpace(c.Encoding.Preset)
	if c.Encoding.Preset == "" {
		c.Encoding.Preset = defaultPreset
	}
	c.Encoding.Profile = strings.TrimSpace(c.Encoding.Profile)
	if c.Encoding.Profile == "" {
		c.Encoding.Profile = defaultProfile
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
