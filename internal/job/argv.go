package job

import (
	"fmt"
	"strconv"

	"loom/internal/config"
	"loom/internal/pipeline"
)

// DecodeCommand builds the decode/filter stage argument vector: read the
// source, scale to the configured width, and stream raw frames into the
// conduit as yuv4mpegpipe so the encoder learns the geometry from the stream.
func DecodeCommand(cfg *config.Config, source, conduitPath string) pipeline.Command {
	argv := []string{
		cfg.Tools.Decoder,
		"-y",
		"-loglevel", "error",
		"-i", source,
		"-an",
	}
	if cfg.Tools.ScaleWidth > 0 {
		argv = append(argv, "-vf", fmt.Sprintf("scale=%d:-2", cfg.Tools.ScaleWidth))
	}
	argv = append(argv,
		"-pix_fmt", "yuv420p",
		"-f", "yuv4mpegpipe",
		conduitPath,
	)
	return pipeline.Command{Role: "decode", Argv: argv}
}

// EncodeCommand builds the encode stage argument vector: read raw frames from
// the conduit and write a compressed video-only intermediate.
func EncodeCommand(cfg *config.Config, conduitPath, intermediate string, bitrate int64) pipeline.Command {
	argv := []string{
		cfg.Tools.Encoder,
		"-y",
		"-loglevel", "error",
		"-f", "yuv4mpegpipe",
		"-i", conduitPath,
		"-an",
		"-c:v", "libx264",
		"-preset", cfg.Encoding.Preset,
		"-profile:v", cfg.Encoding.Profile,
		"-b:v", strconv.FormatInt(bitrate, 10),
		"-f", "h264",
		intermediate,
	}
	return pipeline.Command{Role: "encode", Argv: argv}
}
