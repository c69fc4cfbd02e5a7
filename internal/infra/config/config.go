package config

import (
	"github.com/caarlos0/env/v11"
)

// Config supplies the environment-derived defaults behind every flag, so
// deployments can pin tool paths or output conventions without wrapping
// the command line.
type Config struct {
	OutDir    string  `env:"FRAMEGRAB_OUT_DIR"    envDefault:"frames"`
	FPS       float64 `env:"FRAMEGRAB_FPS"        envDefault:"10"`
	Pattern   string  `env:"FRAMEGRAB_PATTERN"    envDefault:"frame_%06d.png"`
	VideoPath string  `env:"FRAMEGRAB_VIDEO_PATH" envDefault:"video.mp4"`

	YtDlpBin   string `env:"FRAMEGRAB_YTDLP_BIN"   envDefault:"yt-dlp"`
	FFmpegBin  string `env:"FRAMEGRAB_FFMPEG_BIN"  envDefault:"ffmpeg"`
	FFprobeBin string `env:"FRAMEGRAB_FFPROBE_BIN" envDefault:"ffprobe"`

	LogLevel string `env:"FRAMEGRAB_LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
