package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv builds a Config from environment variables. This is the only
// place ambient process state is read; the rest of the module takes the
// Config struct explicitly.
//
//	SUBTITLEGEN_PROJECT_ID        google.project_id
//	SUBTITLEGEN_CREDENTIALS_FILE  google.credentials_file
//	SUBTITLEGEN_BUCKET            google.bucket
//	SUBTITLEGEN_AUDIO_TMP_DIR     google.audio_tmp_directory
//	SUBTITLEGEN_FFMPEG            ffmpeg.binary_path
//	SUBTITLEGEN_LOG_LEVEL         logging.level
//	SUBTITLEGEN_MAX_CONCURRENT    performance.max_concurrent
//	SUBTITLEGEN_GEMINI_API_KEYS   summarizer.api_keys (comma separated)
func FromEnv() (*Config, error) {
	cfg := &Config{
		Google: GoogleConfig{
			ProjectID:         os.Getenv("SUBTITLEGEN_PROJECT_ID"),
			CredentialsFile:   os.Getenv("SUBTITLEGEN_CREDENTIALS_FILE"),
			Bucket:            os.Getenv("SUBTITLEGEN_BUCKET"),
			AudioTmpDirectory: os.Getenv("SUBTITLEGEN_AUDIO_TMP_DIR"),
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: os.Getenv("SUBTITLEGEN_FFMPEG"),
		},
		Logging: LoggingConfig{
			Level: os.Getenv("SUBTITLEGEN_LOG_LEVEL"),
		},
	}

	if v := os.Getenv("SUBTITLEGEN_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Performance.MaxConcurrent = n
		}
	}
	if v := os.Getenv("SUBTITLEGEN_GEMINI_API_KEYS"); v != "" {
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.Summarizer.APIKeys = append(cfg.Summarizer.APIKeys, key)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
