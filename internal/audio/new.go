package audio

import (
	"github.com/dragonzapeducation/subtitle-generator/internal/logger"
	"github.com/dragonzapeducation/subtitle-generator/pkg/executor"
)

type implExtractor struct {
	binaryPath string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates an Extractor that shells out to the given ffmpeg binary.
func New(binaryPath string, exec executor.Executor, log logger.Logger) Extractor {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	return &implExtractor{
		binaryPath: binaryPath,
		executor:   exec,
		logger:     log,
	}
}
