package storage

import (
	"fmt"
	"os"

	"github.com/dragonzapeducation/subtitle-generator/internal/logger"
)

type implGateway struct {
	bucket          string
	tmpDir          string
	credentialsFile string
	logger          logger.Logger
}

// New creates a Gateway backed by a Google Cloud Storage bucket.
// Credentials are injected per client, never through process
// environment variables.
func New(bucket, tmpDir, credentialsFile string, log logger.Logger) (Gateway, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("credentials file not found: %w", err)
	}

	return &implGateway{
		bucket:          bucket,
		tmpDir:          tmpDir,
		credentialsFile: credentialsFile,
		logger:          log,
	}, nil
}
