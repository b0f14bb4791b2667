package recognition

import (
	"fmt"
	"os"

	"github.com/dragonzapeducation/subtitle-generator/internal/logger"
)

type implClient struct {
	projectID       string
	credentialsFile string
	logger          logger.Logger
}

// New creates a Client backed by the Cloud Speech-to-Text long-running
// recognition API. Credentials are injected per client.
func New(projectID, credentialsFile string, log logger.Logger) (Client, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("credentials file not found: %w", err)
	}

	return &implClient{
		projectID:       projectID,
		credentialsFile: credentialsFile,
		logger:          log,
	}, nil
}
