package generator

import (
	"github.com/dragonzapeducation/subtitle-generator/internal/audio"
	"github.com/dragonzapeducation/subtitle-generator/internal/logger"
	"github.com/dragonzapeducation/subtitle-generator/internal/recognition"
	"github.com/dragonzapeducation/subtitle-generator/internal/storage"
)

type implService struct {
	bucket     string
	extractor  audio.Extractor
	storage    storage.Gateway
	recognizer recognition.Client
	logger     logger.Logger
}

// New creates a Service from its collaborators. The bucket name is
// needed to turn the job metadata URI back into a bucket-relative path
// at cleanup time.
func New(bucket string, ext audio.Extractor, store storage.Gateway, rec recognition.Client, log logger.Logger) Service {
	return &implService{
		bucket:     bucket,
		extractor:  ext,
		storage:    store,
		recognizer: rec,
		logger:     log,
	}
}
