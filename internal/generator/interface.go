package generator

import (
	"context"

	"github.com/dragonzapeducation/subtitle-generator/internal/recognition"
)

// Status of a subtitle generation job as seen by a single check.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSuccess    Status = "success"
)

// CheckResult is the outcome of one CheckSubtitleGenerationOperation
// call. Subtitles is only populated when Status is StatusSuccess.
type CheckResult struct {
	Status    Status
	Subtitles string
	Info      recognition.JobInfo
}

// Service turns a video file into a WebVTT subtitle track through an
// asynchronous recognition job. Begin runs extraction, staging and
// submission synchronously and hands back a job id; the caller then
// polls with Check until it observes success or an error. The service
// keeps no state between calls.
type Service interface {
	BeginGeneratingSubtitles(ctx context.Context, videoPath string) (string, error)
	CheckSubtitleGenerationOperation(ctx context.Context, jobID string) (*CheckResult, error)
}
