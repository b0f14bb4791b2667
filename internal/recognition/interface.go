package recognition

import (
	"context"
	"time"

	"github.com/dragonzapeducation/subtitle-generator/internal/subtitle"
)

// JobInfo is the diagnostic metadata the recognition service reports for
// a job.
type JobInfo struct {
	Name            string
	ProgressPercent int32
	StartTime       time.Time
	LastUpdateTime  time.Time
	// URI is the storage location the job was submitted with, used to
	// clean up the staged audio once the job completes.
	URI string
}

// PollResult is the outcome of one non-blocking status check.
type PollResult struct {
	Done    bool
	Results []subtitle.Result
	Info    JobInfo
}

// Client submits staged audio to an asynchronous speech-recognition job
// and polls its status. A poll never blocks waiting for completion; the
// caller drives the loop.
type Client interface {
	Submit(ctx context.Context, audioURI string) (string, error)
	Poll(ctx context.Context, jobID string) (*PollResult, error)
}
