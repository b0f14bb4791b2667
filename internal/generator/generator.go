package generator

import (
	"context"
	"os"

	"github.com/dragonzapeducation/subtitle-generator/internal/storage"
	"github.com/dragonzapeducation/subtitle-generator/internal/subtitle"
)

// BeginGeneratingSubtitles extracts the video's audio to a temp WAV,
// stages it in object storage and submits the recognition job, all in
// one synchronous call. The returned job id is the only state the caller
// needs to keep. A failure at any step aborts the call; no job id is
// ever handed out for a partially started job.
func (s *implService) BeginGeneratingSubtitles(ctx context.Context, videoPath string) (string, error) {
	tmp, err := os.CreateTemp("", "audio_*.wav")
	if err != nil {
		return "", failf(err, "create temporary audio file")
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := s.extractor.Extract(ctx, videoPath, tmpPath); err != nil {
		s.removeTempFile(ctx, tmpPath)
		return "", failf(err, "extract audio from %s (is ffmpeg installed?)", videoPath)
	}
	defer s.removeTempFile(ctx, tmpPath)

	staged, err := s.storage.Stage(ctx, tmpPath)
	if err != nil {
		return "", failf(err, "stage audio in storage")
	}

	jobID, err := s.recognizer.Submit(ctx, staged.URI)
	if err != nil {
		// Best-effort cleanup so a failed submission does not strand
		// the uploaded object.
		if derr := s.storage.Delete(ctx, staged.Object); derr != nil {
			s.logger.Warn(ctx, "Failed to clean up staged audio %s: %v", staged.Object, derr)
		}
		return "", failf(err, "submit recognition job for %s", staged.URI)
	}

	s.logger.Info(ctx, "Subtitle generation started for %s: job %s", videoPath, jobID)
	return jobID, nil
}

// CheckSubtitleGenerationOperation polls the job once. While the job is
// pending it returns in_progress with diagnostic info and touches
// nothing, so checking is idempotent. Once the job completes it builds
// the WebVTT document, deletes the staged audio named by the job
// metadata and returns the subtitles. A job the service reports as
// failed, or one that completes without results, is a terminal error;
// the caller must stop polling it.
func (s *implService) CheckSubtitleGenerationOperation(ctx context.Context, jobID string) (*CheckResult, error) {
	poll, err := s.recognizer.Poll(ctx, jobID)
	if err != nil {
		return nil, failf(err, "check recognition job %s", jobID)
	}

	if !poll.Done {
		return &CheckResult{Status: StatusInProgress, Info: poll.Info}, nil
	}

	if len(poll.Results) == 0 {
		return nil, failf(nil, "no results for completed recognition job %s", jobID)
	}

	document := subtitle.Segment(poll.Results).WebVTT()

	if poll.Info.URI != "" {
		object := storage.RelativeObjectPath(s.bucket, poll.Info.URI)
		if err := s.storage.Delete(ctx, object); err != nil {
			return nil, failf(err, "delete staged audio %s", object)
		}
	}

	s.logger.Info(ctx, "Subtitle generation completed: job %s", jobID)
	return &CheckResult{
		Status:    StatusSuccess,
		Subtitles: document,
		Info:      poll.Info,
	}, nil
}

func (s *implService) removeTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to remove temp audio file %s: %v", path, err)
	}
}
