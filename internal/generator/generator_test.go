package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dragonzapeducation/subtitle-generator/internal/logger"
	"github.com/dragonzapeducation/subtitle-generator/internal/recognition"
	"github.com/dragonzapeducation/subtitle-generator/internal/storage"
	"github.com/dragonzapeducation/subtitle-generator/internal/subtitle"
)

type fakeExtractor struct {
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, inputPath, outputPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("RIFF"), 0644)
}

type fakeGateway struct {
	stageErr  error
	deleteErr error
	staged    []string
	deleted   []string
}

func (f *fakeGateway) Stage(ctx context.Context, localPath string) (storage.Staged, error) {
	if f.stageErr != nil {
		return storage.Staged{}, f.stageErr
	}
	object := fmt.Sprintf("audio_tmp/audio_%d.wav", len(f.staged)+1)
	f.staged = append(f.staged, object)
	return storage.Staged{URI: "gs://my-bucket/" + object, Object: object}, nil
}

func (f *fakeGateway) Delete(ctx context.Context, objectPath string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, objectPath)
	return nil
}

type pollStep struct {
	result *recognition.PollResult
	err    error
}

type fakeRecognizer struct {
	submitErr    error
	submittedURI string
	polls        []pollStep
	pollCount    int
}

func (f *fakeRecognizer) Submit(ctx context.Context, audioURI string) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submittedURI = audioURI
	return "op-123", nil
}

func (f *fakeRecognizer) Poll(ctx context.Context, jobID string) (*recognition.PollResult, error) {
	if f.pollCount >= len(f.polls) {
		return nil, fmt.Errorf("unexpected poll %d of job %s", f.pollCount+1, jobID)
	}
	step := f.polls[f.pollCount]
	f.pollCount++
	return step.result, step.err
}

func newTestService(ext *fakeExtractor, store *fakeGateway, rec *fakeRecognizer) Service {
	return New("my-bucket", ext, store, rec, logger.New("error"))
}

func fiveWords() []subtitle.Result {
	words := make([]subtitle.Word, 5)
	for i := range words {
		start := time.Duration(i) * time.Second
		words[i] = subtitle.Word{Text: fmt.Sprintf("w%d", i+1), Start: start, End: start + 900*time.Millisecond}
	}
	return []subtitle.Result{{Words: words}}
}

func TestBeginGeneratingSubtitles(t *testing.T) {
	ext := &fakeExtractor{}
	store := &fakeGateway{}
	rec := &fakeRecognizer{}
	svc := newTestService(ext, store, rec)

	jobID, err := svc.BeginGeneratingSubtitles(context.Background(), "lecture.mp4")
	if err != nil {
		t.Fatalf("BeginGeneratingSubtitles() error = %v", err)
	}

	if jobID != "op-123" {
		t.Errorf("jobID = %q, want %q", jobID, "op-123")
	}
	if len(store.staged) != 1 {
		t.Errorf("staged %d objects, want 1", len(store.staged))
	}
	if rec.submittedURI != "gs://my-bucket/"+store.staged[0] {
		t.Errorf("submitted URI = %q, want staged object URI", rec.submittedURI)
	}
	if len(store.deleted) != 0 {
		t.Errorf("deleted %v on the happy path, want no deletes", store.deleted)
	}
}

func TestBeginExtractionFailure(t *testing.T) {
	ext := &fakeExtractor{err: fmt.Errorf("exit status 1")}
	store := &fakeGateway{}
	svc := newTestService(ext, store, &fakeRecognizer{})

	_, err := svc.BeginGeneratingSubtitles(context.Background(), "lecture.mp4")
	if err == nil {
		t.Fatal("BeginGeneratingSubtitles() should fail when extraction fails")
	}

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Errorf("error type = %T, want *generator.Error", err)
	}
	if len(store.staged) != 0 {
		t.Errorf("staged %d objects after failed extraction, want 0", len(store.staged))
	}
}

func TestBeginStageCollision(t *testing.T) {
	store := &fakeGateway{stageErr: fmt.Errorf("target object already exists in storage")}
	rec := &fakeRecognizer{}
	svc := newTestService(&fakeExtractor{}, store, rec)

	_, err := svc.BeginGeneratingSubtitles(context.Background(), "lecture.mp4")
	if err == nil {
		t.Fatal("BeginGeneratingSubtitles() should fail on a storage collision")
	}
	if rec.submittedURI != "" {
		t.Error("nothing should be submitted after a failed upload")
	}
}

func TestBeginSubmitFailureCleansUpStagedAudio(t *testing.T) {
	store := &fakeGateway{}
	rec := &fakeRecognizer{submitErr: fmt.Errorf("permission denied")}
	svc := newTestService(&fakeExtractor{}, store, rec)

	_, err := svc.BeginGeneratingSubtitles(context.Background(), "lecture.mp4")
	if err == nil {
		t.Fatal("BeginGeneratingSubtitles() should fail when submission fails")
	}

	if len(store.deleted) != 1 || store.deleted[0] != store.staged[0] {
		t.Errorf("deleted = %v, want exactly the staged object %v", store.deleted, store.staged)
	}
}

func TestCheckPendingIsIdempotent(t *testing.T) {
	pending := pollStep{result: &recognition.PollResult{
		Info: recognition.JobInfo{Name: "op-123", ProgressPercent: 40},
	}}
	store := &fakeGateway{}
	rec := &fakeRecognizer{polls: []pollStep{pending, pending}}
	svc := newTestService(&fakeExtractor{}, store, rec)

	for i := 0; i < 2; i++ {
		result, err := svc.CheckSubtitleGenerationOperation(context.Background(), "op-123")
		if err != nil {
			t.Fatalf("check %d error = %v", i+1, err)
		}
		if result.Status != StatusInProgress {
			t.Errorf("check %d status = %q, want %q", i+1, result.Status, StatusInProgress)
		}
		if result.Subtitles != "" {
			t.Errorf("check %d returned subtitles while pending", i+1)
		}
	}

	if len(store.deleted) != 0 {
		t.Errorf("deleted %v while pending, want no deletes", store.deleted)
	}
}

func TestCheckCompleted(t *testing.T) {
	completed := pollStep{result: &recognition.PollResult{
		Done:    true,
		Results: fiveWords(),
		Info: recognition.JobInfo{
			Name:            "op-123",
			ProgressPercent: 100,
			URI:             "gs://my-bucket/audio_tmp/audio_1.wav",
		},
	}}
	store := &fakeGateway{}
	rec := &fakeRecognizer{polls: []pollStep{completed}}
	svc := newTestService(&fakeExtractor{}, store, rec)

	result, err := svc.CheckSubtitleGenerationOperation(context.Background(), "op-123")
	if err != nil {
		t.Fatalf("CheckSubtitleGenerationOperation() error = %v", err)
	}

	if result.Status != StatusSuccess {
		t.Errorf("status = %q, want %q", result.Status, StatusSuccess)
	}

	track, err := subtitle.ParseWebVTT(result.Subtitles)
	if err != nil {
		t.Fatalf("returned subtitles do not parse: %v", err)
	}
	if len(track.Cues) != 1 {
		t.Errorf("subtitles contain %d cues for 5 words, want 1", len(track.Cues))
	}
	if track.Cues[0].Text != "w1 w2 w3 w4 w5" {
		t.Errorf("cue text = %q", track.Cues[0].Text)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "audio_tmp/audio_1.wav" {
		t.Errorf("deleted = %v, want exactly [audio_tmp/audio_1.wav]", store.deleted)
	}
}

func TestCheckCompletedWithoutResults(t *testing.T) {
	completed := pollStep{result: &recognition.PollResult{Done: true}}
	rec := &fakeRecognizer{polls: []pollStep{completed}}
	svc := newTestService(&fakeExtractor{}, &fakeGateway{}, rec)

	_, err := svc.CheckSubtitleGenerationOperation(context.Background(), "op-123")
	if err == nil {
		t.Fatal("check should fail when a completed job has no results")
	}
	if !strings.Contains(err.Error(), "subtitle generation failed") {
		t.Errorf("error = %q, want the boundary error kind", err)
	}
}

func TestCheckJobFailure(t *testing.T) {
	failed := pollStep{err: fmt.Errorf("recognition job op-123 failed: audio too short")}
	rec := &fakeRecognizer{polls: []pollStep{failed}}
	svc := newTestService(&fakeExtractor{}, &fakeGateway{}, rec)

	_, err := svc.CheckSubtitleGenerationOperation(context.Background(), "op-123")
	if err == nil {
		t.Fatal("check should surface a failed recognition job as an error")
	}

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Errorf("error type = %T, want *generator.Error", err)
	}
}

func TestBeginThenPollToCompletion(t *testing.T) {
	ext := &fakeExtractor{}
	store := &fakeGateway{}
	rec := &fakeRecognizer{}
	svc := newTestService(ext, store, rec)

	jobID, err := svc.BeginGeneratingSubtitles(context.Background(), "silent-10s.mp4")
	if err != nil {
		t.Fatalf("BeginGeneratingSubtitles() error = %v", err)
	}

	rec.polls = []pollStep{
		{result: &recognition.PollResult{Info: recognition.JobInfo{Name: jobID, ProgressPercent: 10}}},
		{result: &recognition.PollResult{
			Done:    true,
			Results: fiveWords(),
			Info:    recognition.JobInfo{Name: jobID, ProgressPercent: 100, URI: rec.submittedURI},
		}},
	}

	first, err := svc.CheckSubtitleGenerationOperation(context.Background(), jobID)
	if err != nil {
		t.Fatalf("first check error = %v", err)
	}
	if first.Status != StatusInProgress {
		t.Fatalf("first check status = %q, want %q", first.Status, StatusInProgress)
	}

	second, err := svc.CheckSubtitleGenerationOperation(context.Background(), jobID)
	if err != nil {
		t.Fatalf("second check error = %v", err)
	}
	if second.Status != StatusSuccess {
		t.Fatalf("second check status = %q, want %q", second.Status, StatusSuccess)
	}

	track, err := subtitle.ParseWebVTT(second.Subtitles)
	if err != nil {
		t.Fatalf("returned subtitles do not parse: %v", err)
	}
	if len(track.Cues) != 1 {
		t.Errorf("subtitles contain %d cues, want 1", len(track.Cues))
	}
	if len(store.deleted) != 1 || store.deleted[0] != store.staged[0] {
		t.Errorf("deleted = %v, want exactly the staged object %v", store.deleted, store.staged)
	}
}
