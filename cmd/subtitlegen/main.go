package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dragonzapeducation/subtitle-generator/internal/audio"
	"github.com/dragonzapeducation/subtitle-generator/internal/config"
	"github.com/dragonzapeducation/subtitle-generator/internal/generator"
	"github.com/dragonzapeducation/subtitle-generator/internal/logger"
	"github.com/dragonzapeducation/subtitle-generator/internal/recognition"
	"github.com/dragonzapeducation/subtitle-generator/internal/storage"
	"github.com/dragonzapeducation/subtitle-generator/internal/summarizer"
	"github.com/dragonzapeducation/subtitle-generator/internal/watcher"
	"github.com/dragonzapeducation/subtitle-generator/pkg/executor"
)

const usage = `Usage: subtitlegen [flags] <command> [args]

Commands:
  begin <video>        start a subtitle generation job, print the job id
  check <job-id>       poll a job once; prints the status, or the WebVTT
                       document when the job has completed
  run <video>          begin a job and poll it to completion, writing the
                       WebVTT next to the video (or to -o)
  watch                watch paths.input for new videos and generate a
                       .vtt in paths.output for each
  summarize            summarize generated .vtt files with Gemini

Flags:
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (falls back to SUBTITLEGEN_* environment variables)")
	output := flag.String("o", "", "output path for the run command")
	interval := flag.Duration("interval", 10*time.Second, "polling interval for run and watch")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	svc, err := buildService(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	switch cmd := flag.Arg(0); cmd {
	case "begin":
		err = cmdBegin(ctx, svc, flag.Arg(1))
	case "check":
		err = cmdCheck(ctx, svc, flag.Arg(1))
	case "run":
		err = cmdRun(ctx, svc, flag.Arg(1), *output, *interval)
	case "watch":
		err = cmdWatch(ctx, cfg, svc, log, *interval)
	case "summarize":
		err = summarizer.New(cfg.Summarizer.APIKeys, cfg.Summarizer.Model, log).
			SummarizeAll(ctx, cfg.Paths.Output, filepath.Join(cfg.Paths.Output, "summaries"))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the YAML file when it exists, otherwise builds the
// config from environment variables.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	return config.FromEnv()
}

func buildService(cfg *config.Config, log logger.Logger) (generator.Service, error) {
	store, err := storage.New(cfg.Google.Bucket, cfg.Google.AudioTmpDirectory, cfg.Google.CredentialsFile, log)
	if err != nil {
		return nil, err
	}

	recognizer, err := recognition.New(cfg.Google.ProjectID, cfg.Google.CredentialsFile, log)
	if err != nil {
		return nil, err
	}

	extractor := audio.New(cfg.FFmpeg.BinaryPath, executor.New(), log)

	return generator.New(cfg.Google.Bucket, extractor, store, recognizer, log), nil
}

func cmdBegin(ctx context.Context, svc generator.Service, videoPath string) error {
	if videoPath == "" {
		return fmt.Errorf("begin: missing video path")
	}

	jobID, err := svc.BeginGeneratingSubtitles(ctx, videoPath)
	if err != nil {
		return err
	}

	fmt.Println(jobID)
	return nil
}

func cmdCheck(ctx context.Context, svc generator.Service, jobID string) error {
	if jobID == "" {
		return fmt.Errorf("check: missing job id")
	}

	result, err := svc.CheckSubtitleGenerationOperation(ctx, jobID)
	if err != nil {
		return err
	}

	if result.Status == generator.StatusInProgress {
		fmt.Printf("in_progress (%d%%)\n", result.Info.ProgressPercent)
		return nil
	}

	fmt.Print(result.Subtitles)
	return nil
}

// cmdRun drives the begin/check cycle for one video. The polling
// interval lives here, in the caller; the service itself never sleeps.
func cmdRun(ctx context.Context, svc generator.Service, videoPath, output string, interval time.Duration) error {
	if videoPath == "" {
		return fmt.Errorf("run: missing video path")
	}
	if output == "" {
		output = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".vtt"
	}

	subtitles, err := generateAndWait(ctx, svc, videoPath, interval)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(subtitles), 0644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}

	fmt.Println(output)
	return nil
}

func cmdWatch(ctx context.Context, cfg *config.Config, svc generator.Service, log logger.Logger, interval time.Duration) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output} {
		if dir == "" {
			return fmt.Errorf("watch: paths.input and paths.output must be configured")
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	handler := func(ctx context.Context, videoPath string) error {
		subtitles, err := generateAndWait(ctx, svc, videoPath, interval)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath)) + ".vtt"
		outPath := filepath.Join(cfg.Paths.Output, name)
		if err := os.WriteFile(outPath, []byte(subtitles), 0644); err != nil {
			return fmt.Errorf("write subtitles: %w", err)
		}

		log.Info(ctx, "Subtitles written: %s", outPath)
		return nil
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Watching %s, writing subtitles to %s. Press Ctrl+C to stop.", cfg.Paths.Input, cfg.Paths.Output)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
		cancel()
		return nil
	case err := <-errChan:
		return err
	}
}

// generateAndWait begins a job and polls it until completion. One check
// per tick; the job carries all the state between ticks.
func generateAndWait(ctx context.Context, svc generator.Service, videoPath string, interval time.Duration) (string, error) {
	jobID, err := svc.BeginGeneratingSubtitles(ctx, videoPath)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := svc.CheckSubtitleGenerationOperation(ctx, jobID)
		if err != nil {
			return "", err
		}
		if result.Status == generator.StatusSuccess {
			return result.Subtitles, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
