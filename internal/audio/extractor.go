package audio

import (
	"context"
	"fmt"
)

// Extract converts the audio track of a video into 16-bit signed
// little-endian PCM, 44100 Hz, mono, written to outputPath. The paths go
// to ffmpeg as argument vector entries, never through a shell.
func (e *implExtractor) Extract(ctx context.Context, inputPath, outputPath string) error {
	e.logger.Info(ctx, "Extracting audio: %s -> %s", inputPath, outputPath)

	// -i: input video
	// -vn: drop the video stream
	// -acodec pcm_s16le: 16-bit signed little-endian PCM
	// -ar 44100: 44.1 kHz sample rate
	// -ac 1: mono
	// -y: the output path is a temp file we own, overwrite it
	args := []string{
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "44100",
		"-ac", "1",
		"-y",
		outputPath,
	}

	if _, err := e.executor.Execute(ctx, e.binaryPath, args...); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}

	e.logger.Debug(ctx, "Audio extracted: %s", outputPath)
	return nil
}
