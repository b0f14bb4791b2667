package audio

import "context"

// Extractor demuxes a video's audio track into a local PCM WAV file.
type Extractor interface {
	Extract(ctx context.Context, inputPath, outputPath string) error
}
