package summarizer

import "context"

// Summarizer reads generated WebVTT files and produces markdown
// summaries plus plain-transcript docx documents.
type Summarizer interface {
	SummarizeAll(ctx context.Context, vttDir, destDir string) error
}
