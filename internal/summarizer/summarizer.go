package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/dragonzapeducation/subtitle-generator/internal/subtitle"
)

const summaryPrompt = `You are an expert at analyzing educational video content. Based on the subtitles below, write a DETAILED summary.

Requirements:
- Start with a one-sentence overview of the video's topic
- List ALL main steps / topics in their order of appearance
- Explain each step in detail, including any important notes, tips or warnings
- Keep technical terms as they appear in the subtitles
- Use markdown: headings, bullet points, bold for key terms
- End with an "Important notes" section if anything needs emphasis

Video subtitles:
---
%s
---`

// SummarizeAll reads every .vtt file in vttDir, writes a markdown
// summary and a plain-transcript docx for each into destDir. Files that
// already have a summary are skipped.
func (s *implSummarizer) SummarizeAll(ctx context.Context, vttDir, destDir string) error {
	vttFiles, err := s.discoverVTTFiles(vttDir)
	if err != nil {
		return fmt.Errorf("discover VTT files: %w", err)
	}

	if len(vttFiles) == 0 {
		s.logger.Info(ctx, "No VTT files found in %s", vttDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d VTT files to summarize", len(vttFiles))

	successCount := 0
	failCount := 0

	for i, vttPath := range vttFiles {
		videoName := strings.TrimSuffix(filepath.Base(vttPath), ".vtt")
		mdPath := filepath.Join(destDir, videoName+".md")

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Debug(ctx, "Skipping %s, summary exists", videoName)
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(vttFiles), videoName)

		content, err := os.ReadFile(vttPath)
		if err != nil {
			s.logger.Error(ctx, "Failed to read %s: %v", vttPath, err)
			failCount++
			continue
		}

		transcript, err := transcriptText(string(content))
		if err != nil {
			s.logger.Error(ctx, "Failed to parse %s: %v", vttPath, err)
			failCount++
			continue
		}

		summary, err := s.callGemini(ctx, transcript)
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", videoName, err)
			failCount++
			continue
		}

		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			videoName,
			time.Now().Format("2006-01-02 15:04"),
			strings.TrimSpace(summary),
		)

		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			s.logger.Error(ctx, "Failed to write %s: %v", mdPath, err)
			failCount++
			continue
		}

		docxPath := filepath.Join(destDir, videoName+".docx")
		if err := transcriptToDocx(videoName, transcript, docxPath); err != nil {
			s.logger.Warn(ctx, "Failed to write transcript docx %s: %v", docxPath, err)
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", videoName, mdPath)
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

// transcriptText strips cue numbering and timing from a WebVTT document,
// keeping only the spoken text, one cue per line.
func transcriptText(vtt string) (string, error) {
	track, err := subtitle.ParseWebVTT(vtt)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(track.Cues))
	for _, cue := range track.Cues {
		if cue.Text != "" {
			lines = append(lines, cue.Text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// callGemini sends the transcript to Gemini and returns the summary
// text. Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	prompt := fmt.Sprintf(summaryPrompt, transcript)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

func (s *implSummarizer) discoverVTTFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".vtt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
