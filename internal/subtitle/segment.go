package subtitle

import (
	"strings"
	"time"
)

// defaultWordsPerCue is how many words go into one cue before a new
// cue is started. Tuned for readability, not derived from content.
const defaultWordsPerCue = 15

// Word is a single recognized word with its time offsets.
type Word struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// Result is one recognition result: the ordered word sequence of its
// best alternative.
type Result struct {
	Words []Word
}

// Cue is one subtitle entry.
type Cue struct {
	Seq   int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Track is an ordered sequence of cues.
type Track struct {
	Cues []Cue
}

// Options controls segmentation.
type Options struct {
	// MaxWordsPerCue caps the number of words per cue. Zero means the
	// default of 15.
	MaxWordsPerCue int
	// BreakOnSentenceEnd additionally closes a cue early when a word
	// ends with terminal punctuation. Off by default; Segment never
	// uses it.
	BreakOnSentenceEnd bool
}

// Segment groups the words of each result into cues of at most 15 words.
// Sequence numbers are a single counter shared across all results,
// starting at 1. A result with no words contributes no cues.
func Segment(results []Result) Track {
	return SegmentWithOptions(results, Options{})
}

// SegmentWithOptions is Segment with an explicit cue-size cap and the
// optional sentence-aware break mode.
func SegmentWithOptions(results []Result, opts Options) Track {
	maxWords := opts.MaxWordsPerCue
	if maxWords <= 0 {
		maxWords = defaultWordsPerCue
	}

	var track Track
	seq := 1

	for _, result := range results {
		start := 0
		for start < len(result.Words) {
			end := start + maxWords
			if end > len(result.Words) {
				end = len(result.Words)
			}

			if opts.BreakOnSentenceEnd {
				for i := start; i < end-1; i++ {
					if endsSentence(result.Words[i].Text) {
						end = i + 1
						break
					}
				}
			}

			chunk := result.Words[start:end]
			track.Cues = append(track.Cues, Cue{
				Seq:   seq,
				Start: chunk[0].Start,
				End:   chunk[len(chunk)-1].End,
				Text:  joinWords(chunk),
			})

			seq++
			start = end
		}
	}

	return track
}

func joinWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// endsSentence reports whether a word carries terminal punctuation.
// Only consulted in the sentence-aware mode.
func endsSentence(word string) bool {
	switch {
	case strings.HasSuffix(word, "."),
		strings.HasSuffix(word, "?"),
		strings.HasSuffix(word, "!"):
		return true
	}
	return false
}
