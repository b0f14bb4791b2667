package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const webVTTHeader = "WEBVTT\n\n"

// WebVTT renders the track as a WebVTT document: the fixed header
// followed by one "{seq}\n{start} --> {end}\n{text}\n\n" block per cue.
func (t Track) WebVTT() string {
	var b strings.Builder
	b.WriteString(webVTTHeader)

	for _, cue := range t.Cues {
		b.WriteString(strconv.Itoa(cue.Seq))
		b.WriteString("\n")
		b.WriteString(FormatTimecode(cue.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimecode(cue.End))
		b.WriteString("\n")
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}

	return b.String()
}

// ParseWebVTT reads a WebVTT document produced by Track.WebVTT back into
// a Track.
func ParseWebVTT(doc string) (Track, error) {
	var track Track

	body, ok := strings.CutPrefix(doc, "WEBVTT")
	if !ok {
		return track, fmt.Errorf("missing WEBVTT header")
	}

	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.SplitN(block, "\n", 3)
		if len(lines) < 3 {
			return track, fmt.Errorf("malformed cue block: %q", block)
		}

		seq, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return track, fmt.Errorf("cue sequence number: %w", err)
		}

		start, end, err := parseCueTiming(lines[1])
		if err != nil {
			return track, err
		}

		track.Cues = append(track.Cues, Cue{
			Seq:   seq,
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(lines[2]),
		})
	}

	return track, nil
}

func parseCueTiming(line string) (start, end time.Duration, err error) {
	before, after, ok := strings.Cut(line, " --> ")
	if !ok {
		return 0, 0, fmt.Errorf("malformed cue timing: %q", line)
	}

	if start, err = parseTimecode(strings.TrimSpace(before)); err != nil {
		return 0, 0, err
	}
	if end, err = parseTimecode(strings.TrimSpace(after)); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimecode(s string) (time.Duration, error) {
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(s, "%02d:%02d:%02d.%03d", &h, &m, &sec, &ms); err != nil {
		return 0, fmt.Errorf("malformed timecode %q: %w", s, err)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
