package recognition

import (
	"testing"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestConvertResults(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{
					Words: []*speechpb.WordInfo{
						{Word: "hello", StartTime: durationpb.New(0), EndTime: durationpb.New(900 * time.Millisecond)},
						{Word: "world", StartTime: durationpb.New(time.Second), EndTime: durationpb.New(1900 * time.Millisecond)},
					},
				},
				// Lower-ranked alternative must be ignored.
				{
					Words: []*speechpb.WordInfo{
						{Word: "yellow", StartTime: durationpb.New(0), EndTime: durationpb.New(time.Second)},
					},
				},
			},
		},
		{},
	}

	converted := convertResults(results)

	if len(converted) != 2 {
		t.Fatalf("convertResults() produced %d results, want 2", len(converted))
	}

	words := converted[0].Words
	if len(words) != 2 {
		t.Fatalf("result 0 has %d words, want 2", len(words))
	}
	if words[0].Text != "hello" || words[0].Start != 0 || words[0].End != 900*time.Millisecond {
		t.Errorf("word 0 = %+v", words[0])
	}
	if words[1].Text != "world" || words[1].Start != time.Second {
		t.Errorf("word 1 = %+v", words[1])
	}

	if len(converted[1].Words) != 0 {
		t.Errorf("result without alternatives should convert to zero words, got %d", len(converted[1].Words))
	}
}

func TestConvertResultsNilTimes(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Words: []*speechpb.WordInfo{{Word: "hi"}}},
			},
		},
	}

	converted := convertResults(results)
	if len(converted) != 1 || len(converted[0].Words) != 1 {
		t.Fatalf("convertResults() = %+v", converted)
	}
	if w := converted[0].Words[0]; w.Start != 0 || w.End != 0 {
		t.Errorf("missing offsets should convert to zero durations, got %+v", w)
	}
}
