package recognition

import (
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/dragonzapeducation/subtitle-generator/internal/subtitle"
)

// convertResults maps the service's word-level output onto the
// segmenter's types, keeping only each result's best alternative.
func convertResults(results []*speechpb.SpeechRecognitionResult) []subtitle.Result {
	converted := make([]subtitle.Result, 0, len(results))

	for _, result := range results {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			converted = append(converted, subtitle.Result{})
			continue
		}

		best := alternatives[0]
		words := make([]subtitle.Word, 0, len(best.GetWords()))
		for _, w := range best.GetWords() {
			words = append(words, subtitle.Word{
				Text:  w.GetWord(),
				Start: w.GetStartTime().AsDuration(),
				End:   w.GetEndTime().AsDuration(),
			})
		}

		converted = append(converted, subtitle.Result{Words: words})
	}

	return converted
}
