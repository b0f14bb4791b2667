package summarizer

import (
	"strings"

	"github.com/gomutex/godocx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
	titleSz  = 16
)

// transcriptToDocx writes the plain transcript as a styled docx, one
// paragraph per cue line, dropping consecutive duplicates.
func transcriptToDocx(title, transcript, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(titleSz).Color("000000").Bold(true)
	doc.AddParagraph("")

	previous := ""
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == previous {
			continue
		}
		previous = line

		p := doc.AddParagraph("")
		p.AddText(line).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}
