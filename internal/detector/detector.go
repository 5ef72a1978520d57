// Package detector classifies statement text as one of the two supported
// layouts by scoring indicator patterns over a sample of the first pages.
package detector

import (
	"regexp"

	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/models"
	"spendsense/statement-csv/internal/pdfextract"
)

const (
	// SamplePages is how many leading pages contribute to the sample.
	SamplePages = 3
	// SampleLimit caps the sample size to bound detection cost.
	SampleLimit = 5000
)

// The indicator sets are the ported detection grammar; each pattern's exact
// matching semantics are a contract with the externally fixed statement
// formats.
var rbcIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)JAN \d{2} JAN \d{2}`),
	regexp.MustCompile(`(?i)FEB \d{2} FEB \d{2}`),
	regexp.MustCompile(`(?i)Foreign Currency`),
	regexp.MustCompile(`(?i)TOTAL ACCOUNT BALANCE`),
	regexp.MustCompile(`(?i)Exchange rate\s*-\s*[\d.]+`),
}

var originalIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)JASON DIMAND`),
	regexp.MustCompile(`(?i)GRIGORII VOLK`),
	regexp.MustCompile(`(?i)\d{1,2}\s+[A-Za-z]{3}\.?\s+\d{4}`),
	regexp.MustCompile(`(?i)Cardmember`),
	regexp.MustCompile(`(?i)\bFS\b`),
}

// Detect scores the sample against both indicator sets and returns the
// classification. A set qualifies with two or more matching indicators; when
// both qualify the strictly higher score wins and an exact tie classifies as
// FormatUnknown, leaving the choice to the dispatcher's ordered fallback.
func Detect(sample string) models.FormatType {
	rbcScore := score(rbcIndicators, sample)
	originalScore := score(originalIndicators, sample)

	if rbcScore < 2 && originalScore < 2 {
		return models.FormatUnknown
	}
	switch {
	case rbcScore > originalScore:
		return models.FormatRbc
	case originalScore > rbcScore:
		return models.FormatOriginal
	default:
		return models.FormatUnknown
	}
}

// DetectDocument samples up to SamplePages pages of the document and runs
// Detect. Extraction failures degrade to FormatUnknown, never an error.
func DetectDocument(doc pdfextract.Document, log logging.Logger) models.FormatType {
	var sample string
	pages := doc.PageCount()
	if pages > SamplePages {
		pages = SamplePages
	}
	for page := 0; page < pages; page++ {
		text, err := doc.ExtractText(page)
		if err != nil {
			if log != nil {
				log.WithError(err).Debug("Skipping unreadable page during detection",
					logging.Field{Key: logging.FieldPage, Value: page})
			}
			continue
		}
		sample += text + "\n"
		if len(sample) > SampleLimit {
			break
		}
	}
	return Detect(sample)
}

func score(indicators []*regexp.Regexp, sample string) int {
	n := 0
	for _, re := range indicators {
		if re.MatchString(sample) {
			n++
		}
	}
	return n
}
