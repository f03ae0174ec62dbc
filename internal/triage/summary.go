package triage

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NoSummary is used when no sentence in the body qualifies.
const NoSummary = "No summary available for this email."

const (
	summarySentences  = 2
	summaryMinLength  = 20
	keyPointMinLength = 10
	keyPointStart     = 2
	keyPointEnd       = 5
	summarySeparator  = ". "
	summaryTerminator = "."
)

var sentenceDelimiters = regexp.MustCompile(`[.!?]+`)

// Summarize derives an extractive summary and up to three key points from a
// message body.
//
// The summary joins the first two sentences longer than 20 characters. Key
// points are the third through fifth sentences longer than 10 characters.
// The two thresholds filter the same split independently.
func Summarize(body string) (string, []string) {
	sentences := sentenceDelimiters.Split(body, -1)

	var long []string
	for _, s := range sentences {
		if trimmedLen(s) > summaryMinLength {
			long = append(long, s)
			if len(long) == summarySentences {
				break
			}
		}
	}
	summary := NoSummary
	if len(long) > 0 {
		summary = strings.Join(long, summarySeparator) + summaryTerminator
	}

	var candidates []string
	for _, s := range sentences {
		if trimmedLen(s) > keyPointMinLength {
			candidates = append(candidates, s)
		}
	}
	keyPoints := []string{}
	for i := keyPointStart; i < keyPointEnd && i < len(candidates); i++ {
		if point := strings.TrimSpace(candidates[i]); point != "" {
			keyPoints = append(keyPoints, point)
		}
	}
	return summary, keyPoints
}

// trimmedLen counts the characters of s without surrounding whitespace.
func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
