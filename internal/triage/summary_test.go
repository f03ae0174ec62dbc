package triage

import (
	"slices"
	"testing"
)

func TestSummarize_Empty(t *testing.T) {
	summary, keyPoints := Summarize("")
	if summary != NoSummary {
		t.Errorf("summary = %q, want %q", summary, NoSummary)
	}
	if keyPoints == nil || len(keyPoints) != 0 {
		t.Errorf("keyPoints = %#v, want empty non-nil slice", keyPoints)
	}
}

func TestSummarize_SplitsSummaryAndKeyPoints(t *testing.T) {
	body := "Short. This is a qualifying sentence over twenty chars. " +
		"Another qualifying one here now. Third one goes here too. " +
		"Fourth sentence present. Fifth sentence also present."

	summary, keyPoints := Summarize(body)

	wantSummary := " This is a qualifying sentence over twenty chars.  Another qualifying one here now."
	if summary != wantSummary {
		t.Errorf("summary = %q, want %q", summary, wantSummary)
	}
	wantPoints := []string{
		"Third one goes here too",
		"Fourth sentence present",
		"Fifth sentence also present",
	}
	if !slices.Equal(keyPoints, wantPoints) {
		t.Errorf("keyPoints = %q, want %q", keyPoints, wantPoints)
	}
}

func TestSummarize_IndependentThresholds(t *testing.T) {
	// Only one sentence clears 20 characters, but all five clear 10.
	body := "Twelve chars!! Another short. Thirteen chars? " +
		"This sentence is comfortably long enough. Eleven chars"

	summary, keyPoints := Summarize(body)

	if want := " This sentence is comfortably long enough."; summary != want {
		t.Errorf("summary = %q, want %q", summary, want)
	}
	want := []string{"Thirteen chars", "This sentence is comfortably long enough", "Eleven chars"}
	if !slices.Equal(keyPoints, want) {
		t.Errorf("keyPoints = %q, want %q", keyPoints, want)
	}
}

func TestSummarize_NoQualifyingSentences(t *testing.T) {
	summary, keyPoints := Summarize("Hi. Thanks! Bye?")
	if summary != NoSummary {
		t.Errorf("summary = %q, want placeholder", summary)
	}
	if len(keyPoints) != 0 {
		t.Errorf("keyPoints = %q, want none", keyPoints)
	}
}

func TestSummarize_KeyPointsCapped(t *testing.T) {
	body := "Sentence number one. Sentence number two. Sentence number three. " +
		"Sentence number four. Sentence number five. Sentence number six. Sentence number seven."
	_, keyPoints := Summarize(body)
	if len(keyPoints) != 3 {
		t.Fatalf("len(keyPoints) = %d, want 3", len(keyPoints))
	}
	if keyPoints[0] != "Sentence number three" || keyPoints[2] != "Sentence number five" {
		t.Errorf("keyPoints = %q", keyPoints)
	}
}

func TestSummarize_CountsCharacters(t *testing.T) {
	// Each sentence is at most 14 characters, though most exceed 20 bytes.
	body := "Привет, друг. Привет, мир!. Сообщение ок. Встреча завтра. Отчёт готов."
	summary, keyPoints := Summarize(body)
	if summary != NoSummary {
		t.Errorf("summary = %q, want placeholder", summary)
	}
	want := []string{"Сообщение ок", "Встреча завтра", "Отчёт готов"}
	if !slices.Equal(keyPoints, want) {
		t.Errorf("keyPoints = %q, want %q", keyPoints, want)
	}

	summary, _ = Summarize("Встреча перенесена на завтрашнее утро. Ок.")
	if want := "Встреча перенесена на завтрашнее утро."; summary != want {
		t.Errorf("summary = %q, want %q", summary, want)
	}
}
