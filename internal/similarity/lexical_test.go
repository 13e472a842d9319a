package similarity

import (
	"reflect"
	"testing"
)

func TestTokenizeFiltersShortAndStopwords(t *testing.T) {
	got := Tokenize("The android runs through THAT dark city at 3am")
	want := []string{"android", "runs", "dark", "city"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTopTokensFrequencyThenFirstOccurrence(t *testing.T) {
	text := "replicant hunter city replicant city hunter replicant future"
	got := TopTokens(text, 3)
	want := []string{"replicant", "hunter", "city"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopTokens() = %v, want %v", got, want)
	}
}

func TestTopTokensTieBrokenByFirstOccurrence(t *testing.T) {
	got := TopTokens("omega alpha omega alpha zeta", 2)
	want := []string{"omega", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopTokens() = %v, want %v", got, want)
	}
}

func TestLexicalDeterministic(t *testing.T) {
	a := "A blade runner hunts rogue androids in a dystopian future"
	b := "Androids rebel against their creators in a dystopian megacity"
	first := Lexical(a, "", b, "")
	second := Lexical(a, "", b, "")
	if first != second {
		t.Errorf("Lexical not deterministic: %v vs %v", first, second)
	}
	if first <= 0 || first > 1 {
		t.Errorf("Lexical() = %v, want in (0, 1]", first)
	}
}

func TestLexicalEmptyInputs(t *testing.T) {
	if got := Lexical("", "", "anything here today", ""); got != 0 {
		t.Errorf("Lexical(empty) = %v, want 0", got)
	}
}

func TestLexicalTaglineBonus(t *testing.T) {
	text := "spies infiltrate enemy compound during wartime"
	without := Lexical(text, "", text, "")
	with := Lexical(text, "trust nobody tonight", text, "trust nobody tonight")
	if with <= without && without < 1 {
		t.Errorf("expected tagline bonus to raise score: with=%v without=%v", with, without)
	}
}

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		text string
		want Tone
	}{
		{"A dark dystopian tale of loss", ToneSerious},
		{"A hilarious romp through the suburbs", ToneLight},
		{"An explosive chase across three continents", ToneAction},
		{"A detective untangles a conspiracy", ToneMystery},
		{"People exist", ToneNeutral},
		// serious set wins over later sets when both match
		{"A gritty detective story", ToneSerious},
	}
	for _, tt := range tests {
		if got := ClassifyTone(tt.text); got != tt.want {
			t.Errorf("ClassifyTone(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestToneScore(t *testing.T) {
	tests := []struct {
		seed, cand Tone
		want       float64
	}{
		{ToneSerious, ToneSerious, 20},
		{ToneAction, ToneAction, 20},
		{ToneMystery, ToneMystery, 20},
		{ToneLight, ToneLight, 10},
		{ToneSerious, ToneMystery, 15},
		{ToneMystery, ToneSerious, 15},
		{ToneAction, ToneMystery, 15},
		{ToneSerious, ToneLight, 0},
		{ToneNeutral, ToneSerious, 0},
		{ToneNeutral, ToneNeutral, 0},
	}
	for _, tt := range tests {
		if got := ToneScore(tt.seed, tt.cand); got != tt.want {
			t.Errorf("ToneScore(%v, %v) = %v, want %v", tt.seed, tt.cand, got, tt.want)
		}
	}
}
