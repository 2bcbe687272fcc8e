package textnorm

import "testing"

func TestFold(t *testing.T) {
	cases := map[string]string{
		"école":    "ECOLE",
		"Inzébi":   "INZEBI",
		"ça va":    "CA VA",
		"LOLA":     "LOLA",
		"Mindako!": "MINDAKO!",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFoldRune(t *testing.T) {
	for _, tc := range []struct {
		in   rune
		want rune
	}{{'é', 'E'}, {'Ç', 'C'}, {'a', 'A'}, {'-', '-'}, {' ', ' '}} {
		if got := FoldRune(tc.in); got != tc.want {
			t.Fatalf("FoldRune(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsGuessable(t *testing.T) {
	for _, r := range []rune{'a', 'Z', 'è', 'Û'} {
		if !IsGuessable(r) {
			t.Fatalf("%q should be guessable", r)
		}
	}
	for _, r := range []rune{' ', '\'', '-', '!', '7'} {
		if IsGuessable(r) {
			t.Fatalf("%q should not be guessable", r)
		}
	}
}

func TestFoldLower(t *testing.T) {
	if got := FoldLower("Prête"); got != "prete" {
		t.Fatalf("FoldLower = %q", got)
	}
}
