package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	lex, err := Load("")
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if lex.Len() == 0 {
		t.Fatalf("expected embedded entries")
	}
	e, err := lex.ByID("5")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if e.Term != "Lola" || e.Translation != "Parler" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if !e.IsVerb || e.ImperativeForm != "Lola!" {
		t.Fatalf("optional fields not decoded: %+v", e)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.json")
	doc := `[{"id":"a","term":"x","translation":"y","partOfSpeech":"nom"},{"id":"b","term":"","translation":"z"}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lex, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	total, playable := lex.Stats()
	if total != 2 || playable != 1 {
		t.Fatalf("stats = (%d,%d), want (2,1)", total, playable)
	}
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte(`[{"id":"1","term":"a","translation":"b"},{"id":"1","term":"c","translation":"d"}]`))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestParseRejectsEmptyID(t *testing.T) {
	_, err := Parse([]byte(`[{"id":"  ","term":"a","translation":"b"}]`))
	if !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestAllReturnsCopyInOrder(t *testing.T) {
	lex := MustNew([]Entry{{ID: "1", Term: "a"}, {ID: "2", Term: "b"}, {ID: "3", Term: "c"}})
	all := lex.All()
	all[0].Term = "mutated"
	if lex.At(0).Term != "a" {
		t.Fatalf("All must not expose internal storage")
	}
	for i, want := range []string{"1", "2", "3"} {
		if lex.At(i).ID != want {
			t.Fatalf("position %d = %s, want %s", i, lex.At(i).ID, want)
		}
	}
}

func TestByIDMissing(t *testing.T) {
	lex := MustNew([]Entry{{ID: "1"}})
	if _, err := lex.ByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
