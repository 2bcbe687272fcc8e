package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/robalobadob/lexique/internal/lexicon"
)

func TestPathEscapes(t *testing.T) {
	r := Resolver{Dir: "audio", Ext: ".mp3"}
	if got := r.Path("Mbolo yawel"); got != "/audio/Mbolo%20yawel.mp3" {
		t.Fatalf("Path = %q", got)
	}
}

func TestURLPrefersEntryField(t *testing.T) {
	r := Resolver{Ext: ".mp3"}
	e := lexicon.Entry{Term: "Maza"}
	if got := r.URL(e); got != "/audio/Maza.mp3" {
		t.Fatalf("URL = %q", got)
	}
	e.PronunciationURL = "https://cdn.example/maza.ogg"
	if got := r.URL(e); got != e.PronunciationURL {
		t.Fatalf("URL = %q", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Lola.mp3"), []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := Resolver{Dir: dir, Ext: ".mp3"}

	for _, term := range []string{"Lola", "Lola.mp3"} {
		f, info, err := r.Open(term)
		if err != nil {
			t.Fatalf("open %q: %v", term, err)
		}
		b, _ := io.ReadAll(f)
		f.Close()
		if string(b) != "ID3" || info.Size() != 3 {
			t.Fatalf("unexpected content %q", b)
		}
	}

	for _, term := range []string{"Nzambi", "", "../secret", ".."} {
		if _, _, err := r.Open(term); !errors.Is(err, ErrNotFound) {
			t.Fatalf("open %q: expected ErrNotFound, got %v", term, err)
		}
	}
}
