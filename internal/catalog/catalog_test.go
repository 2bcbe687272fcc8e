package catalog

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/robalobadob/lexique/internal/lexicon"
)

var partsOfSpeech = []string{
	"verbe", "nom", "nom commun", "nom commun féminin", "nom propre", "adjectif",
	"pronom", "pronom personnel", "pronom démonstratif", "préposition", "locution prépositive",
	"adverbe", "interjection", "",
}

// fakeLexicon builds a reproducible lexicon of n entries.
func fakeLexicon(t *testing.T, seed int64, n int) *lexicon.Lexicon {
	t.Helper()
	f := gofakeit.New(seed)
	entries := make([]lexicon.Entry, n)
	for i := range entries {
		entries[i] = lexicon.Entry{
			ID:           fmt.Sprintf("%d", i+1),
			Term:         f.Word(),
			Translation:  f.Noun(),
			PartOfSpeech: f.RandomString(partsOfSpeech),
		}
	}
	lex, err := lexicon.New(entries)
	if err != nil {
		t.Fatalf("build lexicon: %v", err)
	}
	return lex
}

func isSubsequence(t *testing.T, lex *lexicon.Lexicon, got []lexicon.Entry) {
	t.Helper()
	j := 0
	for i := 0; i < lex.Len() && j < len(got); i++ {
		if lex.At(i).ID == got[j].ID {
			j++
		}
	}
	if j != len(got) {
		t.Fatalf("result is not an order-preserving subsequence (matched %d of %d)", j, len(got))
	}
}

func TestFilterIsOrderedSubsequence(t *testing.T) {
	lex := fakeLexicon(t, 42, 300)
	f := gofakeit.New(7)
	categories := []string{""}
	for _, c := range Categories {
		categories = append(categories, c.Value)
	}
	for i := 0; i < 200; i++ {
		q := ""
		if i%3 != 0 {
			q = f.LetterN(uint(1 + i%2))
		}
		c := categories[i%len(categories)]
		isSubsequence(t, lex, Filter(lex, q, c))
	}
}

func TestFilterEmptyReturnsEverything(t *testing.T) {
	lex := fakeLexicon(t, 1, 120)
	got := Filter(lex, "", "")
	if len(got) != lex.Len() {
		t.Fatalf("got %d entries, want %d", len(got), lex.Len())
	}
	for i := range got {
		if got[i].ID != lex.At(i).ID {
			t.Fatalf("entry %d reordered", i)
		}
	}
}

func TestPronounCategoriesAreDisjoint(t *testing.T) {
	lex := fakeLexicon(t, 3, 400)
	for _, pair := range [][2]string{{"pronom personnel", "pronom"}, {"personal pronoun", "pronoun"}} {
		personal := map[string]bool{}
		for _, e := range Filter(lex, "", pair[0]) {
			personal[e.ID] = true
		}
		for _, e := range Filter(lex, "", pair[1]) {
			if personal[e.ID] {
				t.Fatalf("%s and %s both matched entry %s (%q)", pair[0], pair[1], e.ID, e.PartOfSpeech)
			}
		}
	}
}

func TestMatchCategory(t *testing.T) {
	cases := []struct {
		pos, cat string
		want     bool
	}{
		{"pronom personnel", "pronom personnel", true},
		{"pronom personnel", "pronom", false},
		{"pronom démonstratif", "pronom", true},
		{"pronom démonstratif", "pronom personnel", false},
		{"personal pronoun", "pronoun", false},
		{"relative pronoun", "pronoun", true},
		{"personal pronoun", "Personal Pronoun", true},
		{"nom commun", "nom commun", true},
		{"nom commun féminin", "nom commun", true},
		{"un nom commun", "nom commun", false},
		{"proper noun", "proper noun", true},
		{"Verbe", "verbe", true},
		{"verbe transitif", "verbe", true},
		{"preposition", "préposition", true},
		{"locution prépositive", "locution", true},
		{"nom", "verbe", false},
		{"anything", "", true},
		{"", "verbe", false},
	}
	for _, tc := range cases {
		if got := MatchCategory(tc.pos, tc.cat); got != tc.want {
			t.Fatalf("MatchCategory(%q, %q) = %v, want %v", tc.pos, tc.cat, got, tc.want)
		}
	}
}

func TestMatchQueryIsCaseAndAccentInsensitive(t *testing.T) {
	e := lexicon.Entry{ID: "1", Term: "Ndako", Translation: "École"}
	for _, q := range []string{"", "nda", "NDAKO", "ecole", "éco", "COLE"} {
		if !MatchQuery(e, q) {
			t.Fatalf("query %q should match", q)
		}
	}
	if MatchQuery(e, "maison") {
		t.Fatalf("unexpected match")
	}
}

func TestViewPagination(t *testing.T) {
	lex := fakeLexicon(t, 9, 130)
	v := NewView(lex)
	if len(v.Visible()) != PageSize || !v.HasMore() {
		t.Fatalf("initial visible = %d", len(v.Visible()))
	}
	if !v.LoadMore() || len(v.Visible()) != 100 {
		t.Fatalf("after first LoadMore visible = %d", len(v.Visible()))
	}
	if !v.LoadMore() || len(v.Visible()) != 130 || v.Limit() != 130 {
		t.Fatalf("after second LoadMore visible = %d limit = %d", len(v.Visible()), v.Limit())
	}
	if s := v.Snapshot(); len(s.Items) != 130 || s.Total != 130 || s.HasMore || s.NextLimit != 130 {
		t.Fatalf("snapshot = %+v", s)
	}
	if v.LoadMore() {
		t.Fatalf("LoadMore past the end should be a no-op")
	}
	if v.HasMore() {
		t.Fatalf("everything is visible")
	}
}

func TestViewResetsLimitOnQueryOrCategoryChange(t *testing.T) {
	lex := fakeLexicon(t, 11, 200)
	v := NewView(lex)
	v.LoadMore()
	v.LoadMore()
	if v.Limit() != 150 {
		t.Fatalf("limit = %d", v.Limit())
	}
	v.SetQuery("a")
	if v.Limit() != PageSize {
		t.Fatalf("query change must reset limit, got %d", v.Limit())
	}
	v.LoadMore()
	v.SetCategory("verbe")
	if v.Limit() != PageSize {
		t.Fatalf("category change must reset limit, got %d", v.Limit())
	}
	v.LoadMore()
	before := v.Limit()
	v.SetCategory("verbe")
	if v.Limit() != before {
		t.Fatalf("re-setting the same category must not reset the limit")
	}
}

func TestPage(t *testing.T) {
	lex := fakeLexicon(t, 5, 75)
	p := Page(lex, "", "", 0)
	if p.Limit != PageSize || len(p.Items) != PageSize || p.Total != 75 || !p.HasMore || p.NextLimit != 75 {
		t.Fatalf("unexpected page %+v", p)
	}
	p = Page(lex, "", "", 75)
	if len(p.Items) != 75 || p.HasMore || p.NextLimit != 75 {
		t.Fatalf("unexpected last page %+v", p)
	}
}

func TestToggleCategory(t *testing.T) {
	if got := ToggleCategory("verbe", "verbe"); got != "" {
		t.Fatalf("toggle same = %q", got)
	}
	if got := ToggleCategory("verbe", "nom propre"); got != "nom propre" {
		t.Fatalf("toggle other = %q", got)
	}
}
