// internal/httpserver/routes_words.go
//
// Lexicon browsing:
//   - GET /words?q=&category=&limit= → one page of the filtered list (limit grows by 50 per "load more")
//   - GET /words/{id}                → one entry with its favorite flag and audio URL
//   - GET /categories                → the filter vocabulary
//   - GET /audio/{term}              → pronunciation clip, 404 when absent

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/lexique/internal/audio"
	"github.com/robalobadob/lexique/internal/catalog"
	"github.com/robalobadob/lexique/internal/favorites"
	"github.com/robalobadob/lexique/internal/lexicon"
)

// wordView is an entry as rendered by list items and the detail view.
type wordView struct {
	lexicon.Entry
	Favorite bool   `json:"favorite"`
	AudioURL string `json:"audioUrl"`
}

type pageRes struct {
	Items     []wordView `json:"items"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	HasMore   bool       `json:"hasMore"`
	NextLimit int        `json:"nextLimit"`
}

// mountWords registers the lexicon routes.
func (s *Server) mountWords(r chi.Router) {
	r.Get("/words", s.handleListWords)
	r.Get("/words/{id}", s.handleGetWord)
	r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Categories)
	})
}

// favoritesFor loads the caller's favorites. Failures degrade to "no favorites".
func (s *Server) favoritesFor(r *http.Request) *favorites.Store {
	st, err := s.favs.For(r.Context(), deviceFrom(r.Context()))
	if err != nil {
		log.Warn().Err(err).Msg("load favorites")
		return nil
	}
	return st
}

func (s *Server) view(e lexicon.Entry, favs *favorites.Store) wordView {
	return wordView{
		Entry:    e,
		Favorite: favs != nil && favs.Has(e.ID),
		AudioURL: s.opts.Audio.URL(e),
	}
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}
	page := catalog.Page(s.lex, q.Get("q"), q.Get("category"), limit)
	favs := s.favoritesFor(r)
	writeJSON(w, http.StatusOK, pageRes{
		Items:     lo.Map(page.Items, func(e lexicon.Entry, _ int) wordView { return s.view(e, favs) }),
		Total:     page.Total,
		Limit:     page.Limit,
		HasMore:   page.HasMore,
		NextLimit: page.NextLimit,
	})
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	e, err := s.lex.ByID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.view(e, s.favoritesFor(r)))
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	f, info, err := s.opts.Audio.Open(chi.URLParam(r, "term"))
	if err != nil {
		if !errors.Is(err, audio.ErrNotFound) {
			log.Warn().Err(err).Msg("open audio clip")
		}
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	defer f.Close()
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
