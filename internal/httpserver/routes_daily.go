// internal/httpserver/routes_daily.go
//
// HTTP route for the "Mots du jour" (featured words).
//   - GET /words/featured        → today's featured entries (UTC day)
//   - GET /words/featured?date=YYYY-MM-DD → the entries featured on that day
//
// Selection is deterministic: HMAC(salt, date) picks the entries, so every device
// sees the same words for the same day.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/robalobadob/lexique/internal/daily"
	"github.com/robalobadob/lexique/internal/lexicon"
)

type featuredRes struct {
	Date  string     `json:"date"`
	Items []wordView `json:"items"`
}

// mountFeatured registers the featured-words route.
func (s *Server) mountFeatured(r chi.Router) {
	r.Get("/words/featured", s.handleFeatured)
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	date := s.opts.Now().UTC()
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
			return
		}
		date = d
	}
	favs := s.favoritesFor(r)
	entries := daily.Featured(s.lex, date, s.opts.DailySalt, s.opts.DailyCount)
	writeJSON(w, http.StatusOK, featuredRes{
		Date:  daily.DateKey(date),
		Items: lo.Map(entries, func(e lexicon.Entry, _ int) wordView { return s.view(e, favs) }),
	})
}
