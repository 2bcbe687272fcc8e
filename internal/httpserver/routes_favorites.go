// internal/httpserver/routes_favorites.go
//
// Device-scoped favorites:
//   - GET  /favorites             → favorite ids (insertion order) and their entries
//   - POST /favorites/{id}/toggle → flip membership; every open /favorites/ws stream
//                                   receives the new list before this returns
//   - GET  /favorites/ws          → websocket stream of the id list (see ws.go)

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type favoritesRes struct {
	IDs   []string   `json:"ids"`
	Items []wordView `json:"items"`
}

type toggleRes struct {
	ID       string   `json:"id"`
	Favorite bool     `json:"favorite"`
	IDs      []string `json:"ids"`
}

// mountFavorites registers the favorites routes.
func (s *Server) mountFavorites(r chi.Router) {
	r.Get("/favorites", s.handleListFavorites)
	r.Post("/favorites/{id}/toggle", s.handleToggleFavorite)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.favs.For(r.Context(), deviceFrom(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("load favorites")
		http.Error(w, `{"error":"favorites_unavailable"}`, http.StatusInternalServerError)
		return
	}
	ids := favs.IDs()
	// Ids of entries no longer in the lexicon are kept but not rendered.
	items := lo.FilterMap(ids, func(id string, _ int) (wordView, bool) {
		e, err := s.lex.ByID(id)
		if err != nil {
			return wordView{}, false
		}
		return s.view(e, favs), true
	})
	writeJSON(w, http.StatusOK, favoritesRes{IDs: ids, Items: items})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.lex.ByID(id); err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	favs, err := s.favs.For(r.Context(), deviceFrom(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("load favorites")
		http.Error(w, `{"error":"favorites_unavailable"}`, http.StatusInternalServerError)
		return
	}
	added, err := favs.Toggle(r.Context(), id)
	if err != nil {
		// Already applied in memory and published.
		log.Warn().Err(err).Str("id", id).Msg("persist favorites")
	}
	writeJSON(w, http.StatusOK, toggleRes{ID: id, Favorite: added, IDs: favs.IDs()})
}
