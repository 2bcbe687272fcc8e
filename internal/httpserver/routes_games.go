// internal/httpserver/routes_games.go
//
// Game sessions over HTTP. A session lives in the registry from "mount"
// (POST /games/{kind}) until "unmount" (DELETE) or the idle sweep; both close it,
// which cancels its pending timers.
//
//   POST   /games/{kind}                → new session, returns its snapshot
//   GET    /games/{kind}/{id}           → current snapshot
//   POST   /games/{kind}/{id}/restart   → fresh round in the same session
//   DELETE /games/{kind}/{id}           → unmount
//   POST   /games/hangman/{id}/guess    {"letter":"a"}
//   POST   /games/quiz/{id}/answer      {"choice":"Parler"}
//   POST   /games/quiz/{id}/next
//   POST   /games/memory/{id}/flip      {"cardId":"source-3"}
//   POST   /games/sprint/{id}/start
//   POST   /games/sprint/{id}/pick      {"optionId":"r2-1"}
//
// Commands that do not apply in the current state are no-ops and still return 200
// with the unchanged snapshot.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lexique/internal/game"
)

type guessReq struct {
	Letter string `json:"letter"`
}

type answerReq struct {
	Choice string `json:"choice"`
}

type flipReq struct {
	CardID string `json:"cardId"`
}

type pickReq struct {
	OptionID string `json:"optionId"`
}

// mountGames registers the game routes.
func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/hangman/{id}/guess", s.handleHangmanGuess)
		r.Post("/quiz/{id}/answer", s.handleQuizAnswer)
		r.Post("/quiz/{id}/next", s.handleQuizNext)
		r.Post("/memory/{id}/flip", s.handleMemoryFlip)
		r.Post("/sprint/{id}/start", s.handleSprintStart)
		r.Post("/sprint/{id}/pick", s.handleSprintPick)

		r.Post("/{kind}", s.handleNewGame)
		r.Get("/{kind}/{id}", s.handleGetGame)
		r.Post("/{kind}/{id}/restart", s.handleRestartGame)
		r.Delete("/{kind}/{id}", s.handleDeleteGame)
	})
}

// newSession builds a session of kind over the playable lexicon entries.
func (s *Server) newSession(kind game.Kind) (game.Session, error) {
	entries := s.lex.Playable()
	switch kind {
	case game.KindHangman:
		return game.NewHangman(entries, s.opts.Rand)
	case game.KindQuiz:
		return game.NewQuiz(entries, s.opts.Rand)
	case game.KindMemory:
		return game.NewMemory(entries, s.opts.Rand, s.opts.Scheduler)
	case game.KindSprint:
		return game.NewSprint(entries, s.opts.Rand, s.opts.Scheduler, s.opts.Frame)
	}
	return nil, errors.New("unknown game kind")
}

// snapshotOf returns the read-only view of any session.
func snapshotOf(sess game.Session) any {
	switch g := sess.(type) {
	case *game.Hangman:
		return g.Snapshot()
	case *game.Quiz:
		return g.Snapshot()
	case *game.Memory:
		return g.Snapshot()
	case *game.Sprint:
		return g.Snapshot()
	}
	return nil
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	kind, ok := game.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return
	}
	sess, err := s.newSession(kind)
	if errors.Is(err, game.ErrNotEnoughWords) {
		http.Error(w, `{"error":"cannot_start"}`, http.StatusConflict)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("new game")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		sess.Close()
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("kind", string(kind)).Str("gameId", sess.ID()).Str("device", deviceFrom(r.Context())).Msg("game started")
	writeJSON(w, http.StatusCreated, snapshotOf(sess))
}

// lookup fetches the session named by the {id} param, requiring kind.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, kind game.Kind) (game.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || sess.Kind() != kind {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// lookupAny is lookup with the kind taken from the {kind} param.
func (s *Server) lookupAny(w http.ResponseWriter, r *http.Request) (game.Session, bool) {
	kind, ok := game.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, `{"error":"unknown_game"}`, http.StatusNotFound)
		return nil, false
	}
	return s.lookup(w, r, kind)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupAny(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshotOf(sess))
}

func (s *Server) handleRestartGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupAny(w, r)
	if !ok {
		return
	}
	var snap any
	switch g := sess.(type) {
	case *game.Hangman:
		snap = g.Restart()
	case *game.Quiz:
		snap = g.Restart()
	case *game.Memory:
		snap = g.Restart()
	case *game.Sprint:
		snap = g.Start()
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupAny(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Delete(r.Context(), sess.ID()); err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleHangmanGuess(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, game.KindHangman)
	if !ok {
		return
	}
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, sess.(*game.Hangman).Guess(req.Letter))
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, game.KindQuiz)
	if !ok {
		return
	}
	var req answerReq
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, sess.(*game.Quiz).Submit(req.Choice))
}

func (s *Server) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, game.KindQuiz)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.(*game.Quiz).Advance())
}

func (s *Server) handleMemoryFlip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, game.KindMemory)
	if !ok {
		return
	}
	var req flipReq
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, sess.(*game.Memory).Flip(req.CardID))
}

func (s *Server) handleSprintStart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, game.KindSprint)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.(*game.Sprint).Start())
}

func (s *Server) handleSprintPick(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, game.KindSprint)
	if !ok {
		return
	}
	var req pickReq
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, sess.(*game.Sprint).Pick(req.OptionID))
}
