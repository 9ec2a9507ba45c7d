package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mww/club_ladder/controller"
	"github.com/unrolled/render"
)

// The header a fronting auth proxy uses to pass along who is making the request.
const userIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(identify)

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/users", func(r chi.Router) {
		r.Post("/", createUserHandler(ctrl, render))
		r.Get("/{userID}", getUserHandler(ctrl, render))
		r.Get("/{userID}/leagues", userLeaguesHandler(ctrl, render))
	})

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", listLeaguesHandler(ctrl, render))

		r.Group(func(r chi.Router) {
			r.Use(requireUser(render))
			r.Post("/", createLeagueHandler(ctrl, render))
			r.Post("/join", joinLeagueByCodeHandler(ctrl, render))
		})

		r.Route("/{leagueID:\\d+}", func(r chi.Router) {
			r.Get("/", getLeagueHandler(ctrl, render))
			r.Get("/leaderboard", leaderboardHandler(ctrl, render))
			r.Get("/matches", listMatchesHandler(ctrl, render))

			r.Group(func(r chi.Router) {
				r.Use(requireUser(render))
				r.Post("/archive", archiveLeagueHandler(ctrl, render))
				r.Post("/invite", regenerateInviteCodeHandler(ctrl, render))

				r.Post("/players", joinLeagueHandler(ctrl, render))
				r.Delete("/players/me", leaveLeagueHandler(ctrl, render))
				r.Put("/players/{userID}/status", playerStatusHandler(ctrl, render))

				r.Post("/matches", recordMatchHandler(ctrl, render))
				r.Delete("/matches/{matchID}", deleteMatchHandler(ctrl, render))
			})
		})
	})

	return r
}

// identify puts the caller's user id, if there is one, on the request context.
func identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(userIDHeader)); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// requireUser rejects requests that don't say who is making them.
func requireUser(render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if currentUser(r) == "" {
				render.JSON(w, http.StatusUnauthorized, errorResponse{Error: "missing " + userIDHeader + " header"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func currentUser(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
