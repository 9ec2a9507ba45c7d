package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mww/club_ladder/controller"
	"github.com/mww/club_ladder/db"
	"github.com/mww/club_ladder/model"
	"github.com/mww/club_ladder/rating"
	"github.com/unrolled/render"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "club ladder")
	}
}

func createUserHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username    string `json:"username"`
			DisplayName string `json:"display_name"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		u, err := ctrl.CreateUser(r.Context(), req.Username, req.DisplayName)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, u)
	}
}

func getUserHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := ctrl.GetUser(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, u)
	}
}

func userLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		leagues, err := ctrl.ListLeaguesForUser(r.Context(), userID)
		if err != nil {
			renderError(render, w, err)
			return
		}

		// Only the owner gets to see the invite code.
		for i := range leagues {
			hideInviteCode(&leagues[i], currentUser(r))
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func createLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Public      *bool  `json:"public"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		public := true
		if req.Public != nil {
			public = *req.Public
		}

		l, err := ctrl.CreateLeague(r.Context(), currentUser(r), req.Name, req.Description, public)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, l)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := ctrl.GetLeague(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		hideInviteCode(l, currentUser(r))
		render.JSON(w, http.StatusOK, l)
	}
}

func archiveLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.ArchiveLeague(r.Context(), leagueID(r), currentUser(r)); err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func regenerateInviteCodeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := ctrl.RegenerateInviteCode(r.Context(), leagueID(r), currentUser(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"invite_code": code})
	}
}

func joinLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			InviteCode string `json:"invite_code"`
		}
		if r.ContentLength != 0 {
			if err := decode(r, &req); err != nil {
				renderError(render, w, err)
				return
			}
		}

		p, err := ctrl.JoinLeague(r.Context(), leagueID(r), currentUser(r), req.InviteCode)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, p)
	}
}

func joinLeagueByCodeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			InviteCode string `json:"invite_code"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		p, err := ctrl.JoinLeagueByCode(r.Context(), currentUser(r), req.InviteCode)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, p)
	}
}

func leaveLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.LeaveLeague(r.Context(), leagueID(r), currentUser(r)); err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func playerStatusHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := decode(r, &req); err != nil {
			renderError(render, w, err)
			return
		}

		status := model.ParsePlayerStatus(req.Status)
		userID := chi.URLParam(r, "userID")
		if userID == "me" {
			userID = currentUser(r)
		}

		err := ctrl.SetPlayerStatus(r.Context(), leagueID(r), currentUser(r), userID, status)
		if err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func leaderboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := ctrl.GetLeaderboard(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, board)
	}
}

func listMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := ctrl.GetMatches(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func recordMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var result model.MatchResult
		if err := decode(r, &result); err != nil {
			renderError(render, w, err)
			return
		}

		m, err := ctrl.RecordMatch(r.Context(), leagueID(r), currentUser(r), result)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, m)
	}
}

func deleteMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := chi.URLParam(r, "matchID")
		if err := ctrl.DeleteMatch(r.Context(), leagueID(r), matchID, currentUser(r)); err != nil {
			renderError(render, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// The router only matches digits, this can only fail if the value overflows.
func leagueID(r *http.Request) int32 {
	id, err := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 32)
	if err != nil {
		return -1
	}
	return int32(id)
}

func hideInviteCode(l *model.League, userID string) {
	if l.OwnerID != userID {
		l.InviteCode = ""
	}
}

func decode(r *http.Request, v any) error {
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func renderError(render *render.Render, w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("error handling request: %v", err)
	}
	render.JSON(w, status, errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrLeagueNotFound),
		errors.Is(err, db.ErrMatchNotFound),
		errors.Is(err, rating.ErrUnknownMatch):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, controller.ErrInvalidInput),
		errors.Is(err, controller.ErrInvalidInviteCode),
		errors.Is(err, controller.ErrInactivePlayer),
		errors.Is(err, rating.ErrInvalidResult),
		errors.Is(err, rating.ErrUnknownPlayer):
		return http.StatusBadRequest
	case errors.Is(err, controller.ErrNotParticipant),
		errors.Is(err, controller.ErrNotOwner),
		errors.Is(err, db.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, controller.ErrRetractionWindowClosed),
		errors.Is(err, controller.ErrLeagueArchived),
		errors.Is(err, db.ErrAlreadyMember),
		errors.Is(err, db.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
