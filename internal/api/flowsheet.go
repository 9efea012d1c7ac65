// ABOUTME: Flowsheet endpoints: public reads via huma, guarded writes via chi.
// ABOUTME: Posting requires Dj; deleting an entry requires MusicDirector.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/WXYC/dj-site-sub004/internal/store"
)

// FlowsheetEntryResponse is the API representation of a flowsheet entry.
type FlowsheetEntryResponse struct {
	ID       string `json:"id"`
	DjID     string `json:"dj_id"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Album    string `json:"album,omitempty"`
	Request  bool   `json:"request"`
	PlayedAt string `json:"played_at"` // RFC3339
}

func flowsheetEntryResponse(e store.FlowsheetEntry) FlowsheetEntryResponse {
	return FlowsheetEntryResponse{
		ID:       e.ID.String(),
		DjID:     e.DjID.String(),
		Artist:   e.Artist,
		Title:    e.Title,
		Album:    e.Album,
		Request:  e.Request,
		PlayedAt: e.PlayedAt.Format(time.RFC3339),
	}
}

// registerFlowsheetReadRoutes wires up the public flowsheet read endpoint.
func registerFlowsheetReadRoutes(api huma.API, s *store.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "list-flowsheet",
		Method:      http.MethodGet,
		Path:        "/flowsheet",
		Summary:     "List recent flowsheet entries",
		Description: "The live broadcast log, newest first.",
		Tags:        []string{"Flowsheet"},
	}, listFlowsheetHandler(s))
}

type listFlowsheetInput struct {
	Limit  int32 `query:"limit"  default:"50" minimum:"1" maximum:"200"`
	Offset int32 `query:"offset" default:"0"  minimum:"0"`
}

type listFlowsheetOutput struct {
	Body struct {
		Entries []FlowsheetEntryResponse `json:"entries"`
	}
}

func listFlowsheetHandler(s *store.Store) func(context.Context, *listFlowsheetInput) (*listFlowsheetOutput, error) {
	return func(ctx context.Context, in *listFlowsheetInput) (*listFlowsheetOutput, error) {
		entries, err := s.ListFlowsheet(ctx, in.Limit, in.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("flowsheet list failed")
		}
		out := &listFlowsheetOutput{}
		out.Body.Entries = make([]FlowsheetEntryResponse, 0, len(entries))
		for _, e := range entries {
			out.Body.Entries = append(out.Body.Entries, flowsheetEntryResponse(e))
		}
		return out, nil
	}
}

// addFlowsheetEntryBody is the JSON request body for POST /api/v1/flowsheet.
type addFlowsheetEntryBody struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Album   string `json:"album"`
	Request bool   `json:"request"`
}

// addFlowsheetEntryHandler handles POST /api/v1/flowsheet.
// Requires at least Dj (enforced by Require middleware); the entry is logged
// under the verdict-proven caller.
func (srv *Server) addFlowsheetEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := provenIdentityFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addFlowsheetEntryBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Artist == "" || req.Title == "" {
		http.Error(w, "artist and title are required", http.StatusBadRequest)
		return
	}

	entry, err := srv.store.AddFlowsheetEntry(r.Context(), id.ID, req.Artist, req.Title, req.Album, req.Request)
	if err != nil {
		slog.ErrorContext(r.Context(), "add flowsheet entry", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, flowsheetEntryResponse(*entry))
}

// deleteFlowsheetEntryHandler handles DELETE /api/v1/flowsheet/{entry_id}.
// Requires at least MusicDirector.
func (srv *Server) deleteFlowsheetEntryHandler(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(chi.URLParam(r, "entry_id"))
	if err != nil {
		http.Error(w, "invalid entry_id", http.StatusBadRequest)
		return
	}

	deleted, err := srv.store.DeleteFlowsheetEntry(r.Context(), entryID)
	if err != nil {
		slog.ErrorContext(r.Context(), "delete flowsheet entry", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// manageFlowsheetHandler backs the browser-facing management page; the
// redirect-mode guard in front of it is the interesting part.
func (srv *Server) manageFlowsheetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := provenIdentityFrom(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"page":   "flowsheet-manage",
		"viewer": id.DisplayName,
	})
}
