// Package web serves the localhost-only single-user console; it intentionally
// has no auth/CSRF protection in this mode. The authorization scope comes
// from configuration, not from a session.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"silvo/config"
	"silvo/importer"
	"silvo/patrimony"
	"silvo/reconcile"
	"silvo/storage"
)

type Server struct {
	store *storage.SQLiteStore
	cfg   config.Config
	mux   *http.ServeMux
}

type unitMutationRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	LegalStatus *string  `json:"legalStatus"`
	ShapeType   *string  `json:"shapeType"`
	TotalArea   *float64 `json:"totalArea"`
	Area        *float64 `json:"area"`
	IsActive    *bool    `json:"isActive"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(store *storage.SQLiteStore, cfg config.Config) http.Handler {
	server := &Server{store: store, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", server.handleHealthz)
	mux.HandleFunc("POST /api/import", server.handleAPIImport)
	mux.HandleFunc("GET /api/units", server.handleAPIUnitList)
	mux.HandleFunc("GET /api/units/{id}", server.handleAPIUnitGet)
	mux.HandleFunc("PATCH /api/units/{id}", server.handleAPIUnitPatch)
	mux.HandleFunc("DELETE /api/units/{id}", server.handleAPIUnitDelete)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) scope() patrimony.Scope {
	return s.cfg.Scope()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleAPIImport runs one bulk import. The response is always the full
// batch outcome with HTTP 200 when the file was structurally decodable, even
// if every row was skipped; only batch-fatal conditions map to error codes.
func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	level, err := patrimony.ParseLevel(r.FormValue("level"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	format, err := importer.InferFormat(header.Filename, header.Header.Get("Content-Type"), r.FormValue("format"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	decoded, err := importer.Decode(data, format, level, s.cfg.Import.StrictEnums)
	if err != nil {
		writeJSONError(w, importErrorStatus(err), err.Error())
		return
	}

	parent, err := s.resolveParent(r, level)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := reconcile.Run(r.Context(), s.store, s.scope(), level, parent, decoded.Rows)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// resolveParent resolves the declared parent id to a unit within the
// caller's scope. A parent outside the scope fails the batch before any row
// is written.
func (s *Server) resolveParent(r *http.Request, level patrimony.Level) (*patrimony.Unit, error) {
	if level.IsRoot() {
		return nil, nil
	}

	parentID, err := parsePositiveInt64(r.FormValue("parent"))
	if err != nil {
		return nil, fmt.Errorf("a valid parent id is required to import %ss", level)
	}

	parent, err := s.store.GetByID(r.Context(), s.scope(), parentID)
	if err != nil {
		if errors.Is(err, patrimony.ErrUnitNotFound) {
			return nil, fmt.Errorf("parent unit %d not found", parentID)
		}
		return nil, err
	}
	return parent, nil
}

func (s *Server) handleAPIUnitList(w http.ResponseWriter, r *http.Request) {
	level, err := patrimony.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var parentID int64
	if !level.IsRoot() {
		parentID, err = parsePositiveInt64(r.URL.Query().Get("parent"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "a valid parent query parameter is required")
			return
		}
	}

	units, err := s.store.ListUnits(r.Context(), s.scope(), level, parentID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, units)
}

func (s *Server) handleAPIUnitGet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid unit id")
		return
	}

	unit, err := s.store.GetByID(r.Context(), s.scope(), id)
	if err != nil {
		if errors.Is(err, patrimony.ErrUnitNotFound) {
			writeJSONError(w, http.StatusNotFound, "unit not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, unit)
}

func (s *Server) handleAPIUnitPatch(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid unit id")
		return
	}

	var body unitMutationRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	unit, err := s.store.GetByID(r.Context(), s.scope(), id)
	if err != nil {
		if errors.Is(err, patrimony.ErrUnitNotFound) {
			writeJSONError(w, http.StatusNotFound, "unit not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	applyMutation(unit, body)

	updated, err := s.store.Update(r.Context(), id, unit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAPIUnitDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveInt64(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid unit id")
		return
	}

	deleted, err := s.store.DeleteUnit(r.Context(), s.scope(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeJSONError(w, http.StatusNotFound, "unit not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func applyMutation(unit *patrimony.Unit, body unitMutationRequest) {
	if body.Name != nil {
		unit.Name = strings.TrimSpace(*body.Name)
	}
	if body.Type != nil {
		unit.Type = strings.ToUpper(strings.TrimSpace(*body.Type))
	}
	if body.LegalStatus != nil {
		unit.LegalStatus = strings.ToUpper(strings.TrimSpace(*body.LegalStatus))
	}
	if body.ShapeType != nil {
		unit.ShapeType = strings.ToUpper(strings.TrimSpace(*body.ShapeType))
	}
	if body.TotalArea != nil {
		unit.TotalArea = *body.TotalArea
	}
	if body.Area != nil {
		unit.Area = *body.Area
	}
	if body.IsActive != nil {
		unit.IsActive = *body.IsActive
	}
}

// importErrorStatus maps batch-fatal decode errors: client data problems are
// 400, anything unexpected is 500.
func importErrorStatus(err error) int {
	var formatErr *importer.FormatError
	var columnErr *importer.MissingColumnError
	if errors.As(err, &formatErr) || errors.As(err, &columnErr) || errors.Is(err, importer.ErrNoDataRows) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parsePositiveInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("value must be > 0")
	}
	return parsed, nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
