package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amberbeaumont/IThelpdesklite/internal/middleware"
	"github.com/amberbeaumont/IThelpdesklite/internal/report"
	"github.com/amberbeaumont/IThelpdesklite/internal/service"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

type ReportsHTTP struct {
	svc *service.ReportService
}

func NewReportsHTTP(s *service.ReportService) *ReportsHTTP { return &ReportsHTTP{svc: s} }

// GET /api/reports/fields
func (h *ReportsHTTP) Fields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups := make(map[report.Collection][]report.Field, len(report.Collections))
		for _, c := range report.Collections {
			groups[c] = h.svc.FieldsOf(c)
		}
		utils.JSON(w, http.StatusOK, groups)
	}
}

// POST /api/reports/run[?format=csv]
func (h *ReportsHTTP) Run() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.RunRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		h.run(w, r, in)
	}
}

// GET /api/reports/run?fields=a,b&fields=c&sort=a&desc=true&from=&to=[&format=csv]
func (h *ReportsHTTP) RunQuery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		desc, _ := strconv.ParseBool(q.Get("desc"))
		h.run(w, r, service.RunRequest{
			Fields: utils.QueryList(q, "fields"),
			Sort:   report.Sort{Key: q.Get("sort"), Desc: desc},
			From:   q.Get("from"),
			To:     q.Get("to"),
		})
	}
}

func (h *ReportsHTTP) run(w http.ResponseWriter, r *http.Request, in service.RunRequest) {
	t, err := h.svc.Run(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		h.writeCSV(w, t)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

// writeCSV buffers the document so a failure can still become a JSON error.
func (h *ReportsHTTP) writeCSV(w http.ResponseWriter, t report.Table) {
	var buf bytes.Buffer
	name, err := h.svc.Export(&buf, t)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// -----------------------------------------------------------------------------
// Per-user selection
// -----------------------------------------------------------------------------

func actorID(r *http.Request) string {
	uid, _ := middleware.Actor(r.Context())
	return uid
}

func respondSession(w http.ResponseWriter, v service.SessionView, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, v)
}

// GET /api/reports/session
func (h *ReportsHTTP) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, h.svc.Session(actorID(r)))
	}
}

// POST /api/reports/session/fields/{key}
func (h *ReportsHTTP) ToggleField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h.svc.ToggleField(actorID(r), chi.URLParam(r, "key"))
		respondSession(w, v, err)
	}
}

// POST /api/reports/session/sort/{key}
func (h *ReportsHTTP) ToggleSort() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h.svc.ToggleSort(actorID(r), chi.URLParam(r, "key"))
		respondSession(w, v, err)
	}
}

// PUT /api/reports/session/range {from, to}; empty bounds clear that end.
func (h *ReportsHTTP) SetRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			From string `json:"from"`
			To   string `json:"to"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		v, err := h.svc.SetRange(actorID(r), in.From, in.To)
		respondSession(w, v, err)
	}
}

// DELETE /api/reports/session
func (h *ReportsHTTP) ResetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, h.svc.ResetSession(actorID(r)))
	}
}

// GET /api/reports/session/table
func (h *ReportsHTTP) SessionTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.svc.SessionTable(r.Context(), actorID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// GET /api/reports/session/export
func (h *ReportsHTTP) Export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.svc.SessionTable(r.Context(), actorID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		h.writeCSV(w, t)
	}
}

// GET /api/reports/summary
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.svc.Summary(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, s)
	}
}
