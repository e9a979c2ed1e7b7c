package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/report"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

type EquipmentHTTP struct {
	repo repository.EquipmentRepository
	loc  *time.Location
}

// NewEquipmentHTTP reads date-only acquiredAt values as midnight in loc,
// the zone report ranges are parsed in. A nil loc means time.Local.
func NewEquipmentHTTP(r repository.EquipmentRepository, loc *time.Location) *EquipmentHTTP {
	if loc == nil {
		loc = time.Local
	}
	return &EquipmentHTTP{repo: r, loc: loc}
}

type equipmentDTO struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	SerialNumber string `json:"serialNumber"`
	AssignedTo   string `json:"assignedTo"`
	AcquiredAt   string `json:"acquiredAt"` // YYYY-MM-DD or RFC 3339
	Status       string `json:"status"`
	Details      string `json:"details"`
	BusinessUnit string `json:"businessUnit"`
}

func (in equipmentDTO) apply(e *models.Equipment, loc *time.Location) string {
	e.Name = strings.TrimSpace(in.Name)
	e.Type = strings.TrimSpace(in.Type)
	e.SerialNumber = strings.TrimSpace(in.SerialNumber)
	e.AssignedTo = strings.TrimSpace(in.AssignedTo)
	e.Details = strings.TrimSpace(in.Details)
	e.BusinessUnit = strings.TrimSpace(in.BusinessUnit)
	e.Status = models.EquipmentStatus(strings.TrimSpace(in.Status))
	if e.Status == "" {
		e.Status = "Operational"
	}
	e.AcquiredAt = time.Time{}
	if s := strings.TrimSpace(in.AcquiredAt); s != "" {
		t, err := time.ParseInLocation(report.DayLayout, s, loc)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				return "invalid acquiredAt"
			}
		}
		e.AcquiredAt = t
	}
	switch {
	case e.Name == "":
		return "name is required"
	case !e.Status.Valid():
		return "invalid status"
	}
	return ""
}

func (h *EquipmentHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.All(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

func (h *EquipmentHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathInt64(chi.URLParam(r, "id"))
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		e, err := h.repo.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

func (h *EquipmentHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in equipmentDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		e := &models.Equipment{}
		if msg := in.apply(e, h.loc); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}
		if err := h.repo.Create(r.Context(), e); err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, e)
	}
}

// PUT /api/equipment/{id} replaces every editable field.
func (h *EquipmentHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathInt64(chi.URLParam(r, "id"))
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		var in equipmentDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		e := &models.Equipment{ID: id}
		if msg := in.apply(e, h.loc); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}
		if err := h.repo.Update(r.Context(), e); err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

func (h *EquipmentHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathInt64(chi.URLParam(r, "id"))
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := h.repo.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
