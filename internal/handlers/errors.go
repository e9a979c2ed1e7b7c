package handlers

import (
	"errors"
	"net/http"

	"github.com/amberbeaumont/IThelpdesklite/internal/report"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/service"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

// writeError maps domain errors onto status codes. Anything unrecognised is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, repository.ErrConflict):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNothingToExport):
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, report.ErrUnknownField),
		errors.Is(err, report.ErrDuplicateField),
		errors.Is(err, report.ErrFieldNotSelected),
		errors.Is(err, report.ErrInvalidRange):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
