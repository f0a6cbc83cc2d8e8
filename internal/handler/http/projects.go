// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rmorgan-dev/folio/internal/app"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/service"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/internal/utils"
	"github.com/rmorgan-dev/folio/models"
)

// The projects endpoints use the {success, ...} response envelope of the
// public portfolio API rather than the bare payloads of the journal API.

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.services.ProjectService.List(r.Context())

	utils.WriteJSON(w, models.ProjectListResponse{
		Success: true,
		Count:   len(projects),
		Data:    projects,
	}, http.StatusOK)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.Atoi(chi.URLParam(r, "projectID"))
	if err != nil {
		log.Err(err).Msg("invalid project id")
		writeProjectError(w, app.MsgInvalidProjectID, http.StatusBadRequest)
		return
	}

	project, err := h.services.ProjectService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProjectNotFound):
			writeProjectError(w, app.MsgProjectNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("fetching project failed")
			writeProjectError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.ProjectResponse{Success: true, Data: project}, http.StatusOK)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeProjectError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.ProjectService.Create(r.Context(), project)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			writeProjectError(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("creating project failed")
			writeProjectError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.ProjectResponse{Success: true, Data: created}, http.StatusCreated)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.Atoi(chi.URLParam(r, "projectID"))
	if err != nil {
		log.Err(err).Msg("invalid project id")
		writeProjectError(w, app.MsgInvalidProjectID, http.StatusBadRequest)
		return
	}

	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeProjectError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.ProjectService.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProjectNotFound):
			writeProjectError(w, app.MsgProjectNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("updating project failed")
			writeProjectError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.ProjectResponse{Success: true, Data: updated}, http.StatusOK)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.Atoi(chi.URLParam(r, "projectID"))
	if err != nil {
		log.Err(err).Msg("invalid project id")
		writeProjectError(w, app.MsgInvalidProjectID, http.StatusBadRequest)
		return
	}

	if err := h.services.ProjectService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrProjectNotFound):
			writeProjectError(w, app.MsgProjectNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("deleting project failed")
			writeProjectError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Success: true, Message: app.MsgProjectDeleted}, http.StatusOK)
}

func writeProjectError(w http.ResponseWriter, message string, statusCode int) {
	utils.WriteJSON(w, models.ErrorResponse{Success: false, Message: message}, statusCode)
}
