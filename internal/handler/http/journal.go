// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmorgan-dev/folio/internal/app"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/service"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/internal/utils"
	"github.com/rmorgan-dev/folio/models"
)

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entries, err := h.services.JournalService.List(ctx, userID)
	if err != nil {
		log.Err(err).Msg("listing journal entries failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []models.JournalEntry{}
	}
	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var draft models.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	entry, err := h.services.JournalService.Create(ctx, userID, draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid entry draft")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("creating journal entry failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		log.Err(err).Msg("invalid entry id")
		http.Error(w, app.MsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	entry, err := h.services.JournalService.Get(ctx, entryID, userID)
	if err != nil {
		// Entries of other users surface as not found: existence is never
		// leaked across owners.
		switch {
		case errors.Is(err, store.ErrEntryNotFound):
			log.Err(err).Msg("entry not found")
			http.Error(w, app.MsgEntryNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("fetching journal entry failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		log.Err(err).Msg("invalid entry id")
		http.Error(w, app.MsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	var patch models.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	entry, err := h.services.JournalService.Update(ctx, entryID, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid entry patch")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEntryNotFound):
			log.Err(err).Msg("entry not found")
			http.Error(w, app.MsgEntryNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("updating journal entry failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		log.Err(err).Msg("invalid entry id")
		http.Error(w, app.MsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	if err := h.services.JournalService.Delete(ctx, entryID, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrEntryNotFound):
			log.Err(err).Msg("entry not found")
			http.Error(w, app.MsgEntryNotFound, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("deleting journal entry failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
