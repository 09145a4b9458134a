// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

func (h *Handler) adminSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.AdminSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundAdmin, token, err := h.services.AdminService.AdminSignIn(ctx, request)
	if err != nil {
		respondError(w, log, err, "admin signin failed")
		return
	}

	log.Debug().Str("admin_id", foundAdmin.AdminID).Msg("admin successfully signed in")

	utils.WriteJSON(w, struct {
		Token   string       `json:"token"`
		Profile models.Admin `json:"profile"`
	}{Token: token.String(), Profile: foundAdmin}, http.StatusOK)
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actingAdminID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "Handler.createAdmin").Msg("authenticated subject missing from context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdAdmin, err := h.services.AdminService.CreateAdmin(ctx, actingAdminID, request)
	if err != nil {
		respondError(w, log, err, "admin creation failed")
		return
	}

	log.Info().Str("admin_id", createdAdmin.AdminID).Str("created_by", actingAdminID).Msg("admin account created")

	utils.WriteJSON(w, createdAdmin, http.StatusCreated)
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actingAdminID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "Handler.listAdmins").Msg("authenticated subject missing from context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	admins, err := h.services.AdminService.ListAdmins(ctx, actingAdminID)
	if err != nil {
		respondError(w, log, err, "admin listing failed")
		return
	}

	utils.WriteJSON(w, admins, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := chi.URLParam(r, "userID")

	foundUser, err := h.services.AdminService.GetUser(ctx, userID)
	if err != nil {
		respondError(w, log, err, "user lookup failed")
		return
	}

	utils.WriteJSON(w, foundUser, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := parseUserListQuery(r)

	list, err := h.services.AdminService.ListUsers(ctx, query)
	if err != nil {
		respondError(w, log, err, "user listing failed")
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	h.changeUserLifecycle(w, r, h.services.AdminService.DeactivateUser, "user deactivation failed")
}

func (h *Handler) reactivateUser(w http.ResponseWriter, r *http.Request) {
	h.changeUserLifecycle(w, r, h.services.AdminService.ReactivateUser, "user reactivation failed")
}

// changeUserLifecycle is the shared body of the deactivate and reactivate
// endpoints. The request body is optional: an empty body means no audit
// reason was supplied.
func (h *Handler) changeUserLifecycle(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, actingAdminID string, userID string, reason string) (models.User, error),
	failureMsg string,
) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actingAdminID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "Handler.changeUserLifecycle").Msg("authenticated subject missing from context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	userID := chi.URLParam(r, "userID")

	var request models.LifecycleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedUser, err := action(ctx, actingAdminID, userID, request.Reason)
	if err != nil {
		respondError(w, log, err, failureMsg)
		return
	}

	utils.WriteJSON(w, updatedUser, http.StatusOK)
}

// parseUserListQuery builds a [models.UserListQuery] from URL query
// parameters. Unknown or malformed values are ignored rather than rejected;
// the service layer clamps the result into legal ranges.
func parseUserListQuery(r *http.Request) models.UserListQuery {
	values := r.URL.Query()

	var query models.UserListQuery

	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil {
		query.Limit = limit
	}

	if raw := values.Get("verified"); raw != "" {
		if verified, err := strconv.ParseBool(raw); err == nil {
			query.Verified = &verified
		}
	}
	if raw := values.Get("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			query.Active = &active
		}
	}

	query.Search = values.Get("search")
	query.SearchIn = models.SearchField(values.Get("search_in"))
	query.SortBy = models.SortField(values.Get("sort_by"))

	if desc, err := strconv.ParseBool(values.Get("sort_desc")); err == nil {
		query.SortDesc = desc
	}

	return query
}
