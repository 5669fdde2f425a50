package http

import (
	"net/http"

	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/internal/permissions"
)

type navigationCreatePayload struct {
	PageKey            string   `json:"page_key"`
	DisplayName        string   `json:"display_name"`
	ItemType           string   `json:"item_type"`
	SortOrder          int      `json:"sort_order"`
	GuestSortOrder     *int     `json:"guest_sort_order,omitempty"`
	MemberSortOrder    *int     `json:"member_sort_order,omitempty"`
	IsVisibleToGuests  bool     `json:"is_visible_to_guests"`
	IsVisibleToMembers bool     `json:"is_visible_to_members"`
	IsActive           bool     `json:"is_active"`
	RequiredRoles      []string `json:"required_roles,omitempty"`
}

type navigationUpdatePayload struct {
	DisplayName        *string  `json:"display_name,omitempty"`
	SortOrder          *int     `json:"sort_order,omitempty"`
	GuestSortOrder     *int     `json:"guest_sort_order,omitempty"`
	MemberSortOrder    *int     `json:"member_sort_order,omitempty"`
	IsVisibleToGuests  *bool    `json:"is_visible_to_guests,omitempty"`
	IsVisibleToMembers *bool    `json:"is_visible_to_members,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
	IsSystemItem       *bool    `json:"is_system_item,omitempty"`
	RequiredRoles      []string `json:"required_roles,omitempty"`
}

func (api *AdminAPI) registerNavigationRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "navigation")
	mux.HandleFunc("GET "+root, api.handleNavigationList)
	mux.HandleFunc("POST "+root, api.handleNavigationCreate)
	mux.HandleFunc("GET "+root+"/visible", api.handleNavigationVisible)
	mux.HandleFunc("GET "+root+"/{pageKey}", api.handleNavigationGet)
	mux.HandleFunc("PUT "+root+"/{pageKey}", api.handleNavigationUpdate)
}

func (api *AdminAPI) handleNavigationList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.NavigationRead) {
		return
	}
	records, err := api.navigation.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleNavigationVisible(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	records, err := api.navigation.VisibleEntries(r.Context(), viewerFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleNavigationGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.NavigationRead) {
		return
	}
	record, err := api.navigation.Get(r.Context(), r.PathValue("pageKey"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleNavigationCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.NavigationCreate) {
		return
	}
	var payload navigationCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.navigation.Create(r.Context(), navigation.CreateEntryInput{
		PageKey:            payload.PageKey,
		DisplayName:        payload.DisplayName,
		ItemType:           payload.ItemType,
		SortOrder:          payload.SortOrder,
		GuestSortOrder:     payload.GuestSortOrder,
		MemberSortOrder:    payload.MemberSortOrder,
		IsVisibleToGuests:  payload.IsVisibleToGuests,
		IsVisibleToMembers: payload.IsVisibleToMembers,
		IsActive:           payload.IsActive,
		RequiredRoles:      payload.RequiredRoles,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleNavigationUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.NavigationUpdate) {
		return
	}
	var payload navigationUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.navigation.Update(r.Context(), navigation.UpdateEntryInput{
		PageKey:            r.PathValue("pageKey"),
		DisplayName:        payload.DisplayName,
		SortOrder:          payload.SortOrder,
		GuestSortOrder:     payload.GuestSortOrder,
		MemberSortOrder:    payload.MemberSortOrder,
		IsVisibleToGuests:  payload.IsVisibleToGuests,
		IsVisibleToMembers: payload.IsVisibleToMembers,
		IsActive:           payload.IsActive,
		IsSystemItem:       payload.IsSystemItem,
		RequiredRoles:      payload.RequiredRoles,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
