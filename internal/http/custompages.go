package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/memberweb/cms/internal/custompages"
	"github.com/memberweb/cms/internal/permissions"
)

type pageCreatePayload struct {
	PageKey          string     `json:"page_key"`
	Title            string     `json:"title"`
	DisplayName      string     `json:"display_name"`
	Description      *string    `json:"description,omitempty"`
	IsActive         bool       `json:"is_active"`
	ShowInNavigation bool       `json:"show_in_navigation"`
	NavigationType   string     `json:"navigation_type"`
	ParentPageKey    string     `json:"parent_page_key,omitempty"`
	SortOrder        int        `json:"sort_order"`
	RequiredRoles    []string   `json:"required_roles,omitempty"`
	CreatedBy        *uuid.UUID `json:"created_by,omitempty"`
}

type pageUpdatePayload struct {
	Title            *string  `json:"title,omitempty"`
	DisplayName      *string  `json:"display_name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
	ShowInNavigation *bool    `json:"show_in_navigation,omitempty"`
	NavigationType   *string  `json:"navigation_type,omitempty"`
	ParentPageKey    *string  `json:"parent_page_key,omitempty"`
	SortOrder        *int     `json:"sort_order,omitempty"`
	RequiredRoles    []string `json:"required_roles,omitempty"`
}

func (api *AdminAPI) registerCustomPageRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("GET "+root+"/tree", api.handleNavigationTree)
	mux.HandleFunc("GET "+root+"/{pageKey}", api.handlePageGet)
	mux.HandleFunc("PUT "+root+"/{pageKey}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{pageKey}", api.handlePageDelete)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.PagesRead) {
		return
	}
	records, err := api.pages.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleNavigationTree(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	tree, err := api.pages.NavigationTree(r.Context(), viewerFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.PagesRead) {
		return
	}
	record, err := api.pages.Get(r.Context(), r.PathValue("pageKey"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.PagesCreate) {
		return
	}
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	input := custompages.CreatePageInput{
		PageKey:          payload.PageKey,
		Title:            payload.Title,
		DisplayName:      payload.DisplayName,
		Description:      payload.Description,
		IsActive:         payload.IsActive,
		ShowInNavigation: payload.ShowInNavigation,
		NavigationType:   payload.NavigationType,
		ParentPageKey:    payload.ParentPageKey,
		SortOrder:        payload.SortOrder,
		RequiredRoles:    payload.RequiredRoles,
	}
	if payload.CreatedBy != nil {
		input.CreatedBy = *payload.CreatedBy
	}
	record, err := api.pages.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.PagesUpdate) {
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.pages.Update(r.Context(), custompages.UpdatePageInput{
		PageKey:          r.PathValue("pageKey"),
		Title:            payload.Title,
		DisplayName:      payload.DisplayName,
		Description:      payload.Description,
		IsActive:         payload.IsActive,
		ShowInNavigation: payload.ShowInNavigation,
		NavigationType:   payload.NavigationType,
		ParentPageKey:    payload.ParentPageKey,
		SortOrder:        payload.SortOrder,
		RequiredRoles:    payload.RequiredRoles,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.PagesDelete) {
		return
	}
	if err := api.pages.Delete(r.Context(), r.PathValue("pageKey")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
