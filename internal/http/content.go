package http

import (
	"net/http"

	"github.com/memberweb/cms/internal/blocks"
	"github.com/memberweb/cms/internal/faqs"
	"github.com/memberweb/cms/internal/features"
	"github.com/memberweb/cms/internal/permissions"
)

type blockCreatePayload struct {
	Slot      string `json:"slot"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type faqSectionCreatePayload struct {
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type faqItemCreatePayload struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SortOrder int    `json:"sort_order"`
}

type featureCreatePayload struct {
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Icon      string `json:"icon,omitempty"`
	LinkURL   string `json:"link_url,omitempty"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

func (api *AdminAPI) registerContentRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root+"/{pageKey}/blocks", api.handleBlockList)
	mux.HandleFunc("POST "+root+"/{pageKey}/blocks", api.handleBlockCreate)
	mux.HandleFunc("DELETE "+joinPath(base, "blocks")+"/{id}", api.handleBlockDelete)
	mux.HandleFunc("GET "+root+"/{pageKey}/faqs", api.handleFAQList)
	mux.HandleFunc("POST "+root+"/{pageKey}/faqs", api.handleFAQSectionCreate)
	mux.HandleFunc("POST "+joinPath(base, "faqs")+"/{id}/items", api.handleFAQItemCreate)
	mux.HandleFunc("GET "+root+"/{pageKey}/features", api.handleFeatureList)
	mux.HandleFunc("POST "+root+"/{pageKey}/features", api.handleFeatureCreate)
}

func (api *AdminAPI) handleBlockList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.blocks == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceBlocks, permissions.ActionRead)) {
		return
	}
	if r.URL.Query().Get("rendered") == "true" {
		records, err := api.blocks.RenderForPage(r.Context(), r.PathValue("pageKey"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}
	records, err := api.blocks.ListForPage(r.Context(), r.PathValue("pageKey"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleBlockCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.blocks == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceBlocks, permissions.ActionCreate)) {
		return
	}
	var payload blockCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.blocks.Create(r.Context(), blocks.CreateBlockInput{
		PageKey:   r.PathValue("pageKey"),
		Slot:      payload.Slot,
		Title:     payload.Title,
		Content:   payload.Content,
		SortOrder: payload.SortOrder,
		IsActive:  payload.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleBlockDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.blocks == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceBlocks, permissions.ActionDelete)) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.blocks.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleFAQList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.faqs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceFAQs, permissions.ActionRead)) {
		return
	}
	records, err := api.faqs.ListForPage(r.Context(), r.PathValue("pageKey"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleFAQSectionCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.faqs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceFAQs, permissions.ActionCreate)) {
		return
	}
	var payload faqSectionCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.faqs.CreateSection(r.Context(), faqs.CreateSectionInput{
		PageKey:   r.PathValue("pageKey"),
		Title:     payload.Title,
		SortOrder: payload.SortOrder,
		IsActive:  payload.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleFAQItemCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.faqs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceFAQs, permissions.ActionCreate)) {
		return
	}
	sectionID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload faqItemCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.faqs.AddItem(r.Context(), faqs.AddItemInput{
		SectionID: sectionID,
		Question:  payload.Question,
		Answer:    payload.Answer,
		SortOrder: payload.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleFeatureList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.features == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceFeatures, permissions.ActionRead)) {
		return
	}
	records, err := api.features.ListForPage(r.Context(), r.PathValue("pageKey"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleFeatureCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.features == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, permissions.Join(permissions.ResourceFeatures, permissions.ActionCreate)) {
		return
	}
	var payload featureCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}
	record, err := api.features.Create(r.Context(), features.CreateSectionInput{
		PageKey:   r.PathValue("pageKey"),
		Title:     payload.Title,
		Body:      payload.Body,
		Icon:      payload.Icon,
		LinkURL:   payload.LinkURL,
		SortOrder: payload.SortOrder,
		IsActive:  payload.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}
