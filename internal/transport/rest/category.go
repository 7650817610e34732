package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/schema"
	"github.com/heartmarshall/classifieds-backend/internal/service/category"
	"github.com/heartmarshall/classifieds-backend/pkg/ctxutil"
)

type categoryService interface {
	Create(ctx context.Context, input category.CreateInput) (*domain.Category, error)
	Update(ctx context.Context, input category.UpdateInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*category.Details, error)
	List(ctx context.Context, parentID *uuid.UUID, activeOnly bool) ([]domain.Category, error)
	Schema(ctx context.Context, id uuid.UUID) (*jsonschema.Schema, error)
	Preview(ctx context.Context, input category.PreviewInput) (schema.PreviewResult, error)
}

// CategoryHandler serves the /categories endpoints.
type CategoryHandler struct {
	svc categoryService
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc categoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: logger.With("handler", "category")}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type fieldDTO struct {
	FieldName   string   `json:"fieldName"`
	FieldType   string   `json:"fieldType"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type categoryResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Description    string     `json:"description"`
	Icon           string     `json:"icon"`
	ParentCategory *string    `json:"parentCategory"`
	CustomFields   []fieldDTO `json:"customFields"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type categoryDetailsResponse struct {
	Category      categoryResponse   `json:"category"`
	Subcategories []categoryResponse `json:"subcategories"`
}

type createCategoryRequest struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Icon           string     `json:"icon"`
	ParentCategory *uuid.UUID `json:"parentCategory"`
	CustomFields   []fieldDTO `json:"customFields"`
}

// optionalParent distinguishes an absent parentCategory key from an
// explicit null, which detaches the category from its parent.
type optionalParent struct {
	set bool
	id  *uuid.UUID
}

func (p *optionalParent) UnmarshalJSON(data []byte) error {
	p.set = true
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	p.id = &id
	return nil
}

type updateCategoryRequest struct {
	Name           *string        `json:"name"`
	Description    *string        `json:"description"`
	Icon           *string        `json:"icon"`
	ParentCategory optionalParent `json:"parentCategory"`
	CustomFields   *[]fieldDTO    `json:"customFields"`
	IsActive       *bool          `json:"isActive"`
}

type previewRequest struct {
	CustomFields map[string]any `json:"customFields"`
	// Fields, when present, is a draft schema used instead of the stored one.
	Fields *[]fieldDTO `json:"fields"`
}

type violationDTO struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type previewResponse struct {
	Valid      bool           `json:"valid"`
	Normalized map[string]any `json:"normalized"`
	Violations []violationDTO `json:"violations"`
}

func toFieldDefinitions(dtos []fieldDTO) []domain.FieldDefinition {
	out := make([]domain.FieldDefinition, len(dtos))
	for i, d := range dtos {
		out[i] = domain.FieldDefinition{
			Name:        d.FieldName,
			Type:        domain.FieldType(d.FieldType),
			Options:     d.Options,
			Required:    d.Required,
			Placeholder: d.Placeholder,
		}
	}
	return out
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	fields := make([]fieldDTO, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = fieldDTO{
			FieldName:   f.Name,
			FieldType:   f.Type.String(),
			Options:     f.Options,
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}
	}

	var parent *string
	if c.ParentID != nil {
		s := c.ParentID.String()
		parent = &s
	}

	return categoryResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Slug:           c.Slug,
		Description:    c.Description,
		Icon:           c.Icon,
		ParentCategory: parent,
		CustomFields:   fields,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCategoryList(categories []domain.Category) []categoryResponse {
	out := make([]categoryResponse, len(categories))
	for i := range categories {
		out[i] = toCategoryResponse(&categories[i])
	}
	return out
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// List handles GET /categories?parent=<id|null>. Without parent (or with
// "null") the top-level categories are returned. Admins may pass
// includeInactive=true.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var parentID *uuid.UUID
	if p := q.Get("parent"); p != "" && p != "null" {
		id, err := uuid.Parse(p)
		if err != nil {
			writeValidation(w, []domain.FieldError{{Field: "parent", Message: "must be a UUID or null"}})
			return
		}
		parentID = &id
	}

	activeOnly := !(q.Get("includeInactive") == "true" && ctxutil.IsAdminCtx(r.Context()))

	categories, err := h.svc.List(r.Context(), parentID, activeOnly)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryList(categories))
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	details, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryDetailsResponse{
		Category:      toCategoryResponse(details.Category),
		Subcategories: toCategoryList(details.Subcategories),
	})
}

// Schema handles GET /categories/{id}/schema.
func (h *CategoryHandler) Schema(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Schema(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), category.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		ParentID:    req.ParentCategory,
		Fields:      toFieldDefinitions(req.CustomFields),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(created))
}

// Update handles PUT /categories/{id}. Absent keys are left unchanged.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := category.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		ParentID:    req.ParentCategory.id,
		ClearParent: req.ParentCategory.set && req.ParentCategory.id == nil,
		IsActive:    req.IsActive,
	}
	if req.CustomFields != nil {
		fields := toFieldDefinitions(*req.CustomFields)
		input.Fields = &fields
	}

	updated, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(updated))
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Preview handles POST /categories/{id}/preview.
func (h *CategoryHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req previewRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := category.PreviewInput{CategoryID: id, CustomFields: req.CustomFields}
	if req.Fields != nil {
		fields := toFieldDefinitions(*req.Fields)
		input.Fields = &fields
	}

	result, err := h.svc.Preview(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := previewResponse{
		Valid:      result.Valid,
		Normalized: result.Normalized.Raw(),
		Violations: make([]violationDTO, len(result.Violations)),
	}
	for i, v := range result.Violations {
		resp.Violations[i] = violationDTO{Code: v.Code.String(), Field: v.Field, Message: v.Message()}
	}
	writeJSON(w, http.StatusOK, resp)
}
