package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/service/listing"
	"github.com/heartmarshall/classifieds-backend/pkg/ctxutil"
)

type listingService interface {
	Create(ctx context.Context, input listing.CreateInput) (*domain.Listing, error)
	Update(ctx context.Context, input listing.UpdateInput) (*domain.Listing, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	View(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	MyListings(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	List(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error)
	Search(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error)
}

// ListingHandler serves the /listings endpoints.
type ListingHandler struct {
	svc            listingService
	log            *slog.Logger
	maxImages      int
	maxUploadBytes int64
}

// NewListingHandler creates a ListingHandler. Request bodies larger than
// maxUploadBytes are rejected with 413.
func NewListingHandler(svc listingService, logger *slog.Logger, maxImages int, maxUploadBytes int64) *ListingHandler {
	return &ListingHandler{
		svc:            svc,
		log:            logger.With("handler", "listing"),
		maxImages:      maxImages,
		maxUploadBytes: maxUploadBytes,
	}
}

// multipartMemory is how much of a multipart body is held in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type coordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationDTO struct {
	City        string          `json:"city"`
	Area        string          `json:"area,omitempty"`
	Coordinates *coordinatesDTO `json:"coordinates,omitempty"`
}

type imageDTO struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type listingResponse struct {
	ID           string         `json:"id"`
	User         string         `json:"user"`
	Category     string         `json:"category"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	Location     locationDTO    `json:"location"`
	Images       []imageDTO     `json:"images"`
	CustomFields map[string]any `json:"customFields"`
	Status       string         `json:"status"`
	Views        int64          `json:"views"`
	ExpiresAt    time.Time      `json:"expiresAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type listingPageResponse struct {
	Listings    []listingResponse `json:"listings"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func toLocation(l domain.Location) locationDTO {
	out := locationDTO{City: l.City, Area: l.Area}
	if l.Coordinates != nil {
		out.Coordinates = &coordinatesDTO{Lat: l.Coordinates.Lat, Lng: l.Coordinates.Lng}
	}
	return out
}

func toListingResponse(l *domain.Listing) listingResponse {
	images := make([]imageDTO, len(l.Images))
	for i, img := range l.Images {
		images[i] = imageDTO{URL: img.URL, PublicID: img.PublicID}
	}
	return listingResponse{
		ID:           l.ID.String(),
		User:         l.UserID.String(),
		Category:     l.CategoryID.String(),
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		Location:     toLocation(l.Location),
		Images:       images,
		CustomFields: l.CustomFields.Raw(),
		Status:       l.Status.String(),
		Views:        l.Views,
		ExpiresAt:    l.ExpiresAt,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toListingList(listings []domain.Listing) []listingResponse {
	out := make([]listingResponse, len(listings))
	for i := range listings {
		out[i] = toListingResponse(&listings[i])
	}
	return out
}

func toPageResponse(p domain.ListingPage) listingPageResponse {
	return listingPageResponse{
		Listings:    toListingList(p.Listings),
		Total:       p.Total,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
	}
}

// ---------------------------------------------------------------------------
// Read handlers
// ---------------------------------------------------------------------------

// List handles GET /listings.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseFilter(r, false)
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page))
}

// Search handles GET /listings/search. Query keys other than the fixed
// filters are attribute predicates.
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseFilter(r, true)
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	page, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page))
}

// Get handles GET /listings/{id} and counts a view.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	l, err := h.svc.View(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(l))
}

// MyListings handles GET /listings/user/my-listings.
func (h *ListingHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	listings, err := h.svc.MyListings(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingList(listings))
}

// ---------------------------------------------------------------------------
// Write handlers
// ---------------------------------------------------------------------------

// Create handles POST /listings (multipart/form-data).
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer form.close()

	errs := form.errs
	categoryID, err := uuid.Parse(strings.TrimSpace(r.FormValue("category")))
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must be a UUID"})
	}
	if form.status != nil && *form.status != domain.ListingStatusActive {
		errs = append(errs, domain.FieldError{Field: "status", Message: "new listings are always active"})
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	created, err := h.svc.Create(r.Context(), listing.CreateInput{
		UserID:       userID,
		CategoryID:   categoryID,
		Details:      form.details,
		CustomFields: form.customFields,
		Images:       form.images,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toListingResponse(created))
}

// Update handles PUT /listings/{id} (multipart/form-data). The category
// cannot be changed.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer form.close()

	errs := form.errs
	var keep *[]string
	if _, present := r.Form["existingImages"]; present {
		ids, err := parseExistingImages(r.FormValue("existingImages"))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "existingImages", Message: "must be a JSON array of image IDs"})
		}
		keep = &ids
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	updated, err := h.svc.Update(r.Context(), listing.UpdateInput{
		ID:           id,
		UserID:       userID,
		Details:      form.details,
		CustomFields: form.customFields,
		Images:       form.images,
		KeepImages:   keep,
		Status:       form.status,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(updated))
}

// Delete handles DELETE /listings/{id}.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Request parsing
// ---------------------------------------------------------------------------

// listingForm is a parsed listing body. Plain field problems are collected
// in errs; the caller decides whether to submit.
type listingForm struct {
	details      listing.Details
	customFields map[string]any
	status       *domain.ListingStatus
	images       []listing.ImageUpload
	files        []multipart.File
	errs         []domain.FieldError
}

func (f *listingForm) close() {
	for _, file := range f.files {
		file.Close() //nolint:errcheck
	}
}

// parseForm reads a multipart (or urlencoded) listing body. location and
// customFields are JSON-encoded form values; images are file parts. It
// writes the response itself and returns false when the body is unusable.
func (h *ListingHandler) parseForm(w http.ResponseWriter, r *http.Request) (*listingForm, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		case errors.Is(err, http.ErrNotMultipart):
			if err := r.ParseForm(); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return nil, false
			}
		default:
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return nil, false
		}
	}

	form := &listingForm{
		details: listing.Details{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
		},
		customFields: map[string]any{},
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		form.errs = append(form.errs, domain.FieldError{Field: "price", Message: "must be a number"})
	}
	form.details.Price = price

	if raw := r.FormValue("location"); raw != "" {
		var loc locationDTO
		if err := decodeJSON(strings.NewReader(raw), &loc); err != nil {
			form.errs = append(form.errs, domain.FieldError{Field: "location", Message: "invalid JSON"})
		}
		form.details.Location = domain.Location{City: loc.City, Area: loc.Area}
		if loc.Coordinates != nil {
			form.details.Location.Coordinates = &domain.Coordinates{Lat: loc.Coordinates.Lat, Lng: loc.Coordinates.Lng}
		}
	}

	if raw := r.FormValue("customFields"); raw != "" {
		if err := decodeJSON(strings.NewReader(raw), &form.customFields); err != nil {
			form.errs = append(form.errs, domain.FieldError{Field: "customFields", Message: "invalid JSON object"})
		}
	}

	if raw := strings.TrimSpace(r.FormValue("status")); raw != "" {
		status := domain.ListingStatus(raw)
		form.status = &status
	}

	if r.MultipartForm != nil {
		headers := r.MultipartForm.File["images"]
		if h.maxImages > 0 && len(headers) > h.maxImages {
			form.errs = append(form.errs, domain.FieldError{Field: "images", Message: "max " + strconv.Itoa(h.maxImages) + " images"})
			return form, true
		}
		for _, fh := range headers {
			file, err := fh.Open()
			if err != nil {
				form.close()
				h.log.ErrorContext(r.Context(), "open upload", slog.String("error", err.Error()))
				writeError(w, http.StatusBadRequest, "invalid image upload")
				return nil, false
			}
			form.files = append(form.files, file)
			form.images = append(form.images, listing.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Body:        file,
			})
		}
	}

	return form, true
}

// parseExistingImages decodes the existingImages form value: a JSON array
// of public IDs or of image objects as returned by the API. An empty value
// keeps no images.
func parseExistingImages(raw string) ([]string, error) {
	ids := []string{}
	if strings.TrimSpace(raw) == "" {
		return ids, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	for _, item := range items {
		var id string
		if err := json.Unmarshal(item, &id); err != nil {
			var img imageDTO
			if err := json.Unmarshal(item, &img); err != nil {
				return nil, err
			}
			id = img.PublicID
		}
		if id == "" {
			return nil, errors.New("empty image id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// filterKeys are the fixed query parameters; on /listings/search every
// other key is an attribute predicate.
var filterKeys = map[string]bool{
	"category": true, "minPrice": true, "maxPrice": true, "city": true,
	"search": true, "status": true, "sort": true, "page": true, "limit": true,
}

func parseFilter(r *http.Request, withAttributes bool) (domain.ListingFilter, []domain.FieldError) {
	q := r.URL.Query()
	var (
		f    domain.ListingFilter
		errs []domain.FieldError
	)

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "category", Message: "must be a UUID"})
		} else {
			f.CategoryID = &id
		}
	}

	parsePrice := func(key string) *float64 {
		v := strings.TrimSpace(q.Get(key))
		if v == "" {
			return nil
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: key, Message: "must be a number"})
			return nil
		}
		return &n
	}
	f.MinPrice = parsePrice("minPrice")
	f.MaxPrice = parsePrice("maxPrice")

	parseInt := func(key string) int {
		v := strings.TrimSpace(q.Get(key))
		if v == "" {
			return 0
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: key, Message: "must be an integer"})
			return 0
		}
		return n
	}
	f.Page = parseInt("page")
	f.Limit = parseInt("limit")

	f.City = q.Get("city")
	f.Search = q.Get("search")
	f.Sort = q.Get("sort")
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		status := domain.ListingStatus(v)
		f.Status = &status
	}

	if withAttributes {
		for key, values := range q {
			if filterKeys[key] || len(values) == 0 {
				continue
			}
			if f.Attributes == nil {
				f.Attributes = make(map[string]string)
			}
			f.Attributes[key] = values[0]
		}
	}

	return f, errs
}
