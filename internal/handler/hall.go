package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
)

// HallStore is the persistence surface for hall listings, satisfied by
// *repository.HallRepo.
type HallStore interface {
	List(ctx context.Context) ([]*model.Hall, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hall, error)
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	Create(ctx context.Context, h *model.Hall) error
	Update(ctx context.Context, h *model.Hall) error
	Delete(ctx context.Context, id, ownerID uint64) error
}

// HallHandler implements the public browse endpoints and the owner-scoped
// hall mutations.
type HallHandler struct {
	Halls     HallStore
	UploadDir string
}

func NewHallHandler(halls HallStore, uploadDir string) *HallHandler {
	if halls == nil {
		panic("nil store passed to NewHallHandler")
	}
	return &HallHandler{Halls: halls, UploadDir: uploadDir}
}

type hallReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Capacity    uint32   `json:"capacity"`
	Images      []string `json:"images"`
	Services    []string `json:"services"`
}

func (r *hallReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	if r.Name == "" || r.Description == "" || r.Location == "" {
		return "name, description and location are required"
	}
	if r.Price <= 0 || r.Capacity == 0 {
		return "price and capacity must be positive numbers"
	}
	return ""
}

// GetAll handles GET /halls/get: the public listing with owner names and
// rating aggregates, newest first.
func (h *HallHandler) GetAll(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	halls, err := h.Halls.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if halls == nil {
		halls = []*model.Hall{}
	}
	return c.JSON(http.StatusOK, echo.Map{"halls": halls})
}

// GetOwner handles GET /halls/getOwner: the acting owner's halls.
func (h *HallHandler) GetOwner(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	halls, err := h.Halls.ListByOwner(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if halls == nil {
		halls = []*model.Hall{}
	}
	return c.JSON(http.StatusOK, echo.Map{"halls": halls})
}

// Detail handles GET /halls/detail?id=.
func (h *HallHandler) Detail(c echo.Context) error {
	id, err := idQueryParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall id is required"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall": hall})
}

// Add handles POST /halls/add (owner only).
func (h *HallHandler) Add(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	hall := &model.Hall{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Images:      req.Images,
		Services:    req.Services,
		OwnerID:     ownerID,
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Halls.Create(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hall"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hall": hall})
}

// Update handles PUT /halls/update?id= (owner only, object-level). The
// owner filter lives in the repository; a hall belonging to someone else is
// reported as not found.
func (h *HallHandler) Update(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := idQueryParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall id is required"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	hall := &model.Hall{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Images:      req.Images,
		Services:    req.Services,
		OwnerID:     ownerID,
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Halls.Update(ctx, hall); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall": hall})
}

// Delete handles DELETE /halls/delete?id= (owner only, object-level).
// Favorites, bookings and ratings on the hall are removed by the database
// cascade.
func (h *HallHandler) Delete(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := idQueryParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall id is required"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Halls.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UploadImages handles POST /halls/uploadImages (owner only, multipart field
// images[], max 5MB each). Files are validated and stored one by one;
// per-file failures are reported alongside the successes, and the request
// only fails outright when nothing could be stored.
func (h *HallHandler) UploadImages(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no files uploaded"})
	}
	files := form.File["images[]"]
	if len(files) == 0 {
		files = form.File["images"]
	}
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no files uploaded"})
	}

	var (
		uploaded []string
		failures []string
	)
	for _, fh := range files {
		url, err := saveUpload(fh, h.UploadDir, "halls", "hall", ownerID, maxHallImageSize)
		if err != nil {
			failures = append(failures, fh.Filename+": "+err.Error())
			continue
		}
		uploaded = append(uploaded, url)
	}
	if len(uploaded) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "failed to upload images: " + strings.Join(failures, ", "),
		})
	}
	if failures == nil {
		failures = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"images": uploaded, "errors": failures})
}
