package handler

import (
	"errors"
	"strconv"

	"github.com/fekuna/ammodeals-service/internal/listing"
	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/fekuna/ammodeals-service/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ListingHandler struct {
	uc     listing.UseCase
	logger logger.ZapLogger
}

func NewListingHandler(uc listing.UseCase, log logger.ZapLogger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts the page, the JSON API and the health check.
func (h *ListingHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.RenderPage)
	r.Get("/health", h.Health)

	api := r.Group("/api/v1")
	api.Get("/listings", h.ListListings)
	api.Get("/listings/:id", h.GetListing)
	api.Get("/calibers", h.ListCalibers)
}

// ListListings handles GET /api/v1/listings.
func (h *ListingHandler) ListListings(c *fiber.Ctx) error {
	state, err := parseViewState(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_sort",
			Message: err.Error(),
		})
	}

	result, err := h.uc.ListListings(c.UserContext(), state)
	if err != nil {
		return h.internalError(c, "failed to list listings", err)
	}

	return c.JSON(result)
}

// GetListing handles GET /api/v1/listings/:id.
func (h *ListingHandler) GetListing(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_id",
			Message: "Listing ID must be an integer",
		})
	}

	l, err := h.uc.GetListing(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Listing not found",
			})
		}
		return h.internalError(c, "failed to get listing", err)
	}

	return c.JSON(l)
}

// ListCalibers handles GET /api/v1/calibers.
func (h *ListingHandler) ListCalibers(c *fiber.Ctx) error {
	return c.JSON(CalibersResponse{Calibers: h.uc.Calibers()})
}

// Health handles GET /health.
func (h *ListingHandler) Health(c *fiber.Ctx) error {
	n, err := h.uc.CatalogSize(c.UserContext())
	if err != nil {
		return h.internalError(c, "failed to read catalog", err)
	}

	return c.JSON(HealthResponse{
		Status:         "healthy",
		Listings:       n,
		CatalogVersion: h.uc.CatalogVersion(),
	})
}

func (h *ListingHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg, zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "Internal Server Error",
	})
}

// parseViewState reads q, caliber and sort from the query string.
func parseViewState(c *fiber.Ctx) (dto.ViewState, error) {
	sortBy, err := dto.ParseSortKey(c.Query("sort"))
	if err != nil {
		return dto.ViewState{}, err
	}
	return dto.DefaultViewState().
		WithQuery(c.Query("q")).
		WithCaliber(c.Query("caliber")).
		WithSort(sortBy), nil
}
