package handlers

import (
	"errors"

	"github.com/dataflexghana/dataflexcomplete/internal/core/services"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/response"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles data bundle and gig catalog endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListBundles returns active bundles for agents
func (h *CatalogHandler) ListBundles(c *fiber.Ctx) error {
	bundles, err := h.catalogService.ListBundles(c.Context(), true)
	if err != nil {
		return response.InternalServerError(c, "Failed to load bundles")
	}
	return response.Success(c, "Bundles retrieved", fiber.Map{"bundles": bundles})
}

// ListAllBundles returns every bundle, active or not, for the admin
// panel
func (h *CatalogHandler) ListAllBundles(c *fiber.Ctx) error {
	bundles, err := h.catalogService.ListBundles(c.Context(), false)
	if err != nil {
		return response.InternalServerError(c, "Failed to load bundles")
	}
	return response.Success(c, "Bundles retrieved", fiber.Map{"bundles": bundles})
}

// CreateBundle adds a bundle to the catalog
func (h *CatalogHandler) CreateBundle(c *fiber.Ctx) error {
	var input services.BundleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	bundle, err := h.catalogService.CreateBundle(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName), errors.Is(err, services.ErrNegativePrice):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create bundle")
		}
	}

	return response.Created(c, "Bundle created", fiber.Map{"bundle": bundle})
}

// UpdateBundle updates a catalog bundle
func (h *CatalogHandler) UpdateBundle(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid bundle id")
	}

	var input services.BundleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	bundle, err := h.catalogService.UpdateBundle(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBundleNotFound):
			return response.NotFound(c, "Bundle not found")
		case errors.Is(err, services.ErrEmptyName), errors.Is(err, services.ErrNegativePrice):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update bundle")
		}
	}

	return response.Success(c, "Bundle updated", fiber.Map{"bundle": bundle})
}

// DeleteBundle removes a bundle from the catalog
func (h *CatalogHandler) DeleteBundle(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid bundle id")
	}

	if err := h.catalogService.DeleteBundle(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrBundleNotFound) {
			return response.NotFound(c, "Bundle not found")
		}
		return response.InternalServerError(c, "Failed to delete bundle")
	}

	return response.Success(c, "Bundle deleted", nil)
}

// ListGigs returns active gigs for agents
func (h *CatalogHandler) ListGigs(c *fiber.Ctx) error {
	gigs, err := h.catalogService.ListGigs(c.Context(), true)
	if err != nil {
		return response.InternalServerError(c, "Failed to load gigs")
	}
	return response.Success(c, "Gigs retrieved", fiber.Map{"gigs": gigs})
}

// ListAllGigs returns every gig for the admin panel
func (h *CatalogHandler) ListAllGigs(c *fiber.Ctx) error {
	gigs, err := h.catalogService.ListGigs(c.Context(), false)
	if err != nil {
		return response.InternalServerError(c, "Failed to load gigs")
	}
	return response.Success(c, "Gigs retrieved", fiber.Map{"gigs": gigs})
}

// CreateGig adds a gig to the catalog
func (h *CatalogHandler) CreateGig(c *fiber.Ctx) error {
	var input services.GigInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	gig, err := h.catalogService.CreateGig(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName),
			errors.Is(err, services.ErrNegativePrice),
			errors.Is(err, services.ErrNegativeCommission):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create gig")
		}
	}

	return response.Created(c, "Gig created", fiber.Map{"gig": gig})
}

// UpdateGig updates a catalog gig
func (h *CatalogHandler) UpdateGig(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid gig id")
	}

	var input services.GigInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	gig, err := h.catalogService.UpdateGig(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGigNotFound):
			return response.NotFound(c, "Gig not found")
		case errors.Is(err, services.ErrEmptyName),
			errors.Is(err, services.ErrNegativePrice),
			errors.Is(err, services.ErrNegativeCommission):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update gig")
		}
	}

	return response.Success(c, "Gig updated", fiber.Map{"gig": gig})
}

// DeleteGig removes a gig from the catalog
func (h *CatalogHandler) DeleteGig(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid gig id")
	}

	if err := h.catalogService.DeleteGig(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrGigNotFound) {
			return response.NotFound(c, "Gig not found")
		}
		return response.InternalServerError(c, "Failed to delete gig")
	}

	return response.Success(c, "Gig deleted", nil)
}
