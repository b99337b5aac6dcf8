package handlers

import (
	"errors"
	"fmt"

	"mechadex/internal/models"
	"mechadex/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	msgMechCreated = "New unit was created successfully."
	msgMechUpdated = "Mech's info has been successfully updated."
	msgNoSuchMech  = "No mech with that ID exists."
)

// MechHandler serves the home page and the mech pages.
type MechHandler struct {
	catalog *services.CatalogService
}

// NewMechHandler creates a new MechHandler.
func NewMechHandler(catalog *services.CatalogService) *MechHandler {
	return &MechHandler{catalog: catalog}
}

// RegisterRoutes registers the mech routes. guard protects every route that
// is not public.
func (h *MechHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Get("/", h.HandleHome)
	router.Get("/new_mech", guard, h.HandleNewMechForm)
	router.Post("/new_mech", guard, h.HandleCreateMech)
	router.Get("/mech/:mech_id", guard, h.HandleMechDetail)
	router.Post("/mech/:mech_id", guard, h.HandleUpdateMech)
}

// HandleHome lists every mech.
func (h *MechHandler) HandleHome(c *fiber.Ctx) error {
	mechs, err := h.catalog.ListMechs()
	if err != nil {
		return serverError(c, err)
	}
	return render(c, fiber.StatusOK, "home", fiber.Map{"Mechs": mechs})
}

// HandleNewMechForm renders the empty mech form.
func (h *MechHandler) HandleNewMechForm(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "mech_form", mechFormData("/new_mech", services.MechInput{}))
}

// HandleCreateMech stores a new mech and redirects to its page.
func (h *MechHandler) HandleCreateMech(c *fiber.Ctx) error {
	in := mechInput(c)
	mech, err := h.catalog.CreateMech(in)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			data := mechFormData("/new_mech", in)
			data["Errors"] = validationErr.ByField()
			return render(c, fiber.StatusUnprocessableEntity, "mech_form", data)
		}
		return serverError(c, err)
	}
	return redirectWithFlash(c, fmt.Sprintf("/mech/%d", mech.ID), msgMechCreated)
}

// HandleMechDetail shows a mech with its attacks and the update form.
func (h *MechHandler) HandleMechDetail(c *fiber.Ctx) error {
	id, ok := paramID(c, "mech_id")
	if !ok {
		return notFound(c, msgNoSuchMech)
	}
	mech, err := h.catalog.GetMech(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, msgNoSuchMech)
		}
		return serverError(c, err)
	}

	data := mechFormData(c.Path(), services.MechInput{
		Name:     mech.Name,
		Series:   mech.Series,
		Category: string(mech.Category),
	})
	data["Mech"] = mech
	return render(c, fiber.StatusOK, "mech_detail", data)
}

// HandleUpdateMech overwrites a mech's fields.
func (h *MechHandler) HandleUpdateMech(c *fiber.Ctx) error {
	id, ok := paramID(c, "mech_id")
	if !ok {
		return notFound(c, msgNoSuchMech)
	}

	in := mechInput(c)
	mech, err := h.catalog.UpdateMech(id, in)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrNotFound):
			return notFound(c, msgNoSuchMech)
		case errors.As(err, &validationErr):
			current, getErr := h.catalog.GetMech(id)
			if getErr != nil {
				return serverError(c, getErr)
			}
			data := mechFormData(c.Path(), in)
			data["Mech"] = current
			data["Errors"] = validationErr.ByField()
			return render(c, fiber.StatusUnprocessableEntity, "mech_detail", data)
		default:
			return serverError(c, err)
		}
	}
	return redirectWithFlash(c, fmt.Sprintf("/mech/%d", mech.ID), msgMechUpdated)
}

func mechInput(c *fiber.Ctx) services.MechInput {
	return services.MechInput{
		Name:     c.FormValue("name"),
		Series:   c.FormValue("series"),
		Category: c.FormValue("category"),
	}
}

func mechFormData(action string, form services.MechInput) fiber.Map {
	return fiber.Map{
		"Action":     action,
		"Form":       form,
		"Categories": models.MechCategories,
	}
}
