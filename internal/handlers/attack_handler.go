package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mechadex/internal/models"
	"mechadex/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	msgAttackCreated = "New attack was created successfully."
	msgAttackUpdated = "Attack has been successfully updated."
	msgAttackDeleted = "Attack has been successfully deleted."
	msgNoSuchAttack  = "No attack with that ID exists for this mech."

	reasonNotInteger   = "Not a valid integer value."
	reasonInvalidMech  = "Not a valid choice."
	fieldAttackPotency = "attack_potency"
	fieldMech          = "mech"
)

// attackForm holds the raw form values so they can be redisplayed as typed.
type attackForm struct {
	Name          string
	AttackPotency string
	Mech          string
}

// AttackHandler serves the attack pages.
type AttackHandler struct {
	catalog *services.CatalogService
}

// NewAttackHandler creates a new AttackHandler.
func NewAttackHandler(catalog *services.CatalogService) *AttackHandler {
	return &AttackHandler{catalog: catalog}
}

// RegisterRoutes registers the attack routes behind guard.
func (h *AttackHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Get("/new_attack", guard, h.HandleNewAttackForm)
	router.Post("/new_attack", guard, h.HandleCreateAttack)
	router.Get("/attack/:mech_id/:attack_id", guard, h.HandleAttackDetail)
	router.Post("/attack/:mech_id/:attack_id", guard, h.HandleUpdateAttack)
	router.Post("/delete_attack/:mech_id/:attack_id", guard, h.HandleDeleteAttack)
}

// HandleNewAttackForm renders the empty attack form.
func (h *AttackHandler) HandleNewAttackForm(c *fiber.Ctx) error {
	data, err := h.formData("/new_attack", attackForm{})
	if err != nil {
		return serverError(c, err)
	}
	return render(c, fiber.StatusOK, "attack_form", data)
}

// HandleCreateAttack stores a new attack and redirects to its page.
func (h *AttackHandler) HandleCreateAttack(c *fiber.Ctx) error {
	form := readAttackForm(c, "")
	attack, err := h.catalog.CreateAttack(form.input())
	if err != nil {
		fields, ok := attackFieldErrors(form, err)
		if !ok {
			return serverError(c, err)
		}
		data, dataErr := h.formData("/new_attack", form)
		if dataErr != nil {
			return serverError(c, dataErr)
		}
		data["Errors"] = fields
		return render(c, fiber.StatusUnprocessableEntity, "attack_form", data)
	}
	return redirectWithFlash(c, attackPath(attack), msgAttackCreated)
}

// HandleAttackDetail shows an attack and its update form.
func (h *AttackHandler) HandleAttackDetail(c *fiber.Ctx) error {
	attack, err := h.lookup(c)
	if err != nil {
		return h.lookupFailed(c, err)
	}

	data, err := h.formData(c.Path(), attackForm{
		Name:          attack.Name,
		AttackPotency: strconv.Itoa(attack.AttackPotency),
		Mech:          strconv.FormatUint(uint64(attack.MechID), 10),
	})
	if err != nil {
		return serverError(c, err)
	}
	data["Attack"] = attack
	return render(c, fiber.StatusOK, "attack_detail", data)
}

// HandleUpdateAttack overwrites an attack. A missing mech field keeps the
// attack's current mech.
func (h *AttackHandler) HandleUpdateAttack(c *fiber.Ctx) error {
	current, err := h.lookup(c)
	if err != nil {
		return h.lookupFailed(c, err)
	}

	form := readAttackForm(c, strconv.FormatUint(uint64(current.MechID), 10))
	attack, err := h.catalog.UpdateAttack(current.ID, form.input())
	if err != nil {
		fields, ok := attackFieldErrors(form, err)
		if !ok {
			return serverError(c, err)
		}
		data, dataErr := h.formData(c.Path(), form)
		if dataErr != nil {
			return serverError(c, dataErr)
		}
		data["Attack"] = current
		data["Errors"] = fields
		return render(c, fiber.StatusUnprocessableEntity, "attack_detail", data)
	}
	return redirectWithFlash(c, attackPath(attack), msgAttackUpdated)
}

// HandleDeleteAttack removes an attack and returns to its mech.
func (h *AttackHandler) HandleDeleteAttack(c *fiber.Ctx) error {
	attack, err := h.lookup(c)
	if err != nil {
		return h.lookupFailed(c, err)
	}
	if err := h.catalog.DeleteAttack(attack.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, msgNoSuchAttack)
		}
		return serverError(c, err)
	}
	return redirectWithFlash(c, fmt.Sprintf("/mech/%d", attack.MechID), msgAttackDeleted)
}

// lookup loads the attack named by the route, which must belong to the
// mech named by the route.
func (h *AttackHandler) lookup(c *fiber.Ctx) (*models.Attack, error) {
	mechID, ok := paramID(c, "mech_id")
	if !ok {
		return nil, services.ErrNotFound
	}
	attackID, ok := paramID(c, "attack_id")
	if !ok {
		return nil, services.ErrNotFound
	}
	attack, err := h.catalog.GetAttack(attackID)
	if err != nil {
		return nil, err
	}
	if attack.MechID != mechID {
		return nil, services.ErrNotFound
	}
	return attack, nil
}

func (h *AttackHandler) lookupFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, msgNoSuchAttack)
	}
	return serverError(c, err)
}

func (h *AttackHandler) formData(action string, form attackForm) (fiber.Map, error) {
	mechs, err := h.catalog.ListMechs()
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"Action": action,
		"Form":   form,
		"Mechs":  mechs,
	}, nil
}

// readAttackForm reads the posted fields; defaultMech is used when the mech
// field is absent.
func readAttackForm(c *fiber.Ctx, defaultMech string) attackForm {
	return attackForm{
		Name:          c.FormValue("name"),
		AttackPotency: strings.TrimSpace(c.FormValue(fieldAttackPotency)),
		Mech:          strings.TrimSpace(c.FormValue(fieldMech, defaultMech)),
	}
}

func (f attackForm) input() services.AttackInput {
	in := services.AttackInput{Name: f.Name}
	if potency, err := strconv.Atoi(f.AttackPotency); err == nil {
		in.AttackPotency = &potency
	}
	if mechID, err := strconv.ParseUint(f.Mech, 10, 64); err == nil {
		in.MechID = uint(mechID)
	}
	return in
}

// attackFieldErrors turns a catalogue error into per-field messages. It
// reports false for errors that are not the user's to fix.
func attackFieldErrors(form attackForm, err error) (map[string]string, bool) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		fields := validationErr.ByField()
		if _, failed := fields[fieldAttackPotency]; failed && form.AttackPotency != "" {
			fields[fieldAttackPotency] = reasonNotInteger
		}
		if _, failed := fields[fieldMech]; failed && form.Mech != "" {
			fields[fieldMech] = reasonInvalidMech
		}
		return fields, true
	case errors.Is(err, services.ErrNotFound):
		// input was valid, so only the referenced mech can be missing
		return map[string]string{fieldMech: reasonInvalidMech}, true
	default:
		return nil, false
	}
}

func attackPath(attack *models.Attack) string {
	return fmt.Sprintf("/attack/%d/%d", attack.MechID, attack.ID)
}
