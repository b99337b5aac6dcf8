package services

import (
	"fmt"
	"strings"

	"mechadex/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	reasonRequired = "This field is required."
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var validate = validator.New()

// MechInput is the user-supplied data for creating or updating a mech.
type MechInput struct {
	Name     string
	Series   string
	Category string
}

// AttackInput is the user-supplied data for creating or updating an attack.
// AttackPotency is nil when the form value was missing or not an integer.
type AttackInput struct {
	Name          string
	AttackPotency *int
	MechID        uint
}

type fieldChecker struct {
	errs []FieldError
}

func (c *fieldChecker) fail(field, reason string) {
	c.errs = append(c.errs, FieldError{Field: field, Reason: reason})
}

// length checks requiredness first, then the rune length bounds.
func (c *fieldChecker) length(field, value string, min, max int) {
	if err := validate.Var(value, "required"); err != nil {
		c.fail(field, reasonRequired)
		return
	}
	if err := validate.Var(value, fmt.Sprintf("min=%d,max=%d", min, max)); err != nil {
		c.fail(field, fmt.Sprintf("Field must be between %d and %d characters long.", min, max))
	}
}

func (c *fieldChecker) required(field string, value interface{}) {
	if err := validate.Var(value, "required"); err != nil {
		c.fail(field, reasonRequired)
	}
}

func (c *fieldChecker) result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.errs}
}

// ValidateMech checks a mech form and returns the normalized mech.
func ValidateMech(in MechInput) (*models.Mech, error) {
	var c fieldChecker
	name := strings.TrimSpace(in.Name)
	series := strings.TrimSpace(in.Series)

	c.length("name", name, 5, 80)
	c.length("series", series, 5, 100)
	category, err := models.ParseMechCategory(in.Category)
	if err != nil {
		c.fail("category", "Not a valid choice.")
	}
	if err := c.result(); err != nil {
		return nil, err
	}
	return &models.Mech{Name: name, Series: series, Category: category}, nil
}

// ValidateAttack checks an attack form and returns the normalized attack.
func ValidateAttack(in AttackInput) (*models.Attack, error) {
	var c fieldChecker
	name := strings.TrimSpace(in.Name)

	c.length("name", name, 3, 80)
	c.required("attack_potency", in.AttackPotency)
	c.required("mech", in.MechID)
	if err := c.result(); err != nil {
		return nil, err
	}
	return &models.Attack{Name: name, AttackPotency: *in.AttackPotency, MechID: in.MechID}, nil
}

// ValidateCredentials checks a signup form.
func ValidateCredentials(username, password string) error {
	var c fieldChecker
	// blank usernames are rejected, but the stored username is not trimmed
	if strings.TrimSpace(username) == "" {
		c.fail("username", reasonRequired)
	} else {
		c.length("username", username, 1, 80)
	}
	c.required("password", password)
	if len(password) > maxPasswordBytes {
		c.fail("password", fmt.Sprintf("Password must be at most %d bytes long.", maxPasswordBytes))
	}
	return c.result()
}

// ValidateLogin checks that both login fields were supplied.
func ValidateLogin(username, password string) error {
	var c fieldChecker
	c.required("username", username)
	c.required("password", password)
	return c.result()
}
