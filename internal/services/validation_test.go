package services_test

import (
	"strings"
	"testing"

	"mechadex/internal/models"
	"mechadex/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMechBounds(t *testing.T) {
	tests := []struct {
		name     string
		in       services.MechInput
		badField string
	}{
		{"shortest name", services.MechInput{Name: "Zeta!", Series: "Zeta Gundam"}, ""},
		{"name too short", services.MechInput{Name: "Zeta", Series: "Zeta Gundam"}, "name"},
		{"longest name", services.MechInput{Name: strings.Repeat("a", 80), Series: "Zeta Gundam"}, ""},
		{"name too long", services.MechInput{Name: strings.Repeat("a", 81), Series: "Zeta Gundam"}, "name"},
		{"series too long", services.MechInput{Name: "Zeta Gundam", Series: strings.Repeat("s", 101)}, "series"},
		{"multibyte name counts runes", services.MechInput{Name: "ゲッターロボ", Series: "Getter Robo"}, ""},
		{"blank name", services.MechInput{Name: "     ", Series: "Zeta Gundam"}, "name"},
		{"unknown category", services.MechInput{Name: "Zeta Gundam", Series: "Zeta Gundam", Category: "super"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mech, err := services.ValidateMech(tt.in)
			if tt.badField == "" {
				require.NoError(t, err)
				assert.NotNil(t, mech)
				return
			}
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Reason(tt.badField))
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestValidateMechNormalizes(t *testing.T) {
	mech, err := services.ValidateMech(services.MechInput{Name: "  Grendizer ", Series: "UFO Robot Grendizer", Category: "Real"})
	require.NoError(t, err)
	assert.Equal(t, "Grendizer", mech.Name)
	assert.Equal(t, models.CategoryReal, mech.Category)
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, services.ValidateCredentials("VagrantGuy", "password"))

	err := services.ValidateCredentials(strings.Repeat("u", 81), strings.Repeat("p", 73))
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Reason("username"))
	assert.NotEmpty(t, verr.Reason("password"))
	assert.Contains(t, verr.Error(), "validation failed")
	assert.Len(t, verr.ByField(), 2)
}

func TestValidateCredentialsBlankUsername(t *testing.T) {
	for _, username := range []string{"", "   ", "\t\n"} {
		err := services.ValidateCredentials(username, "password")
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr, "username %q", username)
		assert.Equal(t, "This field is required.", verr.Reason("username"))
	}

	assert.NoError(t, services.ValidateCredentials(" VagrantGuy ", "password"))
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, services.ValidateLogin("VagrantGuy", "password"))

	err := services.ValidateLogin("", "password")
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required.", verr.Reason("username"))
	assert.Empty(t, verr.Reason("password"))
}
