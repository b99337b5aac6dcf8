package views

import (
	"bytes"
	"strings"
	"testing"

	"mechadex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesEveryPage(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	for _, page := range []string{"home", "signup", "login", "mech_form", "mech_detail", "attack_form", "attack_detail", "not_found", "error"} {
		_, ok := e.pages[page]
		assert.True(t, ok, page)
	}
	_, ok := e.pages["layout"]
	assert.False(t, ok, "layout is not a page")
	_, ok = e.pages["partials"]
	assert.False(t, ok, "partials is not a page")
}

func TestRenderMechDetail(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	mech := &models.Mech{
		ID:       1,
		Name:     "Grendizer",
		Series:   "UFO Robot Grendizer",
		Category: models.CategorySuper,
		Attacks:  []models.Attack{{ID: 1, Name: "Space Thunder", AttackPotency: 1700, MechID: 1}},
	}
	var buf bytes.Buffer
	err := e.Render(&buf, "mech_detail", map[string]interface{}{
		"CurrentUser": &models.User{Username: "VagrantGuy"},
		"Mech":        mech,
		"Action":      "/mech/1",
		"Form":        map[string]string{"Name": "Grendizer", "Series": "UFO Robot Grendizer", "Category": "Super"},
		"Categories":  models.MechCategories,
		"Errors":      map[string]string{"series": "Field must be between 5 and 100 characters long."},
		"Flash":       "New unit was created successfully.",
		"CSRFToken":   "csrf-token-1",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Grendizer")
	assert.Contains(t, out, `href="/attack/1/1"`)
	assert.Contains(t, out, `action="/delete_attack/1/1"`)
	assert.Contains(t, out, `<option value="Super" selected>`)
	assert.Contains(t, out, "Field must be between 5 and 100 characters long.")
	assert.Contains(t, out, "New unit was created successfully.")
	assert.Contains(t, out, "Log Out")
	// update, delete and logout forms all carry the token
	assert.Equal(t, 3, strings.Count(out, `name="_csrf" value="csrf-token-1"`))
}

func TestRenderAnonymousLayout(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, "home", map[string]interface{}{
		"Mechs":  []models.Mech{},
		"Errors": map[string]string{},
	}))
	assert.Contains(t, buf.String(), "Log In")
	assert.Contains(t, buf.String(), "Sign Up")
	assert.NotContains(t, buf.String(), "New Mech")
	assert.NotContains(t, buf.String(), `name="_csrf"`)
}

func TestRenderUnknownPage(t *testing.T) {
	e := New()
	require.NoError(t, e.Load())

	var buf bytes.Buffer
	assert.Error(t, e.Render(&buf, "missing", nil))
}
