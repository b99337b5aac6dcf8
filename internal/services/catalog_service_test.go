package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"mechadex/internal/models"
	"mechadex/internal/repositories"
	"mechadex/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func newCatalog(publisher services.EventPublisher) *services.CatalogService {
	mechs, attacks := repositories.NewMockCatalog()
	return services.NewCatalogService(mechs, attacks, publisher)
}

func createGrendizer(t *testing.T, s *services.CatalogService) *models.Mech {
	t.Helper()
	mech, err := s.CreateMech(services.MechInput{Name: "Grendizer", Series: "UFO Robot Grendizer", Category: "Super"})
	require.NoError(t, err)
	return mech
}

func TestCatalogService_CreateMech(t *testing.T) {
	s := newCatalog(nil)

	mech := createGrendizer(t, s)
	assert.NotZero(t, mech.ID)
	assert.Equal(t, models.CategorySuper, mech.Category)

	// Category defaults to Super
	mech, err := s.CreateMech(services.MechInput{Name: "Mazinger Z", Series: "Mazinger Z"})
	require.NoError(t, err)
	assert.Equal(t, models.CategorySuper, mech.Category)

	mechs, err := s.ListMechs()
	require.NoError(t, err)
	assert.Len(t, mechs, 2)
}

func TestCatalogService_CreateMechValidation(t *testing.T) {
	s := newCatalog(nil)

	_, err := s.CreateMech(services.MechInput{Name: "Zaku", Series: "", Category: "Gundam"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Field must be between 5 and 80 characters long.", verr.Reason("name"))
	assert.Equal(t, "This field is required.", verr.Reason("series"))
	assert.NotEmpty(t, verr.Reason("category"))

	mechs, err := s.ListMechs()
	require.NoError(t, err)
	assert.Empty(t, mechs)
}

func TestCatalogService_UpdateMech(t *testing.T) {
	s := newCatalog(nil)
	mech := createGrendizer(t, s)

	updated, err := s.UpdateMech(mech.ID, services.MechInput{Name: "Gundam RX-78-2", Series: "Mobile Suit Gundam", Category: "Real"})
	require.NoError(t, err)
	assert.Equal(t, mech.ID, updated.ID)
	assert.Equal(t, "Gundam RX-78-2", updated.Name)
	assert.Equal(t, models.CategoryReal, updated.Category)

	_, err = s.UpdateMech(999, services.MechInput{Name: "Nobody Here", Series: "Nowhere Series"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Invalid update leaves the row alone
	_, err = s.UpdateMech(mech.ID, services.MechInput{Name: "", Series: "Mobile Suit Gundam"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	got, err := s.GetMech(mech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gundam RX-78-2", got.Name)
}

func TestCatalogService_CreateAttack(t *testing.T) {
	s := newCatalog(nil)
	mech := createGrendizer(t, s)

	attack, err := s.CreateAttack(services.AttackInput{Name: "Space Thunder", AttackPotency: intPtr(1700), MechID: mech.ID})
	require.NoError(t, err)

	got, err := s.GetAttack(attack.ID)
	require.NoError(t, err)
	assert.Equal(t, 1700, got.AttackPotency)
	require.NotNil(t, got.Mech)
	assert.Equal(t, "Grendizer", got.Mech.Name)

	withAttacks, err := s.GetMech(mech.ID)
	require.NoError(t, err)
	require.Len(t, withAttacks.Attacks, 1)
	assert.Equal(t, "Space Thunder", withAttacks.Attacks[0].Name)
}

func TestCatalogService_CreateAttackUnknownMech(t *testing.T) {
	s := newCatalog(nil)

	_, err := s.CreateAttack(services.AttackInput{Name: "Rocket Punch", AttackPotency: intPtr(900), MechID: 42})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogService_CreateAttackValidation(t *testing.T) {
	s := newCatalog(nil)

	_, err := s.CreateAttack(services.AttackInput{Name: "RP"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Reason("name"))
	assert.Equal(t, "This field is required.", verr.Reason("attack_potency"))
	assert.Equal(t, "This field is required.", verr.Reason("mech"))

	// Zero and negative potencies are integers all the same
	mech := createGrendizer(t, s)
	attack, err := s.CreateAttack(services.AttackInput{Name: "Feint", AttackPotency: intPtr(0), MechID: mech.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, attack.AttackPotency)
	attack, err = s.CreateAttack(services.AttackInput{Name: "Self Destruct", AttackPotency: intPtr(-50), MechID: mech.ID})
	require.NoError(t, err)
	assert.Equal(t, -50, attack.AttackPotency)
}

func TestCatalogService_UpdateAttack(t *testing.T) {
	s := newCatalog(nil)
	mech := createGrendizer(t, s)
	spaceThunder, err := s.CreateAttack(services.AttackInput{Name: "Space Thunder", AttackPotency: intPtr(1700), MechID: mech.ID})
	require.NoError(t, err)
	other, err := s.CreateAttack(services.AttackInput{Name: "Screw Crusher Punch", AttackPotency: intPtr(1200), MechID: mech.ID})
	require.NoError(t, err)

	updated, err := s.UpdateAttack(spaceThunder.ID, services.AttackInput{Name: "Double Haken", AttackPotency: intPtr(1400), MechID: mech.ID})
	require.NoError(t, err)
	assert.Equal(t, "Double Haken", updated.Name)
	assert.Equal(t, 1400, updated.AttackPotency)

	got, err := s.GetAttack(spaceThunder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Double Haken", got.Name)
	assert.Equal(t, 1400, got.AttackPotency)

	untouched, err := s.GetAttack(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Screw Crusher Punch", untouched.Name)
	assert.Equal(t, 1200, untouched.AttackPotency)
}

func TestCatalogService_UpdateAttackMovesOwner(t *testing.T) {
	s := newCatalog(nil)
	grendizer := createGrendizer(t, s)
	mazinger, err := s.CreateMech(services.MechInput{Name: "Mazinger Z", Series: "Mazinger Z"})
	require.NoError(t, err)
	attack, err := s.CreateAttack(services.AttackInput{Name: "Rocket Punch", AttackPotency: intPtr(900), MechID: grendizer.ID})
	require.NoError(t, err)

	moved, err := s.UpdateAttack(attack.ID, services.AttackInput{Name: "Rocket Punch", AttackPotency: intPtr(900), MechID: mazinger.ID})
	require.NoError(t, err)
	assert.Equal(t, "Mazinger Z", moved.Mech.Name)

	_, err = s.UpdateAttack(attack.ID, services.AttackInput{Name: "Rocket Punch", AttackPotency: intPtr(900), MechID: 999})
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = s.UpdateAttack(999, services.AttackInput{Name: "Rocket Punch", AttackPotency: intPtr(900), MechID: mazinger.ID})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogService_DeleteAttack(t *testing.T) {
	s := newCatalog(nil)
	mech := createGrendizer(t, s)
	attack, err := s.CreateAttack(services.AttackInput{Name: "Space Thunder", AttackPotency: intPtr(1700), MechID: mech.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAttack(attack.ID))

	_, err = s.GetAttack(attack.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	still, err := s.GetMech(mech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grendizer", still.Name)
	assert.Empty(t, still.Attacks)

	assert.ErrorIs(t, s.DeleteAttack(attack.ID), services.ErrNotFound)
}

func TestCatalogService_PublishesEvents(t *testing.T) {
	publisher := new(MockPublisher)
	s := newCatalog(publisher)

	publisher.On("Publish", services.CatalogExchange, services.EventMechCreated, mock.Anything).Return(nil).Once()
	mech := createGrendizer(t, s)

	publisher.On("Publish", services.CatalogExchange, services.EventAttackCreated, mock.MatchedBy(func(body []byte) bool {
		var event services.CatalogEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false
		}
		return event.MechID == mech.ID && event.Name == "Space Thunder"
	})).Return(nil).Once()
	attack, err := s.CreateAttack(services.AttackInput{Name: "Space Thunder", AttackPotency: intPtr(1700), MechID: mech.ID})
	require.NoError(t, err)

	// A broker failure does not fail the write
	publisher.On("Publish", services.CatalogExchange, services.EventAttackDeleted, mock.Anything).Return(errors.New("broker down")).Once()
	assert.NoError(t, s.DeleteAttack(attack.ID))

	publisher.AssertExpectations(t)
}

func TestCatalogService_NoEventOnFailedWrite(t *testing.T) {
	publisher := new(MockPublisher)
	s := newCatalog(publisher)

	_, err := s.CreateMech(services.MechInput{Name: "x"})
	assert.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
