package billing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
)

func newClientUC() (*appbilling.ClientUseCase, string) {
	return appbilling.NewClientUseCase(newMemClientRepo()), uuid.New().String()
}

func TestClientCreate_NormalizesAndValidates(t *testing.T) {
	uc, userID := newClientUC()

	created, err := uc.Create(userID, dto.CreateClientRequest{
		Name:  "  Acme Corp  ",
		Email: "Billing@Acme.Test",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", created.Name)
	assert.Equal(t, "billing@acme.test", created.Email)

	_, err = uc.Create(userID, dto.CreateClientRequest{Email: "x@y.test"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(userID, dto.CreateClientRequest{Name: "No Email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientCreate_DuplicateEmailPerUser(t *testing.T) {
	uc, userID := newClientUC()

	_, err := uc.Create(userID, dto.CreateClientRequest{Name: "A", Email: "shared@x.test"})
	require.NoError(t, err)

	_, err = uc.Create(userID, dto.CreateClientRequest{Name: "B", Email: "shared@x.test"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Another user may reuse the email
	_, err = uc.Create(uuid.New().String(), dto.CreateClientRequest{Name: "C", Email: "shared@x.test"})
	assert.NoError(t, err)
}

func TestClientGet_CrossUserIsNotFound(t *testing.T) {
	uc, userID := newClientUC()

	created, err := uc.Create(userID, dto.CreateClientRequest{Name: "A", Email: "a@x.test"})
	require.NoError(t, err)

	_, err = uc.Get(uuid.New().String(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestClientUpdate_EmailChangeChecksUniqueness(t *testing.T) {
	uc, userID := newClientUC()

	a, err := uc.Create(userID, dto.CreateClientRequest{Name: "A", Email: "a@x.test"})
	require.NoError(t, err)
	_, err = uc.Create(userID, dto.CreateClientRequest{Name: "B", Email: "b@x.test"})
	require.NoError(t, err)

	taken := "b@x.test"
	_, err = uc.Update(userID, a.ID, dto.UpdateClientRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Re-submitting the current email is a no-op, not a duplicate
	same := "a@x.test"
	updated, err := uc.Update(userID, a.ID, dto.UpdateClientRequest{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "a@x.test", updated.Email)
}

func TestClientDelete(t *testing.T) {
	uc, userID := newClientUC()

	created, err := uc.Create(userID, dto.CreateClientRequest{Name: "A", Email: "a@x.test"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(userID, created.ID))
	assert.ErrorIs(t, uc.Delete(userID, created.ID), domain.ErrNotFound)
}
