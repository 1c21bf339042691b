package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapGenericErrors(t *testing.T) {
	t.Parallel()

	notFound := []error{
		store.ErrUserNotFound, store.ErrPostNotFound, store.ErrProjectNotFound,
		store.ErrTaskNotFound, store.ErrBuyerNotFound, store.ErrEmployeeNotFound,
		store.ErrGoodNotFound, store.ErrPriceNotFound, store.ErrDeliveryNotFound,
		store.ErrNotificationNotFound, store.ErrOrderNotFound,
	}
	for _, err := range notFound {
		assert.True(t, store.IsNotFoundError(err), err.Error())
		assert.False(t, store.IsDuplicateError(err), err.Error())
	}

	duplicates := []error{
		store.ErrLoginExists, store.ErrBuyerEmailExists,
		store.ErrEmployeeEmailExists, store.ErrSKUExists,
	}
	for _, err := range duplicates {
		assert.True(t, store.IsDuplicateError(err), err.Error())
		assert.False(t, store.IsNotFoundError(err), err.Error())
	}

	assert.False(t, errors.Is(store.ErrUserNotFound, store.ErrPostNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	err := store.NewStoreError("buyer", "create", store.ErrBuyerEmailExists)
	assert.Equal(t, "create buyer: entity already exists: buyer email", err.Error())
	assert.ErrorIs(t, err, store.ErrDuplicate)

	wrapped := fmt.Errorf("service: %w", err)
	var se *store.StoreError
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, "buyer", se.Entity)
}

func TestPageNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, store.Page{Limit: store.DefaultPageLimit}, store.Page{}.Normalize())
	assert.Equal(t, store.Page{Limit: store.MaxPageLimit, Offset: 5}, store.Page{Limit: 1000, Offset: 5}.Normalize())
	assert.Equal(t, store.Page{Limit: 10, Offset: 0}, store.Page{Limit: 10, Offset: -3}.Normalize())
}
