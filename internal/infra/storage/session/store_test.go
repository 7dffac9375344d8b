package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

func TestStore_CreateGetSave(t *testing.T) {
	store := NewStore(time.Hour)

	created := store.Create("owner-1")
	require.NotEmpty(t, created.ID)

	sess, err := store.Get(created.ID)
	require.NoError(t, err)
	require.NoError(t, sess.Selection.SelectPet("rex", domain.SpeciesDog))

	saved, err := store.Save(sess)
	require.NoError(t, err)
	assert.Equal(t, sess.Version+1, saved.Version)

	again, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rex", again.Selection.PetID)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(0)
	created := store.Create("owner-1")

	sess, err := store.Get(created.ID)
	require.NoError(t, err)
	require.NoError(t, sess.Selection.SelectPet("rex", domain.SpeciesDog))

	fresh, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Selection.PetID)
}

func TestStore_SaveDetectsConcurrentModification(t *testing.T) {
	store := NewStore(0)
	created := store.Create("owner-1")

	a, _ := store.Get(created.ID)
	b, _ := store.Get(created.ID)

	_, err := store.Save(a)
	require.NoError(t, err)

	_, err = store.Save(b)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	created := store.Create("owner-1")

	now = now.Add(2 * time.Minute)

	_, err := store.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, store.PurgeExpired())
}
