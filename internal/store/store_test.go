package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate("../../migrations"))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKVGetMissingSlot(t *testing.T) {
	s := testStore(t)

	payload, err := s.Get("scope-1", "cart")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestKVSetGetRoundTrip(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Set("scope-1", "cart", []byte(`{"version":1,"data":[]}`)))
	payload, err := s.Get("scope-1", "cart")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"data":[]}`, string(payload))

	// upsert replaces
	require.NoError(t, s.Set("scope-1", "cart", []byte(`{"version":1,"data":[1]}`)))
	payload, err = s.Get("scope-1", "cart")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"data":[1]}`, string(payload))
}

func TestKVSlotsAreScoped(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Set("scope-1", "wishlist", []byte(`a`)))
	require.NoError(t, s.Set("scope-2", "wishlist", []byte(`b`)))

	p1, err := s.Get("scope-1", "wishlist")
	require.NoError(t, err)
	p2, err := s.Get("scope-2", "wishlist")
	require.NoError(t, err)
	assert.Equal(t, "a", string(p1))
	assert.Equal(t, "b", string(p2))
}

func TestKVDelete(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Set("scope-1", "session", []byte(`x`)))
	require.NoError(t, s.Delete("scope-1", "session"))
	payload, err := s.Get("scope-1", "session")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestWatchFiresOnWriteUntilCancelled(t *testing.T) {
	s := testStore(t)

	var seen [][]byte
	cancel := s.Watch("scope-1", "wishlist", func(payload []byte) {
		seen = append(seen, payload)
	})

	require.NoError(t, s.Set("scope-1", "wishlist", []byte(`one`)))
	require.NoError(t, s.Set("scope-2", "wishlist", []byte(`other scope`)))
	require.Len(t, seen, 1)
	assert.Equal(t, "one", string(seen[0]))

	cancel()
	require.NoError(t, s.Set("scope-1", "wishlist", []byte(`two`)))
	assert.Len(t, seen, 1)
}

func TestMigrateAppliesOnce(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate("../../migrations"))
	// second run is a no-op
	require.NoError(t, s.Migrate("../../migrations"))

	require.NoError(t, s.Set("scope-1", "cart", []byte(`ok`)))
	payload, err := s.Get("scope-1", "cart")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(payload))
}

func TestOrdersRoundTrip(t *testing.T) {
	s := testStore(t)

	for _, ref := range []string{"AAAA2222", "BBBB3333"} {
		require.NoError(t, s.CreateOrder(&models.Order{
			OrderRef:      ref,
			CustomerName:  "Asha Verma",
			CustomerPhone: "9876543210",
			CustomerEmail: "asha@example.com",
			Address:       "12 Rose Lane, Pune",
			ItemsJSON:     `[]`,
			Subtotal:      138,
			DeliveryFee:   49,
			Total:         187,
			Status:        "received",
		}))
	}

	count, err := s.CountOrders()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	orders, err := s.GetOrders(10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "received", orders[0].Status)
	assert.Equal(t, 187, orders[0].Total)

	page, err := s.GetOrders(1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
