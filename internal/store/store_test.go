package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsRandomHex(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestItemLifecycle(t *testing.T) {
	s := New()

	item := &Item{ID: NewID(), Name: "IPA", Price: 7, MinPrice: 5, MaxPrice: 12, TaxRate: 0.0825, Active: true, CreatedAt: time.Now().UTC()}
	v := s.PutItem(item)
	assert.Equal(t, uint64(1), v)

	got, err := s.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "IPA", got.Name)

	// Mutating the returned copy must not affect stored state.
	got.Price = 99
	again, err := s.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, again.Price)

	v, err = s.DeleteItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	_, err = s.GetItem(item.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, item.ID, nf.ID)
}

func TestDeleteMissingItem(t *testing.T) {
	s := New()
	_, err := s.DeleteItem("nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint64(0), s.MenuVersion())
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	s.PutItem(&Item{ID: "a", Name: "IPA", Price: 7})

	snap := s.Snapshot()
	s.PutItem(&Item{ID: "a", Name: "IPA", Price: 9})

	assert.Equal(t, 7.0, snap["a"].Price)
}

func TestMenuVersionMonotonic(t *testing.T) {
	s := New()
	var last uint64
	for i := 0; i < 5; i++ {
		v := s.PutItem(&Item{ID: NewID(), Name: "x"})
		assert.Greater(t, v, last)
		last = v
	}
	v := s.BumpMenuVersion()
	assert.Greater(t, v, last)
	assert.Equal(t, v, s.MenuVersion())
}

func TestOrdersListedInCreationOrder(t *testing.T) {
	s := New()
	s.InsertOrder(&Order{ID: "one", Status: OrderStatusCompleted})
	s.InsertOrder(&Order{ID: "two", Status: OrderStatusCompleted})

	orders := s.ListOrders()
	require.Len(t, orders, 2)
	assert.Equal(t, "one", orders[0].ID)
	assert.Equal(t, "two", orders[1].ID)
}

func TestOrderCopiesAreImmutable(t *testing.T) {
	s := New()
	s.InsertOrder(&Order{ID: "o", Lines: []OrderLine{{ItemID: "a", Quantity: 2}}})

	got, err := s.GetOrder("o")
	require.NoError(t, err)
	got.Lines[0].Quantity = 99

	again, err := s.GetOrder("o")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lines[0].Quantity)
}

func TestConcurrentMutation(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewID()
			s.PutItem(&Item{ID: id, Name: "x"})
			s.InsertOrder(&Order{ID: NewID()})
			_ = s.Snapshot()
			_, _ = s.DeleteItem(id)
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(64), s.MenuVersion())
	assert.Len(t, s.ListOrders(), 32)
}
