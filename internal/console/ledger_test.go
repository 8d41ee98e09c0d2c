package console

import (
	"errors"
	"testing"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLedger builds a catalog with one registered Margherita at 10.00 and
// an empty ledger over fake backends.
func setupLedger(t *testing.T) (*Ledger, *Catalog, *fakeOrderAPI, models.Pizza) {
	t.Helper()
	catalog := NewCatalog(newFakePizzaAPI())
	pizza, err := catalog.Register("Margherita", "", decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	backend := newFakeOrderAPI()
	return NewLedger(backend, catalog), catalog, backend, pizza
}

func TestPlaceOrderScenario(t *testing.T) {
	ledger, _, _, pizza := setupLedger(t)

	order, err := ledger.Place(pizza.ID, 2, "Carlos Ruiz", "555-0142", "", "asistente")
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("20.00")), "total = %s", order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 1, ledger.PendingCount())
	assert.True(t, ledger.Revenue().IsZero(), "pending orders contribute nothing")
}

func TestAdvanceScenario(t *testing.T) {
	ledger, _, _, pizza := setupLedger(t)

	order, err := ledger.Place(pizza.ID, 2, "Carlos Ruiz", "555-0142", "", "asistente")
	require.NoError(t, err)

	delivered, err := ledger.Advance(order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDelivered, delivered.Status)
	assert.Equal(t, 0, ledger.PendingCount())
	assert.True(t, ledger.Revenue().Equal(decimal.RequireFromString("20.00")), "revenue = %s", ledger.Revenue())
}

func TestAdvanceDeliveredIsTerminal(t *testing.T) {
	ledger, _, backend, pizza := setupLedger(t)

	order, err := ledger.Place(pizza.ID, 1, "Carlos Ruiz", "555-0142", "", "asistente")
	require.NoError(t, err)
	_, err = ledger.Advance(order.ID)
	require.NoError(t, err)

	calls := backend.calls
	_, err = ledger.Advance(order.ID)
	assert.True(t, errors.Is(err, ErrOrderTerminal))
	// Terminal status is decided locally, without a remote call
	assert.Equal(t, calls, backend.calls)
}

func TestPlaceRejectsLocally(t *testing.T) {
	ledger, _, backend, pizza := setupLedger(t)

	tests := []struct {
		name  string
		place func() (models.Order, error)
	}{
		{name: "unknown pizza", place: func() (models.Order, error) {
			return ledger.Place(9999, 1, "Carlos", "555", "", "asistente")
		}},
		{name: "zero quantity", place: func() (models.Order, error) {
			return ledger.Place(pizza.ID, 0, "Carlos", "555", "", "asistente")
		}},
		{name: "empty customer name", place: func() (models.Order, error) {
			return ledger.Place(pizza.ID, 1, "  ", "555", "", "asistente")
		}},
		{name: "empty customer phone", place: func() (models.Order, error) {
			return ledger.Place(pizza.ID, 1, "Carlos", "", "", "asistente")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := backend.calls
			_, err := tt.place()
			assert.True(t, errors.Is(err, ErrValidation), "err = %v", err)
			assert.Equal(t, calls, backend.calls, "no remote call on local rejection")
			assert.Empty(t, ledger.List())
		})
	}
}

func TestPlaceRemoteFailureLeavesLedgerUntouched(t *testing.T) {
	ledger, _, backend, pizza := setupLedger(t)
	backend.createFunc = func(draft api.OrderDraft) (models.Order, error) {
		return models.Order{}, errRemote
	}

	_, err := ledger.Place(pizza.ID, 1, "Carlos", "555", "", "asistente")
	assert.True(t, errors.Is(err, errRemote))
	assert.Empty(t, ledger.List())
	assert.Equal(t, 0, ledger.PendingCount())
}

func TestTotalImmuneToCatalogPriceChange(t *testing.T) {
	ledger, catalog, _, pizza := setupLedger(t)

	order, err := ledger.Place(pizza.ID, 2, "Carlos Ruiz", "555-0142", "", "asistente")
	require.NoError(t, err)

	_, err = catalog.Amend(pizza.ID, api.PizzaDraft{Name: "Margherita", Price: decimal.RequireFromString("99.99")})
	require.NoError(t, err)

	found, ok := ledger.Find(order.ID)
	require.True(t, ok)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("20.00")))

	_, err = ledger.Advance(order.ID)
	require.NoError(t, err)
	assert.True(t, ledger.Revenue().Equal(decimal.RequireFromString("20.00")))
}

func TestRevenueCountsExactlyDeliveredSubset(t *testing.T) {
	ledger, _, _, pizza := setupLedger(t)

	first, err := ledger.Place(pizza.ID, 1, "A", "1", "", "asistente")
	require.NoError(t, err)
	_, err = ledger.Place(pizza.ID, 3, "B", "2", "", "asistente")
	require.NoError(t, err)

	_, err = ledger.Advance(first.ID)
	require.NoError(t, err)

	assert.True(t, ledger.Revenue().Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 1, ledger.PendingCount())

	// Adding another pending order never changes revenue
	_, err = ledger.Place(pizza.ID, 5, "C", "3", "", "asistente")
	require.NoError(t, err)
	assert.True(t, ledger.Revenue().Equal(decimal.RequireFromString("10.00")))
}

func TestElapsedAndUrgency(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	order := models.Order{Status: models.StatusPending, CreatedAt: createdAt}

	t.Run("whole minutes, floored", func(t *testing.T) {
		assert.Equal(t, 0, Elapsed(order, createdAt.Add(59*time.Second)))
		assert.Equal(t, 1, Elapsed(order, createdAt.Add(61*time.Second)))
		assert.Equal(t, 15, Elapsed(order, createdAt.Add(15*time.Minute+59*time.Second)))
	})

	t.Run("monotonic in now", func(t *testing.T) {
		previous := Elapsed(order, createdAt)
		for _, offset := range []time.Duration{30 * time.Second, 5 * time.Minute, time.Hour, 24 * time.Hour} {
			current := Elapsed(order, createdAt.Add(offset))
			assert.GreaterOrEqual(t, current, previous)
			previous = current
		}
	})

	t.Run("urgent strictly after 15 minutes", func(t *testing.T) {
		assert.False(t, Urgent(order, createdAt.Add(15*time.Minute)))
		assert.False(t, Urgent(order, createdAt.Add(15*time.Minute+59*time.Second)))
		assert.True(t, Urgent(order, createdAt.Add(16*time.Minute)))
	})

	t.Run("delivered orders are never urgent", func(t *testing.T) {
		delivered := order
		delivered.Status = models.StatusDelivered
		assert.False(t, Urgent(delivered, createdAt.Add(2*time.Hour)))
	})
}

func TestPendingByUrgencyOldestFirst(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	backend := newFakeOrderAPI()
	backend.ordersFunc = func() ([]models.Order, error) {
		return []models.Order{
			{ID: 1, Status: models.StatusPending, CreatedAt: now.Add(-5 * time.Minute)},
			{ID: 2, Status: models.StatusDelivered, CreatedAt: now.Add(-90 * time.Minute)},
			{ID: 3, Status: models.StatusPending, CreatedAt: now.Add(-40 * time.Minute)},
			{ID: 4, Status: models.StatusPending, CreatedAt: now.Add(-20 * time.Minute)},
		}, nil
	}

	ledger := NewLedger(backend, NewCatalog(newFakePizzaAPI()))
	require.NoError(t, ledger.Refresh())

	pending := ledger.PendingByUrgency(now)
	require.Len(t, pending, 3)
	assert.Equal(t, []int{3, 4, 1}, []int{pending[0].ID, pending[1].ID, pending[2].ID})
	assert.True(t, Urgent(pending[0], now))
	assert.True(t, Urgent(pending[1], now))
	assert.False(t, Urgent(pending[2], now))
}

func TestRemove(t *testing.T) {
	ledger, _, _, pizza := setupLedger(t)

	order, err := ledger.Place(pizza.ID, 1, "Carlos", "555", "", "asistente")
	require.NoError(t, err)

	require.NoError(t, ledger.Remove(order.ID))
	assert.Empty(t, ledger.List())

	err = ledger.Remove(order.ID)
	assert.True(t, errors.Is(err, ErrValidation))
}
