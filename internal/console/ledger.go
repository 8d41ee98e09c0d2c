package console

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/shopspring/decimal"
)

// UrgentAfterMinutes is how long an order may stay pending before the
// kitchen view flags it.
const UrgentAfterMinutes = 15

// ErrOrderTerminal marks an advance attempt on a delivered order. No remote
// call is made; Entregado is terminal.
var ErrOrderTerminal = errors.New("order already delivered")

// orderAPI is the slice of the sync adapter the ledger needs.
type orderAPI interface {
	Orders() ([]models.Order, error)
	CreateOrder(draft api.OrderDraft) (models.Order, error)
	UpdateOrderStatus(id int, estado string) (models.Order, error)
	DeleteOrder(id int) error
}

// Ledger is the in-memory list of orders. Placement resolves the pizza
// through the catalog registry; all aggregates are pure functions over the
// current snapshot, computed on every call and never cached.
type Ledger struct {
	api     orderAPI
	catalog *Catalog
	orders  []models.Order
}

// NewLedger creates an empty ledger over the given adapter and catalog.
func NewLedger(a orderAPI, catalog *Catalog) *Ledger {
	return &Ledger{api: a, catalog: catalog}
}

// List returns a snapshot of the current orders.
func (l *Ledger) List() []models.Order {
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Find returns the order with the given id, if present.
func (l *Ledger) Find(id int) (models.Order, bool) {
	for _, order := range l.orders {
		if order.ID == id {
			return order, true
		}
	}
	return models.Order{}, false
}

// Refresh replaces the local ledger with the server's orders.
func (l *Ledger) Refresh() error {
	orders, err := l.api.Orders()
	if err != nil {
		return fmt.Errorf("refresh orders: %w", err)
	}
	l.orders = orders
	return nil
}

// Place creates a new order. Preconditions — a resolvable catalog entry,
// quantity of at least 1, non-empty customer fields — are checked locally
// and a violation makes no remote call. The total is fixed here from the
// unit price at this moment; later catalog edits never touch it. On success
// the server-returned order is appended.
func (l *Ledger) Place(pizzaID, quantity int, customerName, customerPhone, notes, createdBy string) (models.Order, error) {
	pizza, ok := l.catalog.Find(pizzaID)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: pizza %d not in catalog", ErrValidation, pizzaID)
	}
	if quantity < 1 {
		return models.Order{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrValidation, quantity)
	}
	if strings.TrimSpace(customerName) == "" {
		return models.Order{}, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if strings.TrimSpace(customerPhone) == "" {
		return models.Order{}, fmt.Errorf("%w: customer phone is required", ErrValidation)
	}

	created, err := l.api.CreateOrder(api.OrderDraft{
		PizzaID:       pizzaID,
		Quantity:      quantity,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Notes:         notes,
		Total:         pizza.Price.Mul(decimal.NewFromInt(int64(quantity))),
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}

	l.orders = append(l.orders, created)
	return created, nil
}

// Advance moves a pending order to Entregado, the only transition the
// system exposes. Advancing a delivered order is refused locally. On
// success the server's representation of the order replaces the local one.
func (l *Ledger) Advance(orderID int) (models.Order, error) {
	order, ok := l.Find(orderID)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: order %d not in ledger", ErrValidation, orderID)
	}
	if order.Status == models.StatusDelivered {
		return models.Order{}, ErrOrderTerminal
	}

	updated, err := l.api.UpdateOrderStatus(orderID, models.StatusDelivered)
	if err != nil {
		return models.Order{}, fmt.Errorf("advance order: %w", err)
	}

	for i := range l.orders {
		if l.orders[i].ID == orderID {
			l.orders[i] = updated
			break
		}
	}
	return updated, nil
}

// Remove deletes an order, remote first. The backend exposes this but no
// dashboard capability invokes it.
func (l *Ledger) Remove(orderID int) error {
	if _, ok := l.Find(orderID); !ok {
		return fmt.Errorf("%w: order %d not in ledger", ErrValidation, orderID)
	}

	if err := l.api.DeleteOrder(orderID); err != nil {
		return fmt.Errorf("remove order: %w", err)
	}

	for i := range l.orders {
		if l.orders[i].ID == orderID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			break
		}
	}
	return nil
}

// Revenue sums the totals of delivered orders. Pending orders never
// contribute.
func (l *Ledger) Revenue() decimal.Decimal {
	revenue := decimal.Zero
	for _, order := range l.orders {
		if order.Status == models.StatusDelivered {
			revenue = revenue.Add(order.Total)
		}
	}
	return revenue
}

// PendingCount counts the orders still waiting to be delivered.
func (l *Ledger) PendingCount() int {
	count := 0
	for _, order := range l.orders {
		if order.Status == models.StatusPending {
			count++
		}
	}
	return count
}

// Elapsed returns whole minutes since the order was created, as observed at
// now. Monotonic non-decreasing in now for a fixed order.
func Elapsed(order models.Order, now time.Time) int {
	return int(now.Sub(order.CreatedAt).Minutes())
}

// Urgent reports whether the order is still pending after more than
// UrgentAfterMinutes minutes.
func Urgent(order models.Order, now time.Time) bool {
	return order.Status == models.StatusPending && Elapsed(order, now) > UrgentAfterMinutes
}

// PendingByUrgency returns the pending orders, oldest first, for the
// kitchen view.
func (l *Ledger) PendingByUrgency(now time.Time) []models.Order {
	var pending []models.Order
	for _, order := range l.orders {
		if order.Status == models.StatusPending {
			pending = append(pending, order)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending
}
