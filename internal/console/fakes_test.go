package console

import (
	"errors"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
)

// errRemote stands in for any transport failure in these tests.
var errRemote = errors.New("connection refused")

type fakePizzaAPI struct {
	pizzasFunc func() ([]models.Pizza, error)
	createFunc func(draft api.PizzaDraft) (models.Pizza, error)
	updateFunc func(id int, draft api.PizzaDraft) (models.Pizza, error)
	deleteFunc func(id int) error

	calls int
}

func (f *fakePizzaAPI) Pizzas() ([]models.Pizza, error) {
	f.calls++
	return f.pizzasFunc()
}

func (f *fakePizzaAPI) CreatePizza(draft api.PizzaDraft) (models.Pizza, error) {
	f.calls++
	return f.createFunc(draft)
}

func (f *fakePizzaAPI) UpdatePizza(id int, draft api.PizzaDraft) (models.Pizza, error) {
	f.calls++
	return f.updateFunc(id, draft)
}

func (f *fakePizzaAPI) DeletePizza(id int) error {
	f.calls++
	return f.deleteFunc(id)
}

// newFakePizzaAPI acts like a well-behaved backend: it assigns ids in
// sequence and echoes drafts back as catalog entries.
func newFakePizzaAPI() *fakePizzaAPI {
	nextID := 0
	f := &fakePizzaAPI{}
	f.pizzasFunc = func() ([]models.Pizza, error) { return nil, nil }
	f.createFunc = func(draft api.PizzaDraft) (models.Pizza, error) {
		nextID++
		available := true
		if draft.Available != nil {
			available = *draft.Available
		}
		return models.Pizza{
			ID:          nextID,
			Name:        draft.Name,
			Ingredients: draft.Ingredients,
			Price:       draft.Price,
			Available:   available,
			CreatedAt:   time.Now(),
		}, nil
	}
	f.updateFunc = func(id int, draft api.PizzaDraft) (models.Pizza, error) {
		available := true
		if draft.Available != nil {
			available = *draft.Available
		}
		return models.Pizza{
			ID:          id,
			Name:        draft.Name,
			Ingredients: draft.Ingredients,
			Price:       draft.Price,
			Available:   available,
		}, nil
	}
	f.deleteFunc = func(id int) error { return nil }
	return f
}

type fakeOrderAPI struct {
	ordersFunc       func() ([]models.Order, error)
	createFunc       func(draft api.OrderDraft) (models.Order, error)
	updateStatusFunc func(id int, estado string) (models.Order, error)
	deleteFunc       func(id int) error

	calls int
}

func (f *fakeOrderAPI) Orders() ([]models.Order, error) {
	f.calls++
	return f.ordersFunc()
}

func (f *fakeOrderAPI) CreateOrder(draft api.OrderDraft) (models.Order, error) {
	f.calls++
	return f.createFunc(draft)
}

func (f *fakeOrderAPI) UpdateOrderStatus(id int, estado string) (models.Order, error) {
	f.calls++
	return f.updateStatusFunc(id, estado)
}

func (f *fakeOrderAPI) DeleteOrder(id int) error {
	f.calls++
	return f.deleteFunc(id)
}

// newFakeOrderAPI assigns ids in sequence, accepts the draft's total as-is
// and applies status updates blindly; transition rules live client-side and
// in the real backend.
func newFakeOrderAPI() *fakeOrderAPI {
	nextID := 100
	stored := map[int]models.Order{}
	f := &fakeOrderAPI{}
	f.ordersFunc = func() ([]models.Order, error) { return nil, nil }
	f.createFunc = func(draft api.OrderDraft) (models.Order, error) {
		nextID++
		order := models.Order{
			ID:            nextID,
			PizzaID:       draft.PizzaID,
			Quantity:      draft.Quantity,
			CustomerName:  draft.CustomerName,
			CustomerPhone: draft.CustomerPhone,
			Notes:         draft.Notes,
			Total:         draft.Total,
			Status:        models.StatusPending,
			CreatedAt:     time.Now(),
		}
		stored[order.ID] = order
		return order, nil
	}
	f.updateStatusFunc = func(id int, estado string) (models.Order, error) {
		order := stored[id]
		order.ID = id
		order.Status = estado
		stored[id] = order
		return order, nil
	}
	f.deleteFunc = func(id int) error { return nil }
	return f
}

type fakeAuthAPI struct {
	loginFunc    func(username, password string) (*api.LoginResult, error)
	logoutFunc   func() error
	validateFunc func() (*api.ValidateResult, error)

	token string
}

func (f *fakeAuthAPI) Login(username, password string) (*api.LoginResult, error) {
	return f.loginFunc(username, password)
}

func (f *fakeAuthAPI) Logout() error {
	if f.logoutFunc != nil {
		return f.logoutFunc()
	}
	return nil
}

func (f *fakeAuthAPI) Validate() (*api.ValidateResult, error) {
	return f.validateFunc()
}

func (f *fakeAuthAPI) SetToken(token string) {
	f.token = token
}
