package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/config"
	"github.com/franciscosanchezn/pizzeria-console/internal/console"
	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/console/keystore"
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// app bundles the console's client-side state for the menu loops.
type app struct {
	reader  *bufio.Reader
	client  *api.Client
	session *console.Session
	catalog *console.Catalog
	ledger  *console.Ledger
}

func main() {
	loadDotenvFile()
	setUpLogger()

	conf, err := config.LoadConsoleConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load console configuration")
	}

	client := api.NewClient(conf.APIBaseURL)
	session := console.NewSession(client, keystore.New(conf.KeystorePath))

	catalog := console.NewCatalog(client)
	a := &app{
		reader:  bufio.NewReader(os.Stdin),
		client:  client,
		session: session,
		catalog: catalog,
		ledger:  console.NewLedger(client, catalog),
	}

	fmt.Println("Pizzeria Console")
	fmt.Printf("Backend: %s\n\n", conf.APIBaseURL)

	restored, err := session.Restore()
	if err != nil {
		log.WithError(err).Warn("Could not restore persisted session")
	}
	if restored {
		fmt.Printf("Welcome back, %s (%s)\n\n", session.Current().Username, session.Current().Role)
	} else if !a.loginLoop() {
		return
	}

	a.syncState()
	a.dispatch()
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}
}

// setUpLogger keeps the interactive screen clean: JSON logs go to stderr and
// only warnings and above are shown unless APP_ENV=development
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stderr)
	if config.GetEnvWithDefault("APP_ENV", "") == "development" {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// loginLoop prompts for credentials until a session is established or the
// user gives up. Returns false when the user quits.
func (a *app) loginLoop() bool {
	for {
		username := a.prompt("Username (empty to quit): ")
		if username == "" {
			return false
		}
		password := a.prompt("Password: ")

		ok, err := a.session.Authenticate(username, password)
		if err != nil {
			fmt.Printf("Backend unreachable: %v\n\n", err)
			continue
		}
		if !ok {
			fmt.Println("Invalid credentials, try again.")
			fmt.Println()
			continue
		}

		fmt.Printf("\nLogged in as %s (%s)\n\n", a.session.Current().Username, a.session.Current().Role)
		return true
	}
}

// syncState pulls the catalog and the order ledger from the backend.
func (a *app) syncState() {
	if err := a.catalog.Refresh(); err != nil {
		fmt.Printf("Warning: could not load catalog: %v\n", err)
	}
	if console.Can(a.session.Current().Role, console.CapReadOrders) ||
		console.Can(a.session.Current().Role, console.CapKitchenView) {
		if err := a.ledger.Refresh(); err != nil {
			fmt.Printf("Warning: could not load orders: %v\n", err)
		}
	}
}

// dispatch hands control to the dashboard for the authenticated role. A role
// without a dashboard gets nothing.
func (a *app) dispatch() {
	switch role := a.session.Current().Role; role {
	case models.RoleAdmin:
		a.runAdmin()
	case models.RoleAssistant:
		a.runAssistant()
	case models.RoleKitchen:
		a.runKitchen()
	default:
		fmt.Printf("Role %q has no dashboard. Contact an administrator.\n", role)
	}
}

func (a *app) runAdmin() {
	for {
		fmt.Println("-- Admin --")
		fmt.Println(" 1) List catalog")
		fmt.Println(" 2) Register pizza")
		fmt.Println(" 3) Amend pizza")
		fmt.Println(" 4) Retire pizza")
		fmt.Println(" 5) List orders")
		fmt.Println(" 6) List users")
		fmt.Println(" 7) Create user")
		fmt.Println(" 8) List customers")
		fmt.Println(" 9) Logout")
		fmt.Println(" 0) Quit")

		switch a.prompt("> ") {
		case "1":
			a.printCatalog()
		case "2":
			a.registerPizza()
		case "3":
			a.amendPizza()
		case "4":
			a.retirePizza()
		case "5":
			a.printOrders()
		case "6":
			a.printUsers()
		case "7":
			a.createUser()
		case "8":
			a.printCustomers()
		case "9":
			a.logout()
			return
		case "0":
			return
		}
		fmt.Println()
	}
}

func (a *app) runAssistant() {
	for {
		fmt.Println("-- Assistant --")
		fmt.Printf(" Pending: %d | Revenue: %s\n", a.ledger.PendingCount(), a.ledger.Revenue().StringFixed(2))
		fmt.Println(" 1) List catalog")
		fmt.Println(" 2) List orders")
		fmt.Println(" 3) Place order")
		fmt.Println(" 4) Mark order delivered")
		fmt.Println(" 5) Logout")
		fmt.Println(" 0) Quit")

		switch a.prompt("> ") {
		case "1":
			a.printCatalog()
		case "2":
			a.printOrders()
		case "3":
			a.placeOrder()
		case "4":
			a.advanceOrder()
		case "5":
			a.logout()
			return
		case "0":
			return
		}
		fmt.Println()
	}
}

func (a *app) runKitchen() {
	for {
		fmt.Println("-- Kitchen --")
		fmt.Println(" 1) Pending queue")
		fmt.Println(" 2) Refresh")
		fmt.Println(" 3) Logout")
		fmt.Println(" 0) Quit")

		switch a.prompt("> ") {
		case "1":
			a.printKitchenQueue()
		case "2":
			a.syncState()
			fmt.Println("Refreshed.")
		case "3":
			a.logout()
			return
		case "0":
			return
		}
		fmt.Println()
	}
}

func (a *app) printCatalog() {
	pizzas := a.catalog.List()
	if len(pizzas) == 0 {
		fmt.Println("Catalog is empty.")
		return
	}
	for _, pizza := range pizzas {
		availability := "available"
		if !pizza.Available {
			availability = "unavailable"
		}
		fmt.Printf(" #%d %-20s %8s  %s  (%s)\n", pizza.ID, pizza.Name, pizza.Price.StringFixed(2), availability, pizza.Ingredients)
	}
}

func (a *app) registerPizza() {
	name := a.prompt("Name: ")
	ingredients := a.prompt("Ingredients: ")
	price, err := decimal.NewFromString(a.prompt("Price: "))
	if err != nil {
		fmt.Printf("Not a valid price: %v\n", err)
		return
	}

	created, err := a.catalog.Register(name, ingredients, price)
	if err != nil {
		fmt.Printf("Could not register pizza: %v\n", err)
		return
	}
	fmt.Printf("Registered #%d %s at %s\n", created.ID, created.Name, created.Price.StringFixed(2))
}

func (a *app) amendPizza() {
	id, ok := a.promptInt("Pizza id: ")
	if !ok {
		return
	}
	current, found := a.catalog.Find(id)
	if !found {
		fmt.Println("No such pizza in the catalog.")
		return
	}

	draft := api.PizzaDraft{
		Name:        current.Name,
		Ingredients: current.Ingredients,
		Price:       current.Price,
	}
	if name := a.prompt(fmt.Sprintf("Name [%s]: ", current.Name)); name != "" {
		draft.Name = name
	}
	if ingredients := a.prompt(fmt.Sprintf("Ingredients [%s]: ", current.Ingredients)); ingredients != "" {
		draft.Ingredients = ingredients
	}
	if raw := a.prompt(fmt.Sprintf("Price [%s]: ", current.Price.StringFixed(2))); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Printf("Not a valid price: %v\n", err)
			return
		}
		draft.Price = price
	}
	switch a.prompt(fmt.Sprintf("Available (y/n) [%v]: ", current.Available)) {
	case "y", "Y":
		available := true
		draft.Available = &available
	case "n", "N":
		available := false
		draft.Available = &available
	}

	updated, err := a.catalog.Amend(id, draft)
	if err != nil {
		fmt.Printf("Could not amend pizza: %v\n", err)
		return
	}
	fmt.Printf("Amended #%d %s at %s\n", updated.ID, updated.Name, updated.Price.StringFixed(2))
}

func (a *app) retirePizza() {
	id, ok := a.promptInt("Pizza id: ")
	if !ok {
		return
	}
	if err := a.catalog.Retire(id); err != nil {
		fmt.Printf("Could not retire pizza: %v\n", err)
		return
	}
	fmt.Println("Retired.")
}

func (a *app) printOrders() {
	orders := a.ledger.List()
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return
	}
	now := time.Now()
	for _, order := range orders {
		line := fmt.Sprintf(" #%d pizza %d x%d for %s — %s — %s (%dm)",
			order.ID, order.PizzaID, order.Quantity, order.CustomerName,
			order.Total.StringFixed(2), order.Status, console.Elapsed(order, now))
		if console.Urgent(order, now) {
			line += "  ** URGENT **"
		}
		fmt.Println(line)
	}
}

func (a *app) placeOrder() {
	a.printCatalog()
	pizzaID, ok := a.promptInt("Pizza id: ")
	if !ok {
		return
	}
	quantity, ok := a.promptInt("Quantity: ")
	if !ok {
		return
	}
	name := a.prompt("Customer name: ")
	phone := a.prompt("Customer phone: ")
	notes := a.prompt("Notes (optional): ")

	order, err := a.ledger.Place(pizzaID, quantity, name, phone, notes, a.session.Current().Username)
	if err != nil {
		fmt.Printf("Could not place order: %v\n", err)
		return
	}
	fmt.Printf("Order #%d placed, total %s\n", order.ID, order.Total.StringFixed(2))
}

func (a *app) advanceOrder() {
	id, ok := a.promptInt("Order id: ")
	if !ok {
		return
	}
	order, err := a.ledger.Advance(id)
	if err != nil {
		fmt.Printf("Could not advance order: %v\n", err)
		return
	}
	fmt.Printf("Order #%d is now %s\n", order.ID, order.Status)
}

func (a *app) printKitchenQueue() {
	now := time.Now()
	pending := a.ledger.PendingByUrgency(now)
	if len(pending) == 0 {
		fmt.Println("Nothing pending. Enjoy the quiet.")
		return
	}
	for _, order := range pending {
		marker := "  "
		if console.Urgent(order, now) {
			marker = "!!"
		}
		fmt.Printf(" %s #%d pizza %d x%d — waiting %dm — %s\n",
			marker, order.ID, order.PizzaID, order.Quantity, console.Elapsed(order, now), order.Notes)
	}
}

func (a *app) printUsers() {
	users, err := a.client.Users()
	if err != nil {
		fmt.Printf("Could not load users: %v\n", err)
		return
	}
	for _, user := range users {
		fmt.Printf(" #%d %-16s %-10s active=%v\n", user.ID, user.Username, user.Role, user.Active)
	}
}

func (a *app) createUser() {
	draft := api.UserDraft{
		Username: a.prompt("Username: "),
		Password: a.prompt("Password: "),
		Email:    a.prompt("Email: "),
		Role:     a.prompt("Role (admin/asistente/pizzero): "),
	}
	created, err := a.client.CreateUser(draft)
	if err != nil {
		fmt.Printf("Could not create user: %v\n", err)
		return
	}
	fmt.Printf("Created user #%d %s (%s)\n", created.ID, created.Username, created.Role)
}

func (a *app) printCustomers() {
	customers, err := a.client.Customers()
	if err != nil {
		fmt.Printf("Could not load customers: %v\n", err)
		return
	}
	if len(customers) == 0 {
		fmt.Println("No customers.")
		return
	}
	for _, customer := range customers {
		fmt.Printf(" #%d cedula %-14s %-14s %s\n", customer.ID, customer.Cedula, customer.Phone, customer.Email)
	}
}

func (a *app) logout() {
	if err := a.session.Terminate(); err != nil {
		fmt.Printf("Warning: could not clear persisted session: %v\n", err)
	}
	fmt.Println("Logged out.")
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) promptInt(label string) (int, bool) {
	raw := a.prompt(label)
	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("Not a number: %q\n", raw)
		return 0, false
	}
	return value, true
}
