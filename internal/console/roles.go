package console

import (
	"github.com/franciscosanchezn/pizzeria-console/internal/models"
)

// Capability is one thing a dashboard lets its user do.
type Capability string

const (
	CapManageCatalog   Capability = "manage_catalog"
	CapPlaceOrders     Capability = "place_orders"
	CapAdvanceOrders   Capability = "advance_orders"
	CapReadOrders      Capability = "read_orders"
	CapKitchenView     Capability = "kitchen_view"
	CapManageUsers     Capability = "manage_users"
	CapManageCustomers Capability = "manage_customers"
)

// capabilitiesByRole is the single source of truth for what each dashboard
// exposes. Roles not listed here get nothing: unknown roles fail closed.
var capabilitiesByRole = map[string][]Capability{
	models.RoleAdmin: {
		CapManageCatalog,
		CapReadOrders,
		CapManageUsers,
		CapManageCustomers,
	},
	models.RoleAssistant: {
		CapPlaceOrders,
		CapAdvanceOrders,
		CapReadOrders,
	},
	models.RoleKitchen: {
		CapKitchenView,
	},
}

// CapabilitiesFor returns the capability set for a role. An unrecognized
// role gets an empty set.
func CapabilitiesFor(role string) []Capability {
	caps := capabilitiesByRole[role]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Can reports whether the role holds the capability.
func Can(role string, capability Capability) bool {
	for _, c := range capabilitiesByRole[role] {
		if c == capability {
			return true
		}
	}
	return false
}
