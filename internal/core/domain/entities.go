package domain

// Role represents a caller class used for endpoint access control.
// Role checks are a flat allow-list: every route enumerates the roles it
// accepts and no role implies another.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleOperator   Role = "operator"
	RoleCounty     Role = "county"
	RoleAuditor    Role = "auditor"
)

// ValidRoles is the closed set of accepted roles.
var ValidRoles = []Role{RoleSuperAdmin, RoleOperator, RoleCounty, RoleAuditor}

// IsValidRole reports whether s is one of the accepted roles.
func IsValidRole(s string) bool {
	for _, r := range ValidRoles {
		if string(r) == s {
			return true
		}
	}
	return false
}

// Asset statuses
const (
	AssetStatusActive      = "active"
	AssetStatusInactive    = "inactive"
	AssetStatusFaulty      = "faulty"
	AssetStatusMaintenance = "maintenance"
)

// Energy sources
const (
	EnergySolar  = "solar"
	EnergyDiesel = "diesel"
	EnergyHybrid = "hybrid"
	EnergyGrid   = "grid"
)

// Water quality result statuses
const (
	ResultPass    = "pass"
	ResultFail    = "fail"
	ResultWarning = "warning"
)

// Ticket statuses
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Severities for derived early-warning alerts
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)
