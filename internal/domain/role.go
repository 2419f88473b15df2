package domain

// Role type to distinguish between user roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// Action names a capability a request may exercise. Authorization decisions
// are made through the table below rather than ad-hoc role comparisons in
// handlers.
type Action string

const (
	ActionManageMembers       Action = "members:manage"
	ActionViewMembers         Action = "members:view"
	ActionManageTrainers      Action = "trainers:manage"
	ActionManageRoster        Action = "roster:manage"
	ActionManagePlans         Action = "plans:manage"
	ActionManageSubscriptions Action = "subscriptions:manage"
	ActionPurchaseOwn         Action = "subscriptions:purchase-own"
	ActionViewAllPayments     Action = "payments:view-all"
	ActionManageSchedules     Action = "schedules:manage"
	ActionViewOwnData         Action = "self:view"
)

var capabilities = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionManageMembers:       true,
		ActionViewMembers:         true,
		ActionManageTrainers:      true,
		ActionManageRoster:        true,
		ActionManagePlans:         true,
		ActionManageSubscriptions: true,
		ActionViewAllPayments:     true,
		ActionManageSchedules:     true,
		ActionViewOwnData:         true,
	},
	RoleTrainer: {
		ActionViewMembers:     true,
		ActionManageSchedules: true,
		ActionViewOwnData:     true,
	},
	RoleMember: {
		ActionPurchaseOwn: true,
		ActionViewOwnData: true,
	},
}

// Allowed is a pure (role, action) -> bool capability check.
func Allowed(role Role, action Action) bool {
	return capabilities[role][action]
}
