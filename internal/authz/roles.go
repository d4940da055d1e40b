package authz

const (
	RoleAccountManager = "account_manager"
	RoleManager        = "manager"
	RoleHead           = "head"
	RoleAdmin          = "admin"
)

// Scope labels surfaced to the UI so users know what slice of data they are
// looking at. One-to-one with the role table.
const (
	ScopeGlobal     = "global"
	ScopeEntity     = "entity"
	ScopeTeam       = "team"
	ScopeIndividual = "individual"
)

func Valid(role string) bool {
	switch role {
	case RoleAccountManager, RoleManager, RoleHead, RoleAdmin:
		return true
	}
	return false
}

// IsElevated: roles that may see and mutate records beyond their own.
func IsElevated(role string) bool {
	return role == RoleManager || role == RoleHead || role == RoleAdmin
}

func ScopeLabel(role string) string {
	switch role {
	case RoleAdmin:
		return ScopeGlobal
	case RoleHead:
		return ScopeEntity
	case RoleManager:
		return ScopeTeam
	default:
		return ScopeIndividual
	}
}
