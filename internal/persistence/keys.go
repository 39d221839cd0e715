package persistence

// Collection keys. They are stored verbatim by every backend and must stay
// stable across versions.
const (
	KeyServants        = "servants"
	KeySchedules       = "schedules"
	KeyEvents          = "events"
	KeyUsers           = "users"
	KeyRolePermissions = "role-permissions"
	KeyActiveUserID    = "active-user-id"
)
