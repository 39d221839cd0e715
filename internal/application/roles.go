package application

// Role is the access tier assigned to a user.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePastor        Role = "pastor"
	RoleLeader        Role = "leader"
	RoleServant       Role = "servant"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdministrator, RolePastor, RoleLeader, RoleServant}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RolePastor, RoleLeader, RoleServant:
		return true
	}
	return false
}

// Label returns the pt-BR name of the role.
func (r Role) Label() string {
	switch r {
	case RoleAdministrator:
		return "Administrador"
	case RolePastor:
		return "Pastor"
	case RoleLeader:
		return "Líder"
	case RoleServant:
		return "Servo"
	}
	return string(r)
}

// Permission is a single grantable capability.
type Permission string

const (
	PermViewDashboard     Permission = "view_dashboard"
	PermViewSchedules     Permission = "view_schedules"
	PermManageSchedules   Permission = "manage_schedules"
	PermViewServants      Permission = "view_servants"
	PermManageServants    Permission = "manage_servants"
	PermViewEvents        Permission = "view_events"
	PermManageEvents      Permission = "manage_events"
	PermViewReports       Permission = "view_reports"
	PermViewAdmin         Permission = "view_admin"
	PermManageUsers       Permission = "manage_users"
	PermManagePermissions Permission = "manage_permissions"
)

// PermissionInfo describes a permission for administration screens.
type PermissionInfo struct {
	ID          Permission `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
}

// PermissionCatalog lists every permission in display order.
var PermissionCatalog = []PermissionInfo{
	{ID: PermViewDashboard, Description: "Visualizar Dashboard", Category: "Geral"},
	{ID: PermViewSchedules, Description: "Visualizar Escalas", Category: "Escalas"},
	{ID: PermManageSchedules, Description: "Gerenciar Escalas", Category: "Escalas"},
	{ID: PermViewServants, Description: "Visualizar Servos", Category: "Servos"},
	{ID: PermManageServants, Description: "Gerenciar Servos", Category: "Servos"},
	{ID: PermViewEvents, Description: "Visualizar Eventos", Category: "Eventos"},
	{ID: PermManageEvents, Description: "Gerenciar Eventos", Category: "Eventos"},
	{ID: PermViewReports, Description: "Visualizar Relatórios", Category: "Relatórios"},
	{ID: PermViewAdmin, Description: "Acessar Admin", Category: "Admin"},
	{ID: PermManageUsers, Description: "Gerenciar Usuários", Category: "Admin"},
	{ID: PermManagePermissions, Description: "Gerenciar Permissões", Category: "Admin"},
}

// AllPermissions returns every permission in catalog order.
func AllPermissions() []Permission {
	out := make([]Permission, 0, len(PermissionCatalog))
	for _, info := range PermissionCatalog {
		out = append(out, info.ID)
	}
	return out
}

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool {
	for _, info := range PermissionCatalog {
		if info.ID == p {
			return true
		}
	}
	return false
}

// permissionSet is the in-memory form of the permissions granted to a role.
type permissionSet map[Permission]struct{}

func newPermissionSet(perms []Permission) permissionSet {
	set := make(permissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s permissionSet) has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// list returns the set in catalog order.
func (s permissionSet) list() []Permission {
	out := make([]Permission, 0, len(s))
	for _, info := range PermissionCatalog {
		if s.has(info.ID) {
			out = append(out, info.ID)
		}
	}
	return out
}

// RolePermissions is the persisted role to permission mapping.
type RolePermissions map[Role][]Permission

// DefaultRolePermissions returns the mapping new installations start with.
func DefaultRolePermissions() RolePermissions {
	return RolePermissions{
		RoleAdministrator: AllPermissions(),
		RolePastor: {
			PermViewDashboard, PermViewSchedules, PermManageSchedules, PermViewServants, PermManageServants,
			PermViewEvents, PermManageEvents, PermViewReports, PermViewAdmin, PermManageUsers,
		},
		RoleLeader: {
			PermViewDashboard, PermViewSchedules, PermManageSchedules, PermViewServants, PermManageServants, PermViewEvents,
		},
		RoleServant: {
			PermViewDashboard, PermViewSchedules, PermViewServants, PermViewEvents,
		},
	}
}

// toPermissionIndex converts a stored mapping, dropping unknown roles and
// permissions and pinning the administrator to every permission.
func toPermissionIndex(mapping RolePermissions) map[Role]permissionSet {
	index := make(map[Role]permissionSet, len(Roles))
	for role, perms := range mapping {
		if !role.Valid() {
			continue
		}
		valid := make([]Permission, 0, len(perms))
		for _, p := range perms {
			if p.Valid() {
				valid = append(valid, p)
			}
		}
		index[role] = newPermissionSet(valid)
	}
	index[RoleAdministrator] = newPermissionSet(AllPermissions())
	return index
}

func fromPermissionIndex(index map[Role]permissionSet) RolePermissions {
	out := make(RolePermissions, len(index))
	for role, set := range index {
		out[role] = set.list()
	}
	return out
}
