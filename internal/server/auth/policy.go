package auth

import "github.com/dmitrijs2005/libhub/internal/server/models"

// Action names a capability checked per request.
type Action string

const (
	ActionProfileRead     Action = "profile:read"
	ActionProfileUpdate   Action = "profile:update"
	ActionLibrariesManage Action = "libraries:manage"
	ActionUploadsCreate   Action = "uploads:create"
	ActionUsersManage     Action = "users:manage"
)

// Resource is the object an action applies to. OwnerID is empty for
// collection-level actions.
type Resource struct {
	OwnerID string
}

var grants = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionProfileRead:     true,
		ActionProfileUpdate:   true,
		ActionLibrariesManage: true,
		ActionUploadsCreate:   true,
	},
	models.RoleSuperadmin: {
		ActionProfileRead:     true,
		ActionProfileUpdate:   true,
		ActionLibrariesManage: true,
		ActionUploadsCreate:   true,
		ActionUsersManage:     true,
	},
}

// Authorize reports whether id may perform action on res. Owner-scoped
// resources are only accessible to their owner, whatever the role.
func Authorize(id Identity, action Action, res Resource) bool {
	if id.UserID == "" {
		return false
	}
	if !grants[id.Role][action] {
		return false
	}
	if res.OwnerID != "" && res.OwnerID != id.UserID && action != ActionUsersManage {
		return false
	}
	return true
}
