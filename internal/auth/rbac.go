package auth

import "bukusaku/internal/model"

// Capability is a named permission gating one class of operation.
type Capability string

const (
	// CapUpload allows creating documents (and categories).
	CapUpload Capability = "upload"
	// CapApprove allows approving and rejecting documents, and reading their history.
	CapApprove Capability = "approve"
	// CapDelete allows soft-deleting documents.
	CapDelete Capability = "delete"
	// CapManageUsers allows listing all users and hard-deleting a user.
	CapManageUsers Capability = "manage_users"
)

// capabilityRoles is the single role-to-capability table. Supervisors may
// upload but not approve or delete; plain users hold no capability at all,
// their document visibility is restricted to approved documents at listing.
var capabilityRoles = map[Capability]map[model.Role]bool{
	CapUpload: {
		model.RoleAdmin:      true,
		model.RoleManager:    true,
		model.RoleSupervisor: true,
		model.RoleSuperuser:  true,
	},
	CapApprove: {
		model.RoleAdmin:     true,
		model.RoleManager:   true,
		model.RoleSuperuser: true,
	},
	CapDelete: {
		model.RoleAdmin:     true,
		model.RoleManager:   true,
		model.RoleSuperuser: true,
	},
	CapManageUsers: {
		model.RoleAdmin:     true,
		model.RoleSuperuser: true,
	},
}

// Allowed reports whether the role holds the capability.
func Allowed(role model.Role, cap Capability) bool {
	return capabilityRoles[cap][role]
}
