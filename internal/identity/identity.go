package identity

// Package identity integrates the external identity provider: token
// verification, the role capability table, and the provider's admin API.
// Authentication itself is delegated to the provider; this package only
// resolves "who is calling" once per request and answers "may this role do X".

// Identity is the resolved caller passed explicitly into service calls.
// It is resolved once at the HTTP boundary and never re-fetched deeper in.
type Identity struct {
	ID         string // local mirror row ID
	ExternalID string // identity-provider account ID
	Role       string
}

// Capability names one permission checked before an operation.
type Capability string

const (
	CapDocumentsRead  Capability = "documents:read"
	CapDocumentsWrite Capability = "documents:write"
	CapAdminDocuments Capability = "admin:documents"
	CapAdminFolders   Capability = "admin:folders"
	CapAdminStats     Capability = "admin:stats"
	CapAdminUsers     Capability = "admin:users"
)

// roleCapabilities is the declarative permission table keyed by role. Admin
// checks go through this table only; no endpoint carries its own inline rule.
var roleCapabilities = map[string][]Capability{
	"admin": {
		CapDocumentsRead,
		CapDocumentsWrite,
		CapAdminDocuments,
		CapAdminFolders,
		CapAdminStats,
		CapAdminUsers,
	},
	"empleado": {
		CapDocumentsRead,
		CapDocumentsWrite,
	},
}

// Allowed reports whether the given role holds the capability.
func Allowed(role string, c Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == c {
			return true
		}
	}
	return false
}

// Can reports whether the identity holds the capability.
func (id Identity) Can(c Capability) bool {
	return Allowed(id.Role, c)
}
