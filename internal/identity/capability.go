package identity

import "fmt"

// CapabilitySet is derived solely from the node role.
//
// SupportsMotion marks roles that take part in inter-process data motion,
// SupportsLogSync marks roles that replay the coordinator's log stream,
// DefaultLogin marks roles that accept logins without an explicit grant.
type CapabilitySet struct {
	SupportsMotion  bool
	SupportsLogSync bool
	DefaultLogin    bool
}

// DeriveCapabilities is total over the six valid roles. Any other value
// reaching here is a programming defect, the role has already passed
// through ResolveRole.
func DeriveCapabilities(role NodeRole) CapabilitySet {
	switch role {
	case RoleBootstrap, RoleGTM, RoleCatalogService:
		return CapabilitySet{}
	case RoleCoordinator:
		return CapabilitySet{SupportsMotion: true}
	case RoleStandby:
		return CapabilitySet{SupportsLogSync: true}
	case RoleWorker:
		return CapabilitySet{SupportsMotion: true, DefaultLogin: true}
	default:
		panic(fmt.Sprintf("identity: capability derivation for role %s", role))
	}
}
