package identity

import (
	"fmt"

	"github.com/pkg/errors"
)

// NodeRole is the static classification of a server process within the
// cluster topology. It is resolved once at startup and never changes for
// the remainder of the process lifetime.
type NodeRole uint8

const (
	RoleInvalid NodeRole = iota
	RoleBootstrap
	RoleCoordinator
	RoleStandby
	RoleWorker
	RoleGTM // global transaction manager
	RoleCatalogService
)

// Role names accepted from configuration. The names are historical and do
// not always match the role constants (a coordinator is configured as
// "master", a worker as "segment").
const (
	RoleNameCoordinator    = "master"
	RoleNameWorker         = "segment"
	RoleNameStandby        = "standby"
	RoleNameGTM            = "gtm"
	RoleNameCatalogService = "catalogservice"
)

var ErrUnknownRole = errors.New("unknown node role")

// ResolveRole maps a configured role name to its NodeRole. The bootstrap
// flag overrides the name unconditionally. An unrecognized name is an
// unrecoverable configuration error; the caller is expected to terminate
// the process.
func ResolveRole(name string, bootstrap bool) (NodeRole, error) {
	if bootstrap {
		return RoleBootstrap, nil
	}
	switch name {
	case RoleNameCoordinator:
		return RoleCoordinator, nil
	case RoleNameWorker:
		return RoleWorker, nil
	case RoleNameStandby:
		return RoleStandby, nil
	case RoleNameGTM:
		return RoleGTM, nil
	case RoleNameCatalogService:
		return RoleCatalogService, nil
	}
	return RoleInvalid, errors.Wrapf(ErrUnknownRole, "%q", name)
}

func (r NodeRole) Uint8() uint8 {
	return uint8(r)
}

func (r NodeRole) String() string {
	switch r {
	case RoleInvalid:
		return "Invalid"
	case RoleBootstrap:
		return "Bootstrap"
	case RoleCoordinator:
		return "Coordinator"
	case RoleStandby:
		return "Standby"
	case RoleWorker:
		return "Worker"
	case RoleGTM:
		return "GTM"
	case RoleCatalogService:
		return "CatalogService"
	default:
		return fmt.Sprintf("Unknown NodeRole %d", r)
	}
}
