package identity

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/massdb/massdb/pkg/mlog"
	"go.uber.org/zap"
)

// MaxDisplayNameLen bounds the display name built from role and hostname.
const MaxDisplayNameLen = 64

// HostnameFunc supplies the hostname used in the display name.
type HostnameFunc func() (string, error)

type Options struct {
	Hostname HostnameFunc
}

func NewOptions(opt ...Option) *Options {
	opts := &Options{
		Hostname: os.Hostname,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

type Option func(*Options)

func WithHostname(fn HostnameFunc) Option {
	return func(opts *Options) {
		opts.Hostname = fn
	}
}

// Node is the process-wide identity of this server process. It is built
// exactly once, on the startup goroutine, before any query activity, and is
// read-only afterwards except for the one-shot process identity bind on
// spawned workers.
type Node struct {
	role         NodeRole
	displayName  string
	caps         CapabilitySet
	invocationId string // correlates log lines of one process invocation

	coordinatorHost string
	coordinatorPort int
	coordinatorSet  bool

	proc ProcessIdentity

	mlog.Log
}

// NewNode resolves the configured role name, derives the capability set and
// builds the display name. An unknown role name returns an error the startup
// sequencer converts into process exit.
func NewNode(roleName string, bootstrap bool, opt ...Option) (*Node, error) {
	opts := NewOptions(opt...)

	role, err := ResolveRole(roleName, bootstrap)
	if err != nil {
		return nil, err
	}

	hostname, err := opts.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	n := &Node{
		role:         role,
		displayName:  buildDisplayName(role, hostname),
		caps:         DeriveCapabilities(role),
		invocationId: uuid.NewString(),
		Log:          mlog.NewMLog("identity.Node"),
	}
	return n, nil
}

func buildDisplayName(role NodeRole, hostname string) string {
	name := fmt.Sprintf("%s@%s", role, hostname)
	if len(name) > MaxDisplayNameLen {
		name = name[:MaxDisplayNameLen]
	}
	return name
}

func (n *Node) Role() NodeRole {
	return n.role
}

func (n *Node) DisplayName() string {
	return n.displayName
}

func (n *Node) Capabilities() CapabilitySet {
	return n.caps
}

func (n *Node) InvocationId() string {
	return n.invocationId
}

func (n *Node) IsCoordinator() bool {
	return n.role == RoleCoordinator
}

func (n *Node) IsStandby() bool {
	return n.role == RoleStandby
}

func (n *Node) IsWorker() bool {
	return n.role == RoleWorker
}

func (n *Node) IsGtm() bool {
	return n.role == RoleGTM
}

func (n *Node) IsCatalogService() bool {
	return n.role == RoleCatalogService
}

// SetCoordinatorAddr caches the coordinator address for this process. Called
// once during startup wiring.
func (n *Node) SetCoordinatorAddr(host string, port int) {
	n.coordinatorHost = host
	n.coordinatorPort = port
	n.coordinatorSet = true
}

func (n *Node) CoordinatorAddr() (host string, port int, ok bool) {
	if !n.coordinatorSet {
		return "", 0, false
	}
	return n.coordinatorHost, n.coordinatorPort, true
}

// BindProcessToken decodes the launch token into this node's process
// identity. The identity dump is logged after the decode attempt whether it
// succeeded or not.
func (n *Node) BindProcessToken(token string) error {
	err := n.proc.Decode(token)
	if err != nil {
		n.Error("process identity decode failed", zap.Error(err), zap.String("dump", n.Dump()))
		return err
	}
	n.Debug("process identity bound", zap.String("dump", n.Dump()))
	return nil
}

// ProcessIdentity returns a copy; the node's own record cannot be mutated
// through it.
func (n *Node) ProcessIdentity() ProcessIdentity {
	return n.proc
}

// Dump renders the full identity for troubleshooting output.
func (n *Node) Dump() string {
	return fmt.Sprintf("Node(role=%s name=%s invocation=%s motion=%t logsync=%t defaultLogin=%t %s)",
		n.role, n.displayName, n.invocationId,
		n.caps.SupportsMotion, n.caps.SupportsLogSync, n.caps.DefaultLogin,
		n.proc)
}
