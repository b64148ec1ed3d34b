package server

import (
	"strings"

	"github.com/judwhite/go-svc"
	"github.com/massdb/massdb/internal/identity"
	"github.com/massdb/massdb/internal/launch"
	"github.com/massdb/massdb/internal/manager"
	"github.com/massdb/massdb/internal/options"
	"github.com/massdb/massdb/pkg/mlog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var identityDecodeFailTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "massdb",
	Subsystem: "identity",
	Name:      "decode_fail_total",
	Help:      "Launch tokens that failed to decode at startup.",
})

// Server is the process skeleton shared by every massdb role. It owns the
// node identity for the lifetime of the process.
type Server struct {
	opts    *options.Options
	node    *identity.Node
	manager *manager.Server
	mlog.Log
}

func New(opts *options.Options) *Server {
	return &Server{
		opts: opts,
		Log:  mlog.NewMLog("server"),
	}
}

// Init resolves the node identity. Runs once, on the startup goroutine,
// before anything concurrent exists. An unknown role is unrecoverable and
// surfaces as an error the caller turns into process exit.
func (s *Server) Init(env svc.Environment) error {
	node, err := identity.NewNode(s.opts.Role, s.opts.Bootstrap)
	if err != nil {
		return errors.Wrap(err, "invalid node configuration")
	}
	s.node = node

	if strings.TrimSpace(s.opts.Cluster.CoordinatorHost) != "" {
		s.node.SetCoordinatorAddr(s.opts.Cluster.CoordinatorHost, s.opts.Cluster.CoordinatorPort)
	}

	if err := s.bindLaunchToken(); err != nil {
		return err
	}

	if s.opts.Manager.On {
		s.manager = manager.New(s.opts, s.node)
	}
	return nil
}

// bindLaunchToken binds the process identity when this process was spawned
// as a query worker. The token can arrive via configuration or via the
// launch environment; absence of both is the normal standalone case. A token
// that is present but does not decode makes the worker useless for its
// slice, so startup fails rather than limping on uninitialized.
func (s *Server) bindLaunchToken() error {
	token := strings.TrimSpace(s.opts.Launch.Token)
	if token == "" {
		envToken, present := launch.TokenFromEnv()
		if !present {
			return nil
		}
		token = envToken
	}
	if err := s.node.BindProcessToken(token); err != nil {
		identityDecodeFailTotal.Inc()
		return errors.Wrap(err, "launch token")
	}
	return nil
}

func (s *Server) Start() error {
	s.Info("node identity resolved",
		zap.String("role", s.node.Role().String()),
		zap.String("displayName", s.node.DisplayName()),
		zap.String("dump", s.node.Dump()),
	)
	if s.manager != nil {
		s.manager.Start()
	}
	return nil
}

func (s *Server) Stop() error {
	if s.manager != nil {
		s.manager.Stop()
	}
	return mlog.Sync()
}

// Node exposes the process identity to the rest of the system.
func (s *Server) Node() *identity.Node {
	return s.node
}
