package manager

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/massdb/massdb/internal/identity"
	"github.com/massdb/massdb/internal/options"
	"github.com/massdb/massdb/pkg/mlog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server exposes the node identity for troubleshooting: GET /node, a health
// probe and prometheus metrics. Read-only, it never mutates the identity.
type Server struct {
	opts *options.Options
	node *identity.Node
	hs   *http.Server
	mlog.Log
}

func New(opts *options.Options, node *identity.Node) *Server {
	if opts.Mode == options.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		opts: opts,
		node: node,
		Log:  mlog.NewMLog("manager"),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if opts.Manager.PprofOn {
		pprof.Register(r)
	}

	r.GET("/health", s.handleHealth)
	r.GET("/node", s.handleNode)
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	s.hs = &http.Server{
		Addr:    opts.Manager.Addr,
		Handler: r,
	}
	return s
}

func (s *Server) Start() {
	go func() {
		s.Info("manager server started", zap.String("addr", s.opts.Manager.Addr))
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Panic("manager server exited", zap.Error(err))
		}
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.hs.Shutdown(ctx); err != nil {
		s.Warn("manager server shutdown", zap.Error(err))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNode(c *gin.Context) {
	caps := s.node.Capabilities()
	pi := s.node.ProcessIdentity()

	resp := gin.H{
		"role":         s.node.Role().String(),
		"display_name": s.node.DisplayName(),
		"invocation":   s.node.InvocationId(),
		"capabilities": gin.H{
			"supports_motion":   caps.SupportsMotion,
			"supports_log_sync": caps.SupportsLogSync,
			"default_login":     caps.DefaultLogin,
		},
		"process_identity": gin.H{
			"initialized": pi.Initialized,
		},
	}
	if host, port, ok := s.node.CoordinatorAddr(); ok {
		resp["coordinator"] = gin.H{"host": host, "port": port}
	}
	if pi.Initialized {
		resp["process_identity"] = gin.H{
			"initialized":     true,
			"slice_id":        pi.SliceID,
			"id_in_slice":     pi.IDInSlice,
			"gang_member_num": pi.GangMemberNum,
			"command_count":   pi.CommandCount,
			"is_writer":       pi.IsWriter,
		}
	}
	c.JSON(http.StatusOK, resp)
}
