package options

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Mode string

const (
	// DebugMode development mode
	DebugMode Mode = "debug"
	// ReleaseMode production mode
	ReleaseMode Mode = "release"
)

type Options struct {
	vp      *viper.Viper
	Mode    Mode
	RootDir string

	// Role is the configured role name, one of master, segment, standby,
	// gtm, catalogservice. Bootstrap overrides it.
	Role      string
	Bootstrap bool

	Cluster struct {
		CoordinatorHost string
		CoordinatorPort int
	}

	Launch struct {
		// Token is the process identity token handed to this process by the
		// launching coordinator, empty when this process was not spawned as
		// a query worker.
		Token string
		// WorkerBin is the binary the coordinator spawns for query workers.
		// Empty means the coordinator's own binary.
		WorkerBin string
	}

	Logger struct {
		Dir     string
		Level   zapcore.Level
		LineNum bool
	}

	Manager struct {
		On   bool
		Addr string
		// PprofOn exposes pprof on the manager server.
		PprofOn bool
	}
}

func New() *Options {
	opts := &Options{
		Mode:    DebugMode,
		RootDir: "./massdbdata",
		Role:    "master",
	}
	opts.Manager.Addr = "0.0.0.0:5300"
	opts.Logger.Dir = "./logs"
	opts.Logger.Level = zapcore.InfoLevel
	return opts
}

func (o *Options) ConfigureWithViper(vp *viper.Viper) {
	o.vp = vp

	o.RootDir = o.getString("rootDir", o.RootDir)

	modeStr := o.getString("mode", string(o.Mode))
	if strings.TrimSpace(modeStr) == "" {
		o.Mode = DebugMode
	} else {
		o.Mode = Mode(modeStr)
	}

	o.Role = o.getString("role", o.Role)
	o.Bootstrap = o.getBool("bootstrap", o.Bootstrap)

	o.Cluster.CoordinatorHost = o.getString("cluster.coordinatorHost", o.Cluster.CoordinatorHost)
	o.Cluster.CoordinatorPort = o.getInt("cluster.coordinatorPort", o.Cluster.CoordinatorPort)

	o.Launch.Token = o.getString("launch.token", o.Launch.Token)
	o.Launch.WorkerBin = o.getString("launch.workerBin", o.Launch.WorkerBin)

	o.Logger.Dir = o.getString("logger.dir", o.Logger.Dir)
	logLevel := o.vp.GetInt("logger.level")
	if logLevel != 0 {
		o.Logger.Level = zapcore.Level(logLevel)
	} else if o.Mode == DebugMode {
		o.Logger.Level = zapcore.DebugLevel
	}
	o.Logger.LineNum = o.getBool("logger.lineNum", o.Logger.LineNum)

	o.Manager.On = o.getBool("manager.on", o.Manager.On)
	o.Manager.Addr = o.getString("manager.addr", o.Manager.Addr)
	o.Manager.PprofOn = o.getBool("manager.pprofOn", o.Manager.PprofOn)
}

func (o *Options) getString(key string, defaultValue string) string {
	v := o.vp.GetString(key)
	if v == "" {
		return defaultValue
	}
	return v
}

func (o *Options) getInt(key string, defaultValue int) int {
	v := o.vp.GetInt(key)
	if v == 0 {
		return defaultValue
	}
	return v
}

func (o *Options) getBool(key string, defaultValue bool) bool {
	objV := o.vp.Get(key)
	if objV == nil {
		return defaultValue
	}
	return cast.ToBool(objV)
}
