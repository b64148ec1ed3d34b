package options

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestConfigureWithViperDefaults(t *testing.T) {
	opts := New()
	opts.ConfigureWithViper(viper.New())

	assert.Equal(t, DebugMode, opts.Mode)
	assert.Equal(t, "master", opts.Role)
	assert.False(t, opts.Bootstrap)
	assert.Equal(t, zapcore.DebugLevel, opts.Logger.Level)
	assert.Equal(t, "0.0.0.0:5300", opts.Manager.Addr)
}

func TestConfigureWithViperOverrides(t *testing.T) {
	vp := viper.New()
	vp.Set("mode", "release")
	vp.Set("role", "segment")
	vp.Set("bootstrap", true)
	vp.Set("cluster.coordinatorHost", "coord-1")
	vp.Set("cluster.coordinatorPort", 5432)
	vp.Set("launch.token", "ProcessIdentity_Begin_slice_1_idx_0_gang_1_cmd_1_writer_f_End_ProcessIdentity")
	vp.Set("manager.on", true)
	vp.Set("manager.addr", "127.0.0.1:6300")

	opts := New()
	opts.ConfigureWithViper(vp)

	assert.Equal(t, ReleaseMode, opts.Mode)
	assert.Equal(t, "segment", opts.Role)
	assert.True(t, opts.Bootstrap)
	assert.Equal(t, "coord-1", opts.Cluster.CoordinatorHost)
	assert.Equal(t, 5432, opts.Cluster.CoordinatorPort)
	assert.NotEmpty(t, opts.Launch.Token)
	assert.True(t, opts.Manager.On)
	assert.Equal(t, "127.0.0.1:6300", opts.Manager.Addr)
	assert.Equal(t, zapcore.InfoLevel, opts.Logger.Level)
}
