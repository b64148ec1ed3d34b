package server

import (
	"testing"

	"github.com/massdb/massdb/internal/identity"
	"github.com/massdb/massdb/internal/launch"
	"github.com/massdb/massdb/internal/options"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerInit(t *testing.T) {
	opts := options.New()
	opts.Role = "master"
	opts.Cluster.CoordinatorHost = "coord-1"
	opts.Cluster.CoordinatorPort = 5432

	s := New(opts)
	require.NoError(t, s.Init(nil))

	assert.True(t, s.Node().IsCoordinator())
	host, port, ok := s.Node().CoordinatorAddr()
	assert.True(t, ok)
	assert.Equal(t, "coord-1", host)
	assert.Equal(t, 5432, port)

	require.NoError(t, s.Start())
	require.NoError(t, s.Stop())
}

func TestServerInitUnknownRole(t *testing.T) {
	opts := options.New()
	opts.Role = "overlord"

	s := New(opts)
	err := s.Init(nil)
	assert.Error(t, err)
	assert.Equal(t, identity.ErrUnknownRole, errors.Cause(err))
}

func TestServerInitBindsLaunchToken(t *testing.T) {
	pi := identity.ProcessIdentity{
		Initialized:   true,
		SliceID:       5,
		IDInSlice:     1,
		GangMemberNum: 2,
		CommandCount:  9,
		IsWriter:      false,
	}
	token, ok := pi.Encode()
	require.True(t, ok)
	t.Setenv(launch.TokenEnvKey, token)

	opts := options.New()
	opts.Role = "segment"

	s := New(opts)
	require.NoError(t, s.Init(nil))
	assert.Equal(t, pi, s.Node().ProcessIdentity())
}

func TestServerInitRejectsMalformedToken(t *testing.T) {
	opts := options.New()
	opts.Role = "segment"
	opts.Launch.Token = "ProcessIdentity_Begin_slice_nope_idx_0_gang_1_cmd_1_writer_f_End_ProcessIdentity"

	s := New(opts)
	err := s.Init(nil)
	assert.Error(t, err)
	assert.Equal(t, identity.ErrInvalidToken, errors.Cause(err))
	assert.False(t, s.Node().ProcessIdentity().Initialized)
}
