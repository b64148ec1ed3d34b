package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessIdentity_EncodeDecode(t *testing.T) {
	original := ProcessIdentity{
		Initialized:   true,
		SliceID:       2,
		IDInSlice:     0,
		GangMemberNum: 3,
		CommandCount:  7,
		IsWriter:      true,
	}

	token, ok := original.Encode()
	assert.True(t, ok)
	assert.Equal(t, "ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity", token)

	decoded := ProcessIdentity{}
	err := decoded.Decode(token)
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
	assert.True(t, decoded.Initialized)
}

func TestProcessIdentity_RoundTrip(t *testing.T) {
	values := []int{0, 1, -1, 42, -42, 1<<31 - 1, -(1 << 31)}
	for _, slice := range values {
		for _, writer := range []bool{true, false} {
			original := ProcessIdentity{
				Initialized:   true,
				SliceID:       slice,
				IDInSlice:     -slice,
				GangMemberNum: slice + 1,
				CommandCount:  slice - 1,
				IsWriter:      writer,
			}
			token, ok := original.Encode()
			assert.True(t, ok)

			decoded := ProcessIdentity{}
			err := decoded.Decode(token)
			assert.NoError(t, err, "token %q", token)
			assert.Equal(t, original, decoded)
		}
	}
}

func TestProcessIdentity_EncodeUninitialized(t *testing.T) {
	token, ok := ProcessIdentity{}.Encode()
	assert.False(t, ok)
	assert.Equal(t, "", token)
}

func TestProcessIdentity_DecodeFailures(t *testing.T) {
	bad := []string{
		"",
		"garbage",
		"ProcessIdentity_Begin_",
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_",                            // missing end literal
		"ProcessIdentity_Begin_slice_x_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity",         // digits expected
		"ProcessIdentity_Begin_slice__idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity",          // empty integer field
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_x_End_ProcessIdentity",         // writer not t/f
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_true_End_ProcessIdentity",      // writer not t/f
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity_",        // trailing data
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentityx",        // trailing data
		"processidentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity",         // literal mismatch
		"ProcessIdentity_Begin_slice_2_gang_3_idx_0_cmd_7_writer_t_End_ProcessIdentity",         // field order
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7",                                      // truncated
		"ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity extra",   // trailing data
		"xProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_7_writer_t_End_ProcessIdentity",        // leading data
	}
	for _, token := range bad {
		pi := ProcessIdentity{}
		err := pi.Decode(token)
		assert.Error(t, err, "token %q", token)
		assert.False(t, pi.Initialized, "token %q", token)
	}
}

func TestProcessIdentity_DecodeFailureLeavesUninitialized(t *testing.T) {
	pi := ProcessIdentity{
		Initialized: true,
		SliceID:     9,
	}
	err := pi.Decode("ProcessIdentity_Begin_slice_2_idx_0_gang_3_cmd_bad_writer_t_End_ProcessIdentity")
	assert.Error(t, err)
	assert.False(t, pi.Initialized)
}

func TestProcessIdentity_String(t *testing.T) {
	assert.Equal(t, "ProcessIdentity(uninitialized)", ProcessIdentity{}.String())

	pi := ProcessIdentity{
		Initialized:   true,
		SliceID:       1,
		IDInSlice:     2,
		GangMemberNum: 3,
		CommandCount:  4,
		IsWriter:      false,
	}
	assert.Equal(t, "ProcessIdentity(slice=1 idx=2 gang=3 cmd=4 writer=false)", pi.String())
}
