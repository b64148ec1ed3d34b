package identity

import (
	"os"
	"testing"

	"github.com/massdb/massdb/pkg/mlog"
)

func TestMain(m *testing.M) {
	opts := mlog.NewOptions()
	opts.LogDir = os.TempDir()
	mlog.Configure(opts)
	os.Exit(m.Run())
}
