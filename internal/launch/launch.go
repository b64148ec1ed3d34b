package launch

import (
	"context"
	"os"
	"os/exec"

	"github.com/massdb/massdb/internal/identity"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TokenEnvKey is the environment slot the identity token travels in between
// the launching coordinator and the spawned worker.
const TokenEnvKey = "MASSDB_PROCESS_IDENTITY"

var ErrUninitialized = errors.New("process identity is uninitialized")

var workerLaunchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "massdb",
	Subsystem: "launch",
	Name:      "worker_total",
	Help:      "Worker processes prepared for launch, by writer flag.",
}, []string{"writer"})

// Command builds the exec.Cmd for one worker invocation. The process
// identity is encoded into the child's environment; everything else about
// the spawn (binary, args, stdio) is the caller's business.
func Command(ctx context.Context, bin string, args []string, pi identity.ProcessIdentity) (*exec.Cmd, error) {
	token, ok := pi.Encode()
	if !ok {
		return nil, errors.Wrap(ErrUninitialized, "refusing to launch worker")
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), TokenEnvKey+"="+token)

	writer := "f"
	if pi.IsWriter {
		writer = "t"
	}
	workerLaunchTotal.WithLabelValues(writer).Inc()
	return cmd, nil
}

// TokenFromEnv reads the raw launch token on the worker side. The second
// return value is false when no token is present, which is the normal case
// for every process that was not spawned as a query worker. Decoding is the
// identity owner's job.
func TokenFromEnv() (string, bool) {
	return os.LookupEnv(TokenEnvKey)
}
