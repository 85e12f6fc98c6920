package link

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/atcpilot/sectorlink/pkg/logging"
)

// CommandRunner executes an external command and returns its combined
// stdout and stderr. The privileged-link and junction mechanisms go
// through it, so tests can substitute a fake.
type CommandRunner interface {
	Run(name string, args ...string) (output string, err error)
}

// commandTimeout bounds a single external link command. mklink is
// near-instant; anything longer means a wedged shell.
const commandTimeout = 2 * time.Minute

type execRunner struct{}

// NewRunner returns a CommandRunner backed by os/exec.
func NewRunner() CommandRunner {
	return &execRunner{}
}

func (r *execRunner) Run(name string, args ...string) (string, error) {
	logger := logging.GetLogger("link.runner")

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	logger.Debug().
		Str("command", name).
		Strs("args", args).
		Bool("succeeded", err == nil).
		Msg("External link command finished")

	return buf.String(), err
}
