package transcode

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/Sage222/SageDialogEnhance/internal/services"
)

// ProcessHandle is the slice of os.Process the cancel token needs.
type ProcessHandle interface {
	Signal(sig os.Signal) error
}

// Executor abstracts command execution for testability. onLine receives
// every output line from stdout and stderr merged into one stream; onStart
// fires once the process is running.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string), onStart func(ProcessHandle)) error
}

type commandExecutor struct{}

// NewExecutor returns the production executor backed by os/exec.
func NewExecutor() Executor {
	return commandExecutor{}
}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string), onStart func(ProcessHandle)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrSpawn, "transcode", "stdout pipe", "", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return services.Wrap(services.ErrSpawn, "transcode", "stderr pipe", "", err)
	}
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrSpawn, "transcode", "start "+binary, "", err)
	}
	if onStart != nil {
		onStart(cmd.Process)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return services.Wrap(services.ErrExternalTool, "transcode", "scan output", "", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcode", binary, "", err)
	}
	return nil
}
