// Package sen2three launches the sen2three L3_Process executable.
package sen2three

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aalvaropc/s2composite/internal/ctxlog"
	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

const (
	// DefaultExecutable is the sen2three entry point on PATH.
	DefaultExecutable = "L3_Process"

	CleanFlag      = "--clean"
	ResolutionFlag = "--resolution"

	// DefaultWaitDelay bounds how long the child may take to exit after an
	// interrupt caused by context cancellation before it is killed.
	DefaultWaitDelay = 30 * time.Second

	maxLineBytes = 1 << 20
)

// BuildCommand returns the argv for processing inputDir. Resolution 0 lets
// sen2three process every resolution.
func BuildCommand(executable, inputDir string, res domain.Resolution) []string {
	if strings.TrimSpace(executable) == "" {
		executable = DefaultExecutable
	}
	cmd := []string{executable, inputDir, CleanFlag}
	if res != domain.ResolutionAll {
		cmd = append(cmd, ResolutionFlag, strconv.Itoa(int(res)))
	}
	return cmd
}

type Runner struct {
	executable string
	out        io.Writer
	waitDelay  time.Duration

	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)
}

type Option func(*Runner)

// WithOutput sets where stdout lines are echoed in verbose mode.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithExecutable overrides the L3_Process path.
func WithExecutable(exe string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(exe) != "" {
			r.executable = exe
		}
	}
}

func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) { r.waitDelay = d }
}

func New(opts ...Option) *Runner {
	r := &Runner{
		executable: DefaultExecutable,
		out:        os.Stdout,
		waitDelay:  DefaultWaitDelay,
		notify:     signal.Notify,
		stop:       signal.Stop,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ProcessRunner = (*Runner)(nil)

func (r *Runner) Command(inputDir string, res domain.Resolution) []string {
	return BuildCommand(r.executable, inputDir, res)
}

// Run starts command, forwards interrupts received by this process to it and
// waits for it to exit. Both output streams are captured line by line.
func (r *Runner) Run(ctx context.Context, command []string, verbose bool) (domain.ProcessOutput, error) {
	var out domain.ProcessOutput
	if len(command) == 0 {
		return out, &domain.OpError{
			Op:   "sen2three.run",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("empty command: %w", domain.ErrInvalidInput),
		}
	}
	log := ctxlog.FromContext(ctx)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = r.waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return out, startError(command, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return out, startError(command, err)
	}

	sigs := make(chan os.Signal, 1)
	r.notify(sigs, os.Interrupt)
	defer r.stop(sigs)

	if err := cmd.Start(); err != nil {
		return out, startError(command, err)
	}
	log.Info("sen2three.start", "pid", cmd.Process.Pid, "command", strings.Join(command, " "))

	var forwarded atomic.Bool
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sig := <-sigs:
				log.Warn("sen2three.forward_signal", "signal", sig.String(), "pid", cmd.Process.Pid)
				forwarded.Store(true)
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.Stdout = scanLines(stdout, func(line string) {
			if verbose {
				fmt.Fprintln(r.out, line)
			}
			log.Debug("sen2three.stdout", "line", line)
		})
	}()
	go func() {
		defer wg.Done()
		out.Stderr = scanLines(stderr, func(line string) {
			log.Debug("sen2three.stderr", "line", line)
		})
	}()
	wg.Wait()

	err = cmd.Wait()
	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	if forwarded.Load() {
		log.Warn("sen2three.interrupted", "exit_code", code)
		return out, interruptedError(command, err)
	}
	if err != nil {
		log.Error("sen2three.exit", "error", err, "exit_code", code)
		return out, &domain.OpError{
			Op:   "sen2three.run",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("command failed: %s: %w", strings.Join(command, " "), err),
		}
	}

	log.Info("sen2three.exit", "exit_code", 0, "stdout_lines", len(out.Stdout))
	return out, nil
}

// interruptedError reports a child that exited after an interrupt was
// forwarded to it, whatever its exit status.
func interruptedError(command []string, err error) error {
	wrapped := fmt.Errorf("command interrupted: %s: %w", strings.Join(command, " "), domain.ErrInterrupted)
	if err != nil {
		wrapped = fmt.Errorf("command interrupted: %s: %w: %w", strings.Join(command, " "), domain.ErrInterrupted, err)
	}
	return &domain.OpError{
		Op:   "sen2three.run",
		Kind: domain.KindExecution,
		Err:  wrapped,
	}
}

func startError(command []string, err error) error {
	return &domain.OpError{
		Op:   "sen2three.start",
		Kind: domain.KindExecution,
		Err:  fmt.Errorf("start %s: %w", command[0], err),
	}
}

func scanLines(r io.Reader, each func(string)) []string {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		lines = append(lines, line)
		each(line)
	}
	// Drain whatever is left so the child never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, r)
	return lines
}
