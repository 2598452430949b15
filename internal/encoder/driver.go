package encoder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/hashicorp/go-hclog"
)

// Driver spawns ffmpeg and waits for it to become ready.
type Driver struct {
	logger     hclog.Logger
	ffmpegPath string
}

func NewDriver(logger hclog.Logger, ffmpegPath string) *Driver {
	return &Driver{logger: logger.Named("encoder"), ffmpegPath: ffmpegPath}
}

// Process is a running (or exited) encode, returned once it has reached
// readiness. Interrupt cancels it.
type Process struct {
	cmd *exec.Cmd
}

// Interrupt sends SIGINT, ignoring the error if the child has already
// exited (spec §5 Cancellation; grounded on utils.rs's Signalable).
func (p *Process) Interrupt() {
	if p.cmd.Process == nil {
		return
	}
	_ = p.cmd.Process.Signal(syscall.SIGINT)
}

// Start launches ffmpeg into outputDir and blocks until readiness: either
// 1.5*SegmentTime seconds of encoded wallclock have been produced past
// startTime, or the process has exited (spec §4.3).
func (d *Driver) Start(sourcePath, outputDir string, encodeArgs []string, startTime float64) (*Process, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir %s: %w", outputDir, err)
	}

	args := fullArgs(sourcePath, outputDir, encodeArgs, startTime)
	cmd := exec.Command(d.ffmpegPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attaching stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("attaching stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}
	d.logger.Debug("started encode", "pid", cmd.Process.Pid, "output_dir", outputDir)

	progress := newProgressWatcher()
	go progress.consume(stdout)

	var stderrBuf strings.Builder
	var stderrMu sync.Mutex
	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			stderrMu.Lock()
			stderrBuf.WriteString(scanner.Text())
			stderrBuf.WriteString("\n")
			stderrMu.Unlock()
		}
	}()

	threshold := startTime + ReadyThreshold
	for {
		ready, ok := progress.next()
		if !ok {
			// progress task ended: the child's stdout closed, meaning it
			// exited. Wait for the real exit status.
			err := cmd.Wait()
			stderrMu.Lock()
			collected := stderrBuf.String()
			stderrMu.Unlock()
			if err != nil {
				return nil, translateStderr(collected)
			}
			return &Process{cmd: cmd}, nil
		}
		if ready >= threshold {
			return &Process{cmd: cmd}, nil
		}
	}
}

// RunToCompletion encodes sourcePath into a single file at outputPath
// and blocks until ffmpeg exits, for the offline-download route (spec §3
// supplemented feature): unlike Start, there is no readiness threshold —
// the caller waits for the whole file.
func (d *Driver) RunToCompletion(sourcePath, outputPath string, encodeArgs []string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir for %s: %w", outputPath, err)
	}

	args := downloadArgs(sourcePath, outputPath, encodeArgs)
	cmd := exec.Command(d.ffmpegPath, args...)

	var stderrBuf strings.Builder
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		return translateStderr(stderrBuf.String())
	}
	return nil
}

// progressWatcher is a single-slot broadcast of the latest out_time_us
// value, in seconds, parsed from ffmpeg's -progress stdout stream
// (spec §4.3).
type progressWatcher struct {
	values chan float64
}

func newProgressWatcher() *progressWatcher {
	return &progressWatcher{values: make(chan float64, 1)}
}

// consume reads key=value lines from r, forwarding out_time_us as seconds.
// Closes values when the stream ends.
func (w *progressWatcher) consume(r io.Reader) {
	defer close(w.values)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key := line[:idx]
		value := line[idx+1:]
		if key != "out_time_us" {
			continue
		}
		us, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			us = 0
		}
		w.push(float64(us) / 1_000_000)
	}
}

func (w *progressWatcher) push(seconds float64) {
	select {
	case <-w.values:
	default:
	}
	select {
	case w.values <- seconds:
	default:
	}
}

// next blocks for the next update; ok is false once the channel closes.
func (w *progressWatcher) next() (float64, bool) {
	v, ok := <-w.values
	return v, ok
}
