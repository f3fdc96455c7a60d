package process

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config configures a Runner.
type Config struct {
	// Python is the interpreter used for scripts.
	Python string

	// Terminals lists the terminal emulators tried, in order, on systems
	// other than Windows and macOS.
	Terminals []string
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	python := "python3"
	if runtime.GOOS == "windows" {
		python = "python"
	}
	return Config{
		Python:    python,
		Terminals: []string{"gnome-terminal", "xterm", "konsole"},
	}
}

// Result is the outcome of a completed run.
type Result struct {
	// ID uniquely identifies the run.
	ID uuid.UUID

	Path     string
	Kind     Kind
	Stdout   string
	Stderr   string
	ExitCode int

	// Duration is the wall time from start to exit.
	Duration time.Duration
}

// Transcript renders the output the way the output pane shows it: standard
// output, then standard error under an errors banner, then the exit code.
func (r Result) Transcript() string {
	var sb strings.Builder
	sb.WriteString(r.Stdout)
	if r.Stderr != "" {
		sb.WriteString("\n--- ERRORS ---\n")
		sb.WriteString(r.Stderr)
	}
	fmt.Fprintf(&sb, "\n\n--- Process completed with exit code: %d ---", r.ExitCode)
	return sb.String()
}

// Runner executes files. A Runner has no mutable state and is safe for
// concurrent use.
type Runner struct {
	config Config

	goos     string
	lookPath func(file string) (string, error)
	start    func(cmd *exec.Cmd) error
}

// NewRunner creates a runner. Empty config fields take their defaults.
func NewRunner(config Config) *Runner {
	def := DefaultConfig()
	if config.Python == "" {
		config.Python = def.Python
	}
	if len(config.Terminals) == 0 {
		config.Terminals = def.Terminals
	}
	return &Runner{
		config:   config,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Config returns the runner configuration.
func (r *Runner) Config() Config {
	return r.config
}

// Run executes path and blocks until it exits. Standard output and
// standard error are captured separately.
//
// Returns ErrUnsupportedKind for files that are not scripts or batch files,
// and ErrLaunchFailed when the process cannot be started.
func (r *Runner) Run(path string) (Result, error) {
	res := Result{ID: uuid.New(), Path: path, Kind: DetectKind(path), ExitCode: -1}

	abs, err := filepath.Abs(path)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}

	var cmd *exec.Cmd
	switch res.Kind {
	case KindScript:
		cmd = exec.Command(r.config.Python, abs)
	case KindBatchScript:
		if r.goos != "windows" {
			return res, fmt.Errorf("%w: %w", ErrLaunchFailed, ErrBatchUnsupported)
		}
		cmd = exec.Command("cmd", "/C", abs)
	default:
		return res, fmt.Errorf("%w: %s", ErrUnsupportedKind, filepath.Base(path))
	}
	cmd.Dir = filepath.Dir(abs)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err = cmd.Run()
	res.Duration = time.Since(started)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}
	res.ExitCode = 0
	return res, nil
}

// RunInTerminal opens a terminal window that runs path and waits for a key
// press before closing. It returns once the terminal is launched.
//
// Returns ErrNoTerminal when none of the configured terminals is installed.
func (r *Runner) RunInTerminal(path string) error {
	cmd, err := r.terminalCommand(path)
	if err != nil {
		return err
	}
	if err := r.start(cmd); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}
	return nil
}

// terminalCommand builds the command that opens a terminal for path.
func (r *Runner) terminalCommand(path string) (*exec.Cmd, error) {
	kind := DetectKind(path)
	if kind == KindUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, filepath.Base(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}
	dir, name := filepath.Dir(abs), filepath.Base(abs)

	if r.goos == "windows" {
		script := fmt.Sprintf(`cd /d "%s" && "%s" && pause`, dir, name)
		if kind == KindScript {
			script = fmt.Sprintf(`cd /d "%s" && %s "%s" && pause`, dir, r.config.Python, name)
		}
		return exec.Command("cmd", "/C", "start", "cmd", "/K", script), nil
	}
	if kind == KindBatchScript {
		return nil, fmt.Errorf("%w: %w", ErrLaunchFailed, ErrBatchUnsupported)
	}

	shell := fmt.Sprintf("cd %s && %s %s; echo", shellQuote(dir), r.config.Python, shellQuote(name))

	if r.goos == "darwin" {
		apple := fmt.Sprintf(`tell application "Terminal" to do script "%s; echo Press any key to continue...; read -n 1"`,
			appleQuote(shell))
		return exec.Command("osascript", "-e", apple), nil
	}

	shell += "; read -p 'Press Enter to continue...'"
	for _, term := range r.config.Terminals {
		bin, err := r.lookPath(term)
		if err != nil {
			continue
		}
		if filepath.Base(term) == "gnome-terminal" {
			return exec.Command(bin, "--", "bash", "-c", shell), nil
		}
		return exec.Command(bin, "-e", "bash -c "+shellQuote(shell)), nil
	}
	return nil, ErrNoTerminal
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// appleQuote escapes s for use inside an AppleScript string literal.
func appleQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
