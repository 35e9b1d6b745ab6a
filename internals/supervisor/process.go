package supervisor

import (
	"bufio"
	"errors"
	"io"
	"os/exec"
	"sync"

	"github.com/minepkg/minelander/internals/merrors"
	"github.com/shirou/gopsutil/v3/process"
)

// maxLineSize is the longest output line that is forwarded in one piece
const maxLineSize = 1024 * 1024

type outputLine struct {
	text   string
	stderr bool
}

// Process is a running game. Its output is read by one goroutine per stream
// and can be received line by line. Kill may be called at any time
type Process struct {
	cmd   *exec.Cmd
	lines chan outputLine
	done  chan struct{}

	waitErr error
}

// start starts cmd with piped stdout and stderr
func start(cmd *exec.Cmd) (*Process, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, merrors.Process("pipe stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, merrors.Process("pipe stderr", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, merrors.Process("start game", err)
	}

	p := &Process{
		cmd:   cmd,
		lines: make(chan outputLine, 64),
		done:  make(chan struct{}),
	}

	var readers sync.WaitGroup
	readers.Add(2)
	go p.read(stdout, false, &readers)
	go p.read(stderr, true, &readers)

	go func() {
		readers.Wait()
		// all output is read, so Wait may close the pipes now
		p.waitErr = cmd.Wait()
		close(p.done)
		close(p.lines)
	}()

	return p, nil
}

func (p *Process) read(r io.Reader, stderr bool, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		p.lines <- outputLine{text: scanner.Text(), stderr: stderr}
	}
	// a line longer than maxLineSize stops the scanner. drain the rest so the game does not block
	if scanner.Err() != nil {
		io.Copy(io.Discard, r)
	}
}

// discard drops all remaining output
func (p *Process) discard() {
	for range p.lines {
	}
}

// Pid returns the process id of the game (or its wrapper)
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Exited returns a channel that is closed once the game exited and its output was read
func (p *Process) Exited() <-chan struct{} {
	return p.done
}

// Wait blocks until the game exited and returns its exit code
func (p *Process) Wait() (int, error) {
	<-p.done
	return p.exitCode()
}

func (p *Process) exitCode() (int, error) {
	var exitErr *exec.ExitError
	if p.waitErr != nil && !errors.As(p.waitErr, &exitErr) {
		return -1, merrors.Process("wait for game", p.waitErr)
	}
	return p.cmd.ProcessState.ExitCode(), nil
}

// Kill terminates the game and every process it started. Killing a process
// that already exited is a no-op
func (p *Process) Kill() error {
	select {
	case <-p.done:
		return nil
	default:
	}

	proc, err := process.NewProcess(int32(p.Pid()))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil
		}
		return merrors.Process("find game process", err)
	}
	if err := killTree(proc); err != nil {
		return merrors.Process("kill game", err)
	}
	return nil
}

// killTree kills the children of proc before proc itself, so wrappers
// (eg. gamemoderun) do not leave java running
func killTree(proc *process.Process) error {
	children, _ := proc.Children()
	for _, child := range children {
		killTree(child)
	}
	err := proc.Kill()
	if err != nil {
		if running, _ := proc.IsRunning(); !running {
			return nil
		}
	}
	return err
}
