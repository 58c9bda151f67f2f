package loopback

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/glint-dev/glint-sdk/domain/ports"
)

// Interp implements ports.Interpreter with a line-oriented script
// model: each non-empty, non-comment line is a command invocation if
// its first word names a registered command, and is otherwise recorded
// verbatim. The built-in "error" word raises a script error, so tests
// can exercise failing scripts.
type Interp struct {
	rt *Runtime

	mu       sync.Mutex
	commands map[string]ports.CommandFunc
	vars     map[string]string
	binVars  map[string][]byte
	scripts  []string
	closed   bool
}

func newInterp(rt *Runtime) *Interp {
	in := &Interp{
		rt:       rt,
		commands: make(map[string]ports.CommandFunc),
		vars:     make(map[string]string),
		binVars:  make(map[string][]byte),
	}
	// The stock file-sourcing primitive ships with every interpreter.
	in.commands[ports.CmdSource] = func(args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("wrong # args: should be %q", "source fileName")
		}
		return in.EvalFile(args[len(args)-1])
	}
	return in
}

// Eval evaluates script text line by line.
func (in *Interp) Eval(script string) error {
	if err := in.check(); err != nil {
		return err
	}
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words := strings.Fields(line)
		if in.hasCommand(words[0]) {
			if err := in.InvokeCommand(words); err != nil {
				return err
			}
			continue
		}
		if words[0] == "error" {
			return fmt.Errorf("%s", strings.TrimSpace(strings.TrimPrefix(line, "error")))
		}
		in.mu.Lock()
		in.scripts = append(in.scripts, line)
		in.mu.Unlock()
	}
	return nil
}

// EvalFile evaluates the script file at path.
func (in *Interp) EvalFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read file %q: %w", path, err)
	}
	return in.Eval(string(data))
}

// SetVar sets a global string variable.
func (in *Interp) SetVar(name, value string) error {
	if err := in.check(); err != nil {
		return err
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.vars[name] = value
	return nil
}

// GetVar reads a global string variable.
func (in *Interp) GetVar(name string) (string, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return "", false
	}
	v, ok := in.vars[name]
	return v, ok
}

// SetBinaryVar sets a global variable to a copy of data.
func (in *Interp) SetBinaryVar(name string, data []byte) error {
	if err := in.check(); err != nil {
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	in.mu.Lock()
	defer in.mu.Unlock()
	in.binVars[name] = buf
	return nil
}

// GetBinaryVar reads a global binary variable.
func (in *Interp) GetBinaryVar(name string) ([]byte, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	v, ok := in.binVars[name]
	return v, ok
}

// RegisterCommand installs fn as the named command.
func (in *Interp) RegisterCommand(name string, fn ports.CommandFunc) error {
	if err := in.check(); err != nil {
		return err
	}
	if in.rt.failCommands {
		return fmt.Errorf("can't create command %q", name)
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.commands[name] = fn
	return nil
}

// RenameCommand renames an existing command.
func (in *Interp) RenameCommand(oldName, newName string) error {
	if err := in.check(); err != nil {
		return err
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	fn, ok := in.commands[oldName]
	if !ok {
		return fmt.Errorf("can't rename %q: command doesn't exist", oldName)
	}
	if _, exists := in.commands[newName]; exists {
		return fmt.Errorf("can't rename to %q: command already exists", newName)
	}
	delete(in.commands, oldName)
	in.commands[newName] = fn
	return nil
}

// InvokeCommand invokes the command named by args[0].
func (in *Interp) InvokeCommand(args []string) error {
	if err := in.check(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("empty command invocation")
	}
	in.mu.Lock()
	fn, ok := in.commands[args[0]]
	in.mu.Unlock()
	if !ok {
		return fmt.Errorf("invalid command name %q", args[0])
	}
	return fn(args)
}

// Close destroys the interpreter and with it every window it owns.
func (in *Interp) Close() {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return
	}
	in.closed = true
	in.mu.Unlock()
	in.rt.SetOpenWindows(0)
}

// Scripts returns the lines recorded by Eval that were not command
// invocations, in evaluation order.
func (in *Interp) Scripts() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]string, len(in.scripts))
	copy(out, in.scripts)
	return out
}

func (in *Interp) hasCommand(name string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	_, ok := in.commands[name]
	return ok
}

func (in *Interp) check() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return fmt.Errorf("interpreter has been closed")
	}
	return nil
}
