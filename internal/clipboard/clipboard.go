// Package clipboard writes text to the system clipboard through whichever
// platform command is available. A failed write never touches color state;
// callers decide how to report it.
package clipboard

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds one clipboard write.
const DefaultTimeout = 3 * time.Second

// ErrUnavailable is returned when no clipboard command can be found.
var ErrUnavailable = errors.New("no clipboard command available")

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// Runner executes name with args, feeding stdin. It exists so tests can
// replace process execution.
type Runner func(ctx context.Context, stdin string, name string, args ...string) error

// LookPath resolves a command name; exec.LookPath in production.
type LookPath func(name string) (string, error)

func execRunner(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return errors.Wrapf(err, "%s: %s", name, msg)
		}
		return errors.Wrap(err, name)
	}
	return nil
}

// CommandWriter pipes text into an external command.
type CommandWriter struct {
	Name string
	Args []string
	Run  Runner
}

// WriteText implements Writer.
func (w *CommandWriter) WriteText(ctx context.Context, text string) error {
	run := w.Run
	if run == nil {
		run = execRunner
	}
	return run(ctx, text, w.Name, w.Args...)
}

// String returns the command line.
func (w *CommandWriter) String() string {
	return strings.TrimSpace(w.Name + " " + strings.Join(w.Args, " "))
}

// candidates lists clipboard commands per GOOS in preference order.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"windows": {{"clip.exe"}},
	"linux": {
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"clip.exe"},
	},
}

// Detect returns a writer for override when set ("cmd arg ..."), otherwise
// the first available platform command.
func Detect(override string) (*CommandWriter, error) {
	return detect(runtime.GOOS, override, exec.LookPath)
}

func detect(goos, override string, look LookPath) (*CommandWriter, error) {
	if fields := strings.Fields(override); len(fields) > 0 {
		return &CommandWriter{Name: fields[0], Args: fields[1:]}, nil
	}

	for _, argv := range candidates[goos] {
		if _, err := look(argv[0]); err == nil {
			return &CommandWriter{Name: argv[0], Args: argv[1:]}, nil
		}
	}
	return nil, errors.Wrapf(ErrUnavailable, "goos %s", goos)
}

// Copy writes text with DefaultTimeout applied on top of ctx.
func Copy(ctx context.Context, w Writer, text string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	return errors.Wrap(w.WriteText(ctx, text), "copy to clipboard")
}
