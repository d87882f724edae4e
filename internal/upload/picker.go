package upload

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// CommandPicker runs an external dialog that prints the chosen paths, one per line.
type CommandPicker struct {
	args []string
}

var _ Picker = &CommandPicker{}

// NewCommandPicker parses a shell-style command line such as
// "zenity --file-selection --file-filter='*.csv'".
//
// Parameters:
//   - command: the command line
//
// Returns:
//   - *CommandPicker: the picker
//   - error: a parse error or an empty command
func NewCommandPicker(command string) (*CommandPicker, error) {
	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("picker command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("picker command is empty")
	}
	return &CommandPicker{args: args}, nil
}

// Pick runs the dialog. A non-zero exit is a cancel and yields no files.
func (p *CommandPicker) Pick(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, p.args[0], p.args[1:]...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			files = append(files, line)
		}
	}
	return files, sc.Err()
}
