package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for file selections on the terminal
type Prompter struct {
	opts []survey.AskOpt
}

// NewPrompter creates a prompter on the process stdio
func NewPrompter(opts ...survey.AskOpt) *Prompter {
	return &Prompter{opts: opts}
}

// AskPath asks for an existing file, suggesting entries with one of exts.
// The extension is a hint only; validation belongs to the form.
func (p *Prompter) AskPath(message, current string, exts []string) (string, error) {
	var answer string
	q := &survey.Input{
		Message: message,
		Default: current,
		Help:    fmt.Sprintf("Path to a %s file. Press Tab for suggestions.", strings.Join(exts, " or ")),
		Suggest: func(toComplete string) []string {
			return suggestFiles(toComplete, exts)
		},
	}
	opts := append([]survey.AskOpt{survey.WithValidator(survey.Required), survey.WithValidator(fileExists)}, p.opts...)
	if err := survey.AskOne(q, &answer, opts...); err != nil {
		return "", promptError(err)
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	answer := def
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer, p.opts...); err != nil {
		return false, promptError(err)
	}
	return answer, nil
}

func promptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return fmt.Errorf("prompt failed: %w", err)
}

func fileExists(ans interface{}) error {
	path, _ := ans.(string)
	info, err := os.Stat(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("cannot access '%s'", path)
	}
	if info.IsDir() {
		return fmt.Errorf("'%s' is a directory, please specify a file", path)
	}
	return nil
}

// suggestFiles lists directories and files with a matching extension that
// start with toComplete
func suggestFiles(toComplete string, exts []string) []string {
	dir, prefix := filepath.Split(toComplete)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			out = append(out, dir+name+string(filepath.Separator))
			continue
		}
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				out = append(out, dir+name)
				break
			}
		}
	}
	return out
}
