package app

import (
	"context"
	"errors"
	"fmt"

	"diplomagen/internal/config"
	"diplomagen/internal/file"
	"diplomagen/internal/form"
	"diplomagen/internal/ui"

	"github.com/charmbracelet/log"
)

// GenerateOptions configures the generate application behavior
type GenerateOptions struct {
	TemplatePath string // path to the .docx template, may be empty
	DataPath     string // path to the spreadsheet, may be empty
	Interactive  bool   // prompt for files and allow repeated submissions
}

// Prompter asks the user for input in interactive mode
type Prompter interface {
	AskPath(message, current string, exts []string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// GenerateApp implements the upload-and-download flow
type GenerateApp struct {
	config     *config.Config
	controller *form.Controller
	prompter   Prompter
	logger     *log.Logger
}

// NewGenerateApp creates a new generate application
func NewGenerateApp(cfg *config.Config, controller *form.Controller, prompter Prompter, logger *log.Logger) *GenerateApp {
	return &GenerateApp{
		config:     cfg,
		controller: controller,
		prompter:   prompter,
		logger:     logger,
	}
}

// Run performs one submission, or loops on prompts in interactive mode
func (g *GenerateApp) Run(ctx context.Context, opts *GenerateOptions) error {
	defer g.controller.Close()

	if !opts.Interactive {
		if err := g.selectPaths(opts.TemplatePath, opts.DataPath); err != nil {
			return err
		}
		return g.controller.Submit(ctx)
	}

	return g.runInteractive(ctx, opts)
}

func (g *GenerateApp) runInteractive(ctx context.Context, opts *GenerateOptions) error {
	templatePath, dataPath := opts.TemplatePath, opts.DataPath
	for {
		var err error
		templatePath, err = g.prompter.AskPath("Template file:", templatePath, []string{g.config.Form.TemplateExtension})
		if err != nil {
			return g.promptExit(err)
		}
		dataPath, err = g.prompter.AskPath("Data file:", dataPath, g.config.Form.DataExtensions)
		if err != nil {
			return g.promptExit(err)
		}
		if err := g.selectPaths(templatePath, dataPath); err != nil {
			return err
		}

		submitErr := g.controller.Submit(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if submitErr == nil {
			// the form forgets its files on reset
			templatePath, dataPath = "", ""
			g.logger.Debug("Waiting for form reset", "delay", g.config.UI.ResetDelay)
			if err := g.controller.WaitIdle(ctx); err != nil {
				return err
			}
		}

		again, err := g.prompter.Confirm(nextPrompt(submitErr), true)
		if err != nil {
			return g.promptExit(err)
		}
		if !again {
			return submitErr
		}
	}
}

func nextPrompt(lastErr error) string {
	if lastErr != nil {
		return "Try again?"
	}
	return "Generate another batch?"
}

func (g *GenerateApp) promptExit(err error) error {
	if errors.Is(err, ui.ErrAborted) {
		g.logger.Info("Cancelled by user")
		return nil
	}
	return err
}

// selectPaths turns paths into selections. An empty path clears its input so
// the form reports the missing file itself.
func (g *GenerateApp) selectPaths(templatePath, dataPath string) error {
	template, err := openOptional(templatePath)
	if err != nil {
		return fmt.Errorf("cannot select template: %w", err)
	}
	data, err := openOptional(dataPath)
	if err != nil {
		return fmt.Errorf("cannot select data file: %w", err)
	}

	g.controller.SelectTemplate(template)
	g.controller.SelectData(data)
	return nil
}

func openOptional(path string) (form.SelectedFile, error) {
	if path == "" {
		return nil, nil
	}
	f, err := file.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
