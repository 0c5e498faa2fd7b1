package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"diplomagen/internal/config"
	"diplomagen/internal/transport"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Progress steps of one submission
const (
	progressStart     = 0
	progressSending   = 10
	progressReceived  = 50
	progressPreparing = 90
	progressDone      = 100
)

// Generator performs the upload round trip
type Generator interface {
	Generate(ctx context.Context, req transport.GenerateRequest) (*transport.Artifact, error)
}

// Downloader stores the returned archive under a fixed name
type Downloader interface {
	Save(ctx context.Context, name string, blob []byte) (string, error)
}

// Option customizes a Controller
type Option func(*Controller)

// WithAfterFunc replaces time.AfterFunc for the reset and message timers
func WithAfterFunc(after AfterFunc) Option {
	return func(c *Controller) {
		c.after = after
	}
}

// Controller owns the two file selections and drives one submission at a time
type Controller struct {
	config     *config.Config
	view       View
	generator  Generator
	downloader Downloader
	logger     *log.Logger
	after      AfterFunc

	mu           sync.Mutex
	template     SelectedFile
	data         SelectedFile
	busy         bool
	idle         chan struct{}
	progress     int
	messageTimer Timer
	messageSeq   uint64
	resetTimer   Timer
}

// NewController creates a controller and renders its initial state
func NewController(cfg *config.Config, view View, generator Generator, downloader Downloader, logger *log.Logger, opts ...Option) *Controller {
	c := &Controller{
		config:     cfg,
		view:       view,
		generator:  generator,
		downloader: downloader,
		logger:     logger,
		after:      timeAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.view.SetSelection(TemplateSlot, cfg.UI.Placeholder, false)
	c.view.SetSelection(DataSlot, cfg.UI.Placeholder, false)
	c.view.SetProgressVisible(false)
	c.view.SetSubmitState(true, cfg.UI.SubmitLabel)
	return c
}

// SelectTemplate reflects a change of the template input. nil clears it.
func (c *Controller) SelectTemplate(f SelectedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.template = f
	c.renderSelection(TemplateSlot, f)
}

// SelectData reflects a change of the data input. nil clears it.
func (c *Controller) SelectData(f SelectedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = f
	c.renderSelection(DataSlot, f)
}

func (c *Controller) renderSelection(slot Slot, f SelectedFile) {
	if f == nil {
		c.view.SetSelection(slot, c.config.UI.Placeholder, false)
		return
	}
	label := fmt.Sprintf("%s (%s)", f.Name(), humanize.Bytes(uint64(f.Size())))
	c.view.SetSelection(slot, label, true)
}

// Submit validates the selection, uploads it and saves the result. It blocks
// until the response is handled; the form reset after success happens later
// on a timer.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrSubmitDisabled
	}

	template, data := c.template, c.data
	if err := c.validate(template, data); err != nil {
		c.showMessage(userMessage(err, c.config), MessageError)
		c.mu.Unlock()
		return err
	}

	c.busy = true
	c.idle = make(chan struct{})
	c.progress = progressStart
	c.view.SetSubmitState(false, c.config.UI.BusyLabel)
	c.clearMessage()
	c.view.SetProgressVisible(true)
	c.view.SetProgress(progressStart, "Uploading files...")
	c.mu.Unlock()

	path, err := c.run(ctx, template, data)
	if err != nil {
		c.fail(err)
		return err
	}

	c.succeed(path)
	return nil
}

func (c *Controller) validate(template, data SelectedFile) error {
	if template == nil || data == nil {
		return &MissingFileError{Template: template == nil, Data: data == nil}
	}

	ext := c.config.Form.TemplateExtension
	if !strings.HasSuffix(template.Name(), ext) {
		return &InvalidTemplateTypeError{Name: template.Name(), Extension: ext}
	}

	for _, ext := range c.config.Form.DataExtensions {
		if strings.HasSuffix(data.Name(), ext) {
			return nil
		}
	}
	return &InvalidDataTypeError{Name: data.Name(), Extensions: c.config.Form.DataExtensions}
}

func (c *Controller) run(ctx context.Context, template, data SelectedFile) (string, error) {
	c.setProgress(progressSending, "Sending files to server...")

	artifact, err := c.generator.Generate(ctx, transport.GenerateRequest{Template: template, Data: data})
	if err != nil {
		return "", err
	}

	c.setProgress(progressReceived, "Processing files...")

	blob, err := artifact.Bytes()
	if err != nil {
		return "", err
	}

	c.setProgress(progressPreparing, "Preparing download...")

	path, err := c.downloader.Save(ctx, c.config.Form.ArtifactName, blob)
	if err != nil {
		return "", err
	}

	c.setProgress(progressDone, "Completed!")
	return path, nil
}

// setProgress never moves the fill backwards within a submission
func (c *Controller) setProgress(percentage int, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if percentage < c.progress {
		percentage = c.progress
	}
	c.progress = percentage
	c.view.SetProgress(percentage, label)
}

func (c *Controller) succeed(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Info("Diplomas generated", "path", path)
	c.showMessage(fmt.Sprintf("Diplomas generated successfully! The ZIP file was saved to %s", path), MessageSuccess)
	c.resetTimer = c.after(c.config.UI.ResetDelay, c.reset)
}

// reset returns the form to its initial state after a successful submission
func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.template = nil
	c.data = nil
	c.resetTimer = nil
	c.view.SetSelection(TemplateSlot, c.config.UI.Placeholder, false)
	c.view.SetSelection(DataSlot, c.config.UI.Placeholder, false)
	c.view.SetProgressVisible(false)
	c.enable()
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Error("Submission failed", "err", err)
	c.showMessage("Error: "+userMessage(err, c.config), MessageError)
	c.view.SetProgressVisible(false)
	c.enable()
}

// enable must be called with mu held
func (c *Controller) enable() {
	c.view.SetSubmitState(true, c.config.UI.SubmitLabel)
	c.busy = false
	if c.idle != nil {
		close(c.idle)
		c.idle = nil
	}
}

// showMessage must be called with mu held. Success messages clear themselves.
func (c *Controller) showMessage(text string, kind MessageKind) {
	c.stopMessageTimer()
	c.view.ShowMessage(text, kind)

	if kind != MessageSuccess {
		return
	}
	seq := c.messageSeq
	c.messageTimer = c.after(c.config.UI.MessageClearDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.messageSeq != seq {
			return
		}
		c.messageTimer = nil
		c.view.ClearMessage()
	})
}

// clearMessage must be called with mu held
func (c *Controller) clearMessage() {
	c.stopMessageTimer()
	c.view.ClearMessage()
}

func (c *Controller) stopMessageTimer() {
	c.messageSeq++
	if c.messageTimer != nil {
		c.messageTimer.Stop()
		c.messageTimer = nil
	}
}

// Close stops pending timers. A stopped reset leaves the form disabled.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopMessageTimer()
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

// Busy reports whether the submit control is currently disabled
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// WaitIdle blocks until the submit control is enabled again
func (c *Controller) WaitIdle(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()
	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// userMessage maps an error to the text shown in the message area
func userMessage(err error, cfg *config.Config) string {
	var (
		missing     *MissingFileError
		badTemplate *InvalidTemplateTypeError
		badData     *InvalidDataTypeError
		serverErr   *transport.ServerError
		networkErr  *transport.NetworkError
	)
	switch {
	case errors.As(err, &missing):
		return "Please select both files."
	case errors.As(err, &badTemplate):
		return fmt.Sprintf("The template file must be a %s file", badTemplate.Extension)
	case errors.As(err, &badData):
		return fmt.Sprintf("The data file must be a %s file", strings.Join(badData.Extensions, " or "))
	case errors.As(err, &networkErr):
		return fmt.Sprintf("Connection error. Make sure the server is running at %s", cfg.Server.URL)
	case errors.As(err, &serverErr):
		return serverErr.Message
	default:
		return err.Error()
	}
}
