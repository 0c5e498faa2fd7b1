package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"diplomagen/internal/form"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hasFileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

type selectionState struct {
	label   string
	hasFile bool
}

// ConsoleView renders the upload form on a terminal. A terminal cannot
// rewrite earlier lines, so only state changes are printed.
type ConsoleView struct {
	mu            sync.Mutex
	w             io.Writer
	progress      *ProgressUI
	selections    map[form.Slot]selectionState
	submitEnabled bool
	message       string
	messageKind   form.MessageKind
}

// NewConsoleView creates a view writing to w, stderr when nil
func NewConsoleView(w io.Writer) *ConsoleView {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleView{
		w:             w,
		progress:      NewProgressUI(w),
		selections:    make(map[form.Slot]selectionState),
		submitEnabled: true,
	}
}

// SetSelection prints the chosen file, or the placeholder when a chosen file is dropped
func (c *ConsoleView) SetSelection(slot form.Slot, label string, hasFile bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.selections[slot]
	c.selections[slot] = selectionState{label: label, hasFile: hasFile}
	if prev.label == label && prev.hasFile == hasFile {
		return
	}
	if hasFile {
		fmt.Fprintf(c.w, "%-9s %s\n", slotTitle(slot)+":", hasFileStyle.Render(label))
	} else if prev.hasFile {
		fmt.Fprintf(c.w, "%-9s %s\n", slotTitle(slot)+":", label)
	}
}

// SetSubmitState prints the busy label when the submit control gets disabled
func (c *ConsoleView) SetSubmitState(enabled bool, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitEnabled && !enabled {
		fmt.Fprintf(c.w, "%s\n", label)
	}
	c.submitEnabled = enabled
}

func (c *ConsoleView) SetProgressVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if visible {
		c.progress.Show()
	} else {
		c.progress.Hide()
	}
}

func (c *ConsoleView) SetProgress(percentage int, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress.Update(percentage, label)
}

// ShowMessage displays a message to the user
func (c *ConsoleView) ShowMessage(text string, kind form.MessageKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.message, c.messageKind = text, kind
	if c.progress.Pending() {
		// keep the message off the bar's line
		io.WriteString(c.w, "\n")
	}
	switch kind {
	case form.MessageSuccess:
		fmt.Fprintln(c.w, successStyle.Render("✓ "+text))
	case form.MessageError:
		fmt.Fprintln(c.w, errorStyle.Render("✗ "+text))
	default:
		fmt.Fprintln(c.w, text)
	}
}

func (c *ConsoleView) ClearMessage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message, c.messageKind = "", ""
}

// Message returns the message currently shown, if any
func (c *ConsoleView) Message() (string, form.MessageKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message, c.messageKind
}

func slotTitle(slot form.Slot) string {
	switch slot {
	case form.TemplateSlot:
		return "Template"
	case form.DataSlot:
		return "Data"
	default:
		return slot.String()
	}
}
