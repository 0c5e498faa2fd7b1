package form

import (
	"io"
	"time"
)

// Slot identifies one of the two file inputs
type Slot int

const (
	TemplateSlot Slot = iota
	DataSlot
)

func (s Slot) String() string {
	switch s {
	case TemplateSlot:
		return "template"
	case DataSlot:
		return "data"
	default:
		return "unknown"
	}
}

// MessageKind is the category of a user-facing message
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
	MessageInfo    MessageKind = "info"
)

// SelectedFile is a user-chosen file. The controller only reads it.
type SelectedFile interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// View renders controller state. Implementations must not call back into the
// controller.
type View interface {
	// SetSelection shows the label of a file input and its "has file" mark
	SetSelection(slot Slot, label string, hasFile bool)

	// SetSubmitState enables or disables the submit control and sets its label
	SetSubmitState(enabled bool, label string)

	// SetProgressVisible shows or hides the progress UI
	SetProgressVisible(visible bool)

	// SetProgress sets the fill and status label
	SetProgress(percentage int, label string)

	// ShowMessage sets the message text and category
	ShowMessage(text string, kind MessageKind)

	// ClearMessage removes the message category, hiding it
	ClearMessage()
}

// Timer is a pending delayed action
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d
type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
