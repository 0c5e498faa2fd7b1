package form

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmitDisabled is returned when a submission is attempted while the
// previous one has not settled yet
var ErrSubmitDisabled = errors.New("submit is disabled while a submission is pending")

// MissingFileError means one or both inputs have no file selected
type MissingFileError struct {
	Template bool
	Data     bool
}

func (e *MissingFileError) Error() string {
	var missing []string
	if e.Template {
		missing = append(missing, "template")
	}
	if e.Data {
		missing = append(missing, "data")
	}
	return fmt.Sprintf("missing %s file", strings.Join(missing, " and "))
}

// InvalidTemplateTypeError means the template name lacks the document extension
type InvalidTemplateTypeError struct {
	Name      string
	Extension string
}

func (e *InvalidTemplateTypeError) Error() string {
	return fmt.Sprintf("template file %q must be a %s file", e.Name, e.Extension)
}

// InvalidDataTypeError means the data name lacks every spreadsheet extension
type InvalidDataTypeError struct {
	Name       string
	Extensions []string
}

func (e *InvalidDataTypeError) Error() string {
	return fmt.Sprintf("data file %q must be a %s file", e.Name, strings.Join(e.Extensions, " or "))
}
