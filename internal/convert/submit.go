package convert

import (
	"context"
	"fmt"

	"web2pdf/internal/domain"
)

// Level tells the status region how to render a message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Status is one message for the status region.
type Status struct {
	Level Level
	Text  string
}

// Status texts shown around an attempt.
const (
	MsgEmptyInput = "Please enter a URL to convert"
	MsgInvalidURL = "Please enter a valid URL (must start with http:// or https://)"
	MsgBusy       = "A conversion is already in progress"
	MsgConverting = "Converting web page to PDF..."
)

// Controls is the surface an attempt drives: a loading indicator, a status
// region and a way to save the resulting file.
type Controls interface {
	SetLoading(on bool)
	ShowStatus(s Status)
	Save(filename string, pdf []byte) error
}

// Submit runs one attempt through h and reflects the outcome on ui. The
// loading indicator is on exactly while the backend request is pending.
// The returned Result carries the save failure, if any.
func Submit(ctx context.Context, h *Handler, ui Controls, req domain.ConversionRequest) domain.Result {
	res := h.ConvertTracked(ctx, req, func(on bool) {
		ui.SetLoading(on)
		if on {
			ui.ShowStatus(Status{Level: LevelInfo, Text: MsgConverting})
		}
	})

	if res.OK() {
		if err := ui.Save(res.Filename, res.PDF); err != nil {
			res = domain.Failure(fmt.Errorf("%w %s: %w", domain.ErrSaveFailed, res.Filename, err))
		}
	}
	ui.ShowStatus(StatusFor(res))
	return res
}

// StatusFor maps a Result to the message shown to the user.
func StatusFor(r domain.Result) Status {
	switch r.Kind {
	case domain.NoFailure:
		return Status{Level: LevelSuccess, Text: fmt.Sprintf("PDF generated successfully! Downloaded as %q", r.Filename)}
	case domain.EmptyInput:
		return Status{Level: LevelError, Text: MsgEmptyInput}
	case domain.InvalidURL:
		return Status{Level: LevelError, Text: MsgInvalidURL}
	case domain.Busy:
		return Status{Level: LevelError, Text: MsgBusy}
	default:
		return Status{Level: LevelError, Text: "Error: " + r.Message}
	}
}
