package domain

import "errors"

// DefaultFilename is used when the caller did not ask for a file name.
const DefaultFilename = "webpage"

// PDFExt is appended to derived file names.
const PDFExt = ".pdf"

// Page sizes offered by the form and the CLI.
const (
	PageA4     = "A4"
	PageLetter = "Letter"
	PageLegal  = "Legal"
	PageA3     = "A3"
	PageA5     = "A5"
)

// Orientations offered by the form and the CLI.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// PageSizes lists the selectable page sizes in display order.
var PageSizes = []string{PageA4, PageLetter, PageLegal, PageA3, PageA5}

// Orientations lists the selectable orientations in display order.
var Orientations = []string{Portrait, Landscape}

// ConversionRequest is built fresh for each user action and never retained.
// PageSize and Orientation are passed through to the backend as-is.
type ConversionRequest struct {
	URL         string
	PageSize    string
	Orientation string
	Filename    string
}

// BackendPayload is the JSON body posted to the conversion backend.
type BackendPayload struct {
	URL         string `json:"url"`
	PageSize    string `json:"page_size"`
	Orientation string `json:"orientation"`
}

// FailureKind classifies why a conversion attempt failed.
type FailureKind int

const (
	// NoFailure marks a successful result.
	NoFailure FailureKind = iota
	EmptyInput
	InvalidURL
	BackendFailure
	NetworkFailure
	Busy
	SaveFailure
)

func (k FailureKind) String() string {
	switch k {
	case NoFailure:
		return "none"
	case EmptyInput:
		return "empty_input"
	case InvalidURL:
		return "invalid_url"
	case BackendFailure:
		return "backend_error"
	case NetworkFailure:
		return "network_error"
	case Busy:
		return "busy"
	case SaveFailure:
		return "save_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one conversion attempt: either a PDF with its
// derived file name, or a failure with a human-readable message.
type Result struct {
	Filename string
	PDF      []byte

	Kind    FailureKind
	Message string
	Err     error
}

// OK reports whether the attempt produced a PDF.
func (r Result) OK() bool { return r.Kind == NoFailure }

// Success builds a successful Result.
func Success(filename string, pdf []byte) Result {
	return Result{Filename: filename, PDF: pdf, Kind: NoFailure}
}

// Failure builds a failed Result from err, classifying it by the error taxonomy.
func Failure(err error) Result {
	var (
		backendErr *BackendError
		netErr     *NetworkError
	)
	kind := NetworkFailure
	switch {
	case errors.Is(err, ErrEmptyInput):
		kind = EmptyInput
	case errors.Is(err, ErrInvalidURL):
		kind = InvalidURL
	case errors.Is(err, ErrBusy):
		kind = Busy
	case errors.Is(err, ErrSaveFailed):
		kind = SaveFailure
	case errors.As(err, &backendErr):
		kind = BackendFailure
	case errors.As(err, &netErr):
		kind = NetworkFailure
	}
	return Result{Kind: kind, Message: err.Error(), Err: err}
}

// IsPageSize reports whether s is one of the known page sizes.
func IsPageSize(s string) bool {
	for _, p := range PageSizes {
		if p == s {
			return true
		}
	}
	return false
}

// IsOrientation reports whether s is one of the known orientations.
func IsOrientation(s string) bool {
	return s == Portrait || s == Landscape
}
