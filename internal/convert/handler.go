package convert

import (
	"context"
	"sync/atomic"

	"web2pdf/internal/domain"
)

// Handler orchestrates URL to PDF conversion attempts against a Backend.
// At most one attempt runs at a time: every trigger path shares the same
// in-flight flag, so a second call while one is pending fails with
// domain.ErrBusy instead of issuing another request.
type Handler struct {
	backend  Backend
	inFlight atomic.Bool
}

// NewHandler creates a Handler backed by b.
func NewHandler(b Backend) *Handler {
	return &Handler{backend: b}
}

// InFlight reports whether an attempt is currently pending.
func (h *Handler) InFlight() bool {
	return h.inFlight.Load()
}

// Convert runs one attempt and returns its tagged result. It performs no
// side effects beyond the single backend call.
func (h *Handler) Convert(ctx context.Context, req domain.ConversionRequest) domain.Result {
	return h.ConvertTracked(ctx, req, nil)
}

// ConvertTracked is Convert with a loading callback. loading(true) is called
// once the request is validated and about to be sent; loading(false) is
// deferred right after and therefore runs on every exit path, panics included.
// Validation failures and busy rejections never touch loading.
func (h *Handler) ConvertTracked(ctx context.Context, req domain.ConversionRequest, loading func(bool)) domain.Result {
	target, err := ValidateURL(req.URL)
	if err != nil {
		return domain.Failure(err)
	}

	if !h.inFlight.CompareAndSwap(false, true) {
		return domain.Failure(domain.ErrBusy)
	}
	defer h.inFlight.Store(false)

	if loading != nil {
		loading(true)
		defer loading(false)
	}

	pdf, err := h.backend.Convert(ctx, domain.BackendPayload{
		URL:         target,
		PageSize:    req.PageSize,
		Orientation: req.Orientation,
	})
	if err != nil {
		return domain.Failure(err)
	}
	return domain.Success(DeriveFilename(req.Filename), pdf)
}
