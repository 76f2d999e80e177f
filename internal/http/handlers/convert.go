package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"web2pdf/internal/config"
	"web2pdf/internal/convert"
	"web2pdf/internal/domain"
	"web2pdf/internal/infra/cache"
	"web2pdf/internal/infra/logging"
	"web2pdf/internal/infra/upstream"
)

// attachmentName is the file name the relay suggests for every PDF. The
// browser picks the final name itself.
const attachmentName = domain.DefaultFilename + domain.PDFExt

// Renderer produces a PDF for a page. *upstream.Client satisfies it.
type Renderer interface {
	Render(ctx context.Context, req upstream.Request) ([]byte, error)
}

// ConvertService bundles configuration and dependencies for POST /convert.
type ConvertService struct {
	Config   *config.Config
	Renderer Renderer
	Cache    *cache.PDFCache
}

// NewConvertService creates a ConvertService. pdfCache may be nil.
func NewConvertService(cfg config.Config, r Renderer, pdfCache *cache.PDFCache) *ConvertService {
	return &ConvertService{
		Config:   &cfg,
		Renderer: r,
		Cache:    pdfCache,
	}
}

// HandleConvert relays a JSON conversion request to the renderer and answers
// with the PDF, or with {"error": "..."} on failure.
func (svc *ConvertService) HandleConvert(c *fiber.Ctx) error {
	req, err := parseConvertRequest(c.Body())
	if err != nil {
		return err
	}

	key := cache.Key(req.URL, req.PageSize, req.Orientation)
	if svc.Cache != nil {
		cached, ok, err := svc.Cache.Get(c.UserContext(), key)
		if err != nil {
			logging.Warn("Redis read failed", "error", err)
		}
		if ok {
			logging.Info("PDF cache hit", "key", key)
			return sendPDF(c, cached)
		}
	}

	pdf, err := svc.Renderer.Render(c.UserContext(), req)
	if err != nil {
		return renderError(err)
	}

	if svc.Cache != nil {
		if err := svc.Cache.Set(c.UserContext(), key, pdf); err != nil {
			logging.Warn("Redis write failed", "error", err)
		}
	}

	logging.Info("PDF generated", "url", req.URL, "page_size", req.PageSize,
		"orientation", req.Orientation, "bytes", len(pdf), "request_id", requestID(c))
	return sendPDF(c, pdf)
}

// parseConvertRequest validates the body and applies the relay defaults:
// unknown page sizes become A4, anything but landscape becomes portrait.
func parseConvertRequest(body []byte) (upstream.Request, error) {
	var p domain.BackendPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return upstream.Request{}, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}

	target, err := convert.ValidateURL(p.URL)
	if errors.Is(err, domain.ErrEmptyInput) {
		return upstream.Request{}, fiber.NewError(fiber.StatusBadRequest, "URL is required")
	}
	if err != nil {
		return upstream.Request{}, fiber.NewError(fiber.StatusBadRequest, "Invalid URL: must be HTTP or HTTPS")
	}

	pageSize := p.PageSize
	if !domain.IsPageSize(pageSize) {
		pageSize = domain.PageA4
	}
	orientation := domain.Portrait
	if strings.EqualFold(p.Orientation, domain.Landscape) {
		orientation = domain.Landscape
	}

	return upstream.Request{
		URL:         target,
		PageSize:    pageSize,
		Orientation: orientation,
		Filename:    attachmentName,
	}, nil
}

func renderError(err error) error {
	var ue *upstream.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logging.Error("PDF generation timeout", "error", err)
		return fiber.NewError(fiber.StatusGatewayTimeout, "PDF rendering took too long")
	case errors.Is(err, upstream.ErrTooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "PDF exceeds allowed size")
	case errors.As(err, &ue):
		logging.Error("Upstream rejected conversion", "status", ue.Status, "error", ue.Message)
		return fiber.NewError(fiber.StatusBadGateway, "Upstream error: "+ue.Message)
	default:
		logging.Error("Upstream unavailable", "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "Upstream unavailable: "+err.Error())
	}
}

func sendPDF(c *fiber.Ctx, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+attachmentName)
	return c.Send(pdf)
}

func requestID(c *fiber.Ctx) string {
	if id := c.Get(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
