package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// forwardedHeaders are copied from the client request to the upstream.
var forwardedHeaders = []string{
	"Content-Type",
	"Accept",
	"X-Cart-Session",
	"X-Visualizer-Session",
	"X-Request-Id",
}

// hopHeaders must not be copied back from the upstream response.
var hopHeaders = map[string]bool{
	"Connection":        true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Content-Length":    true,
}

// ============================================================
// Proxy Handler
// ============================================================

// Proxy forwards gateway requests to one upstream service.
type Proxy struct {
	baseURL    string
	HTTPClient *http.Client
	log        *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Proxy {
	return &Proxy{
		baseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

// Pass forwards the request to the same path and query on the upstream.
func (p *Proxy) Pass() fiber.Handler {
	return func(c fiber.Ctx) error {
		return p.Forward(c, p.baseURL+c.OriginalURL())
	}
}

// To forwards the request to a fixed upstream path.
func (p *Proxy) To(path string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return p.Forward(c, p.baseURL+path)
	}
}

// Forward sends the request body as-is, multipart included, to targetURL.
func (p *Proxy) Forward(c fiber.Ctx, targetURL string) error {
	p.log.Debug("forwarding",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("bytes", len(c.Body())),
		zap.String("target", targetURL))

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		p.log.Error("build request", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	for _, h := range forwardedHeaders {
		if v := c.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	req.Header.Set("X-Forwarded-For", c.IP())

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		p.log.Warn("upstream unreachable", zap.String("target", targetURL), zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return p.copyResponse(c, resp)
}

// Ping checks the upstream readiness probe.
func (p *Proxy) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health/ready", nil)
	if err != nil {
		return err
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream not ready: %d", resp.StatusCode)
	}
	return nil
}

func (p *Proxy) copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.log.Warn("read upstream response", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 && !hopHeaders[key] {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
