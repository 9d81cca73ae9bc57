// Package diagram renders Mermaid source to SVG through a Kroki server.
package diagram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultKrokiURL = "https://kroki.io"
	DefaultTheme    = "default"
	MaxCodeLength   = 40_000
	requestTimeout  = 15 * time.Second
	maxSVGBytes     = 10 << 20
)

var (
	ErrEmpty    = errors.New("missing diagram code")
	ErrTooLarge = errors.New("diagram too large")
	ErrRender   = errors.New("diagram render failed")
)

type Renderer struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

// NewRenderer renders against baseURL and caches results for ttl. A
// non-positive ttl keeps entries until restart.
func NewRenderer(baseURL string, ttl time.Duration) *Renderer {
	if baseURL == "" {
		baseURL = DefaultKrokiURL
	}
	expiry := ttl
	if expiry <= 0 {
		expiry = cache.NoExpiration
	}
	return &Renderer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		cache:   cache.New(expiry, 10*time.Minute),
	}
}

// Render returns the SVG for the Mermaid code. Surrounding markdown fences are
// removed and non-default themes are applied through an init directive.
func (r *Renderer) Render(ctx context.Context, code, theme string) (string, error) {
	code = Sanitize(code)
	if code == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(code) > MaxCodeLength {
		return "", ErrTooLarge
	}

	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = DefaultTheme
	}
	source := applyTheme(code, theme)

	key := theme + "\x00" + code
	if svg, found := r.cache.Get(key); found {
		return svg.(string), nil
	}

	svg, err := r.fetch(ctx, source)
	if err != nil {
		return "", err
	}
	r.cache.Set(key, svg, cache.DefaultExpiration)
	return svg, nil
}

func (r *Renderer) fetch(ctx context.Context, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/mermaid/svg", strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSVGBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrRender, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: kroki status %d", ErrRender, resp.StatusCode)
	}

	svg := bytes.TrimSpace(body)
	if !bytes.HasPrefix(svg, []byte("<svg")) &&
		!(bytes.HasPrefix(svg, []byte("<?xml")) && bytes.Contains(svg, []byte("<svg"))) {
		return "", fmt.Errorf("%w: invalid SVG returned from renderer", ErrRender)
	}
	return string(svg), nil
}

// Sanitize strips a surrounding markdown code fence.
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	body := strings.Join(lines[1:], "\n")
	if trimmed := strings.TrimRight(body, " \t\r\n"); strings.HasSuffix(trimmed, "```") {
		body = strings.TrimRight(trimmed[:len(trimmed)-3], " \t\r\n")
	}
	return strings.TrimSpace(body)
}

func applyTheme(code, theme string) string {
	if theme == DefaultTheme || strings.HasPrefix(strings.TrimLeft(code, " \t\r\n"), "%%{init") {
		return code
	}
	return fmt.Sprintf("%%%%{init: { 'theme': '%s' } }%%%%\n%s", theme, code)
}
