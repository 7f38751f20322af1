// Package problemhub is the HTTP client for the remote problem catalog
// API. Read-only and stateless per call.
package problemhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// FetchError is a catalog fetch failure with the upstream status code.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("problemhub: status %d: %s", e.Status, e.Message)
}

// Provider fetches catalog data from the problemhub API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider for the given base URL.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "problemhub"),
	}
}

// ListCatalogs fetches the catalog listing: slugs and accent colors only,
// display names are resolved elsewhere.
func (p *Provider) ListCatalogs(ctx context.Context) ([]domain.CatalogRef, error) {
	var listing []apiCatalogRef
	if err := p.getJSON(ctx, p.baseURL+"/catalogs", &listing); err != nil {
		return nil, err
	}

	out := make([]domain.CatalogRef, 0, len(listing))
	for _, ref := range listing {
		out = append(out, domain.CatalogRef{Slug: ref.Slug, AccentColor: ref.AccentColor})
	}

	p.log.DebugContext(ctx, "catalog listing fetched", slog.Int("catalogs", len(out)))
	return out, nil
}

// FetchCatalog fetches one catalog's ordered groups of problems.
func (p *Provider) FetchCatalog(ctx context.Context, slug string) ([]domain.CatalogGroup, error) {
	var resp apiCatalog
	reqURL := p.baseURL + "/catalogs/" + url.PathEscape(slug)
	if err := p.getJSON(ctx, reqURL, &resp); err != nil {
		p.log.ErrorContext(ctx, "catalog fetch failed",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	groups := mapCatalog(resp)

	p.log.DebugContext(ctx, "catalog fetched",
		slog.String("slug", slug),
		slog.Int("groups", len(groups)),
	)
	return groups, nil
}

func (p *Provider) getJSON(ctx context.Context, reqURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("problemhub: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("problemhub: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("problemhub: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("problemhub: decode json: %w", err)
	}
	return nil
}

// errorMessage extracts the upstream error message, falling back to the
// raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
