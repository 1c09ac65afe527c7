package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StoreFront/internal/store"
)

// PriceSource supplies the authoritative unit price for a product name.
// The ledger calls it exactly once per distinct product.
type PriceSource interface {
	GetPrice(ctx context.Context, name string) (decimal.Decimal, error)
}

var (
	ErrPriceNotFound    = errors.New("price not found")
	ErrPriceBadStatus   = errors.New("price api bad status")
	ErrPriceMalformed   = errors.New("price api malformed response")
	ErrPriceUnavailable = errors.New("price api unavailable")
)

// PriceClient fetches prices over HTTP from the external price API. Each
// lookup is a single attempt with no retries; the client timeout bounds how
// long one attempt may take.
type PriceClient struct {
	BaseURL string
	Client  *http.Client
}

func NewPriceClient(baseURL string) *PriceClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &PriceClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

type priceResponse struct {
	Price *decimal.Decimal `json:"price"`
}

// GetPrice requests {base}/{name}.json with the name lowercased. A blank
// name is rejected before any request is made. 404, other bad statuses,
// unreachable hosts and malformed payloads each surface as distinct errors;
// none are retried or masked.
func (c *PriceClient) GetPrice(ctx context.Context, name string) (decimal.Decimal, error) {
	if strings.TrimSpace(name) == "" {
		return decimal.Zero, &store.ArgumentError{Name: "name", Reason: "must not be blank"}
	}

	u := fmt.Sprintf("%s/%s.json", c.BaseURL, url.PathEscape(strings.ToLower(name)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return decimal.Zero, ErrPriceUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return decimal.Zero, ErrPriceUnavailable
		}
		return decimal.Zero, ErrPriceUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return decimal.Zero, ErrPriceNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return decimal.Zero, fmt.Errorf("%w: status=%d", ErrPriceBadStatus, resp.StatusCode)
	}

	var body priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceMalformed, err)
	}
	if body.Price == nil {
		return decimal.Zero, fmt.Errorf("%w: missing price field", ErrPriceMalformed)
	}
	return *body.Price, nil
}
