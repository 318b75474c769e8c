package quote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockfolio/lenient"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no price is known for a symbol.
var ErrNotFound = errors.New("quote not found")

const (
	pricePath = `$["Global Quote"]["05. price"]`
	namePath  = `$.Name`
)

// Quote is the latest known price of an instrument.
type Quote struct {
	Symbol   string
	Name     string
	Price    float64
	Fallback bool // true when served from the static reference table
}

// Provider reads quotes from an Alpha Vantage compatible service.
type Provider struct {
	fetcher Fetcher
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewProvider returns a provider querying baseURL through f.
func NewProvider(f Fetcher, baseURL, apiKey string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{fetcher: f, baseURL: baseURL, apiKey: apiKey, logger: logger}
}

// Quote returns the latest price and company name of symbol.
//
// When the service fails or answers without a quote, the reference table is
// used instead. Unknown symbols then yield ErrNotFound.
func (p *Provider) Quote(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, fmt.Errorf("%w: empty symbol", ErrNotFound)
	}

	price, err := p.price(ctx, symbol)
	if err != nil {
		p.logger.Warn("quote unavailable, using reference data", zap.String("symbol", symbol), zap.Error(err))
		if q, ok := Fallback(symbol); ok {
			return q, nil
		}
		return Quote{}, fmt.Errorf("%w: %s: %v", ErrNotFound, symbol, err)
	}
	return Quote{Symbol: symbol, Name: p.name(ctx, symbol), Price: price}, nil
}

func (p *Provider) price(ctx context.Context, symbol string) (float64, error) {
	v, err := p.query(ctx, "GLOBAL_QUOTE", symbol)
	if err != nil {
		return 0, err
	}
	if q, ok := v.Get("Global Quote"); !ok || emptyObject(q) {
		return 0, errors.New("response has no quote")
	}
	// A quote without price is worth 0, as the service does for delisted symbols.
	raw, err := jsonpath.Get(pricePath, v.Interface())
	if err != nil || raw == nil {
		return 0, nil
	}
	return toFloat(raw)
}

// name returns the company name, or symbol if the service does not know it.
func (p *Provider) name(ctx context.Context, symbol string) string {
	v, err := p.query(ctx, "OVERVIEW", symbol)
	if err != nil {
		return symbol
	}
	raw, err := jsonpath.Get(namePath, v.Interface())
	if err != nil || raw == nil {
		return symbol
	}
	return fmt.Sprint(raw)
}

func (p *Provider) query(ctx context.Context, function, symbol string) (lenient.Value, error) {
	q := url.Values{}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", p.apiKey)
	body, err := p.fetcher.FetchRaw(ctx, p.baseURL+"?"+q.Encode())
	if err != nil {
		return lenient.Value{}, err
	}
	return lenient.Parse(body), nil
}

func emptyObject(v lenient.Value) bool {
	m, ok := v.Object()
	return !ok || m.Len() == 0
}

func toFloat(raw any) (float64, error) {
	// jsonpath may wrap a single answer in a list.
	if list, ok := raw.([]any); ok && len(list) > 0 {
		raw = list[0]
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("invalid price %v", raw)
	}
}
