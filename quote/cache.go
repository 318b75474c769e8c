package quote

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// dailyCache is an http.RoundTripper keeping successful responses on disk
// until the end of the day. Quote services are rate limited, and intraday
// precision is not needed to value a portfolio.
type dailyCache struct {
	base   http.RoundTripper
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewDailyCache wraps base with a disk cache in dir. An empty dir means
// os.TempDir() and a nil base means http.DefaultTransport.
func NewDailyCache(dir string, base http.RoundTripper, logger *zap.Logger) http.RoundTripper {
	if dir == "" {
		dir = os.TempDir()
	}
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dailyCache{base: base, dir: dir, now: time.Now, logger: logger}
}

func (c *dailyCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	// the key changes every day, so entries expire at midnight.
	key := fmt.Sprintf("%s %s %s", c.now().Format(time.DateOnly), req.Method, req.URL.String())
	key = fmt.Sprintf("stockfolio-%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		c.logger.Debug("cache hit", zap.String("url", redact(req.URL.String())))
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched",
		zap.String("url", redact(req.URL.String())),
		zap.String("status", resp.Status),
	)
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	// DumpResponse restores the body it reads.
	if err := c.put(key, resp); err != nil {
		c.logger.Warn("cache write error (ignored)", zap.Error(err))
	}
	return resp, nil
}

func (c *dailyCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *dailyCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0600)
}
