package quotes

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
)

// dailyCache is a RoundTripper that stores full responses on disk under a
// key that includes the current calendar day, so every entry expires at
// midnight. Cache failures are ignored; the request just goes out again.
type dailyCache struct {
	dir  string
	base http.RoundTripper
}

func (c *dailyCache) key(req *http.Request) string {
	raw := fmt.Sprintf("%s %s %s",
		time.Now().UTC().Format("2006-01-02"), req.Method, req.URL.String())
	return fmt.Sprintf("%x", sha1.Sum([]byte(raw)))
}

func (c *dailyCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := c.key(req)

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// DumpResponse inside put leaves the body readable for the caller.
	_ = c.put(key, resp)
	return resp, nil
}

func (c *dailyCache) path(key string) string {
	return filepath.Join(c.dir, key)
}

func (c *dailyCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *dailyCache) put(key string, resp *http.Response) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), content, 0o644)
}
