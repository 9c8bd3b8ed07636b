package esplora

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/btcsuite/go-socks/socks"
	"github.com/pkg/errors"
)

// maxErrorBodySize caps how much of a failed response is kept in a
// StatusError.
const maxErrorBodySize = 512

// Client is a typed client for the Esplora REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient returns a client for the server described by cfg.
func NewClient(cfg *Config) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Esplora URL %s", cfg.BaseURL)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, errors.Errorf("invalid Esplora URL %s: scheme must be http or https", cfg.BaseURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		_, _, err := net.SplitHostPort(cfg.Proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "proxy address '%s' is invalid", cfg.Proxy)
		}
		proxy := &socks.Proxy{
			Addr:     cfg.Proxy,
			Username: cfg.ProxyUser,
			Password: cfg.ProxyPass,
		}
		timeout := cfg.Timeout
		transport.Proxy = nil
		transport.DialContext = func(_ context.Context, network, address string) (net.Conn, error) {
			return proxy.DialTimeout(network, address, timeout)
		}
		log.Infof("Dialing %s through SOCKS5 proxy %s", baseURL.Host, cfg.Proxy)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// resourceURL returns the base URL joined with the given path elements.
func (c *Client) resourceURL(pathElements ...string) string {
	resource := *c.baseURL
	pathElements = append([]string{c.baseURL.Path}, pathElements...)
	resource.Path = path.Join(pathElements...)
	return resource.String()
}

// get decodes the JSON response of a GET request into v.
func (c *Client) get(ctx context.Context, v interface{}, pathElements ...string) error {
	body, err := c.fetch(ctx, pathElements...)
	if err != nil {
		return err
	}
	err = json.Unmarshal(body, v)
	if err != nil {
		return errors.Wrapf(err, "error unmarshalling the response of %s", strings.Join(pathElements, "/"))
	}
	return nil
}

// getText returns the whitespace-trimmed plain text response of a GET
// request.
func (c *Client) getText(ctx context.Context, pathElements ...string) (string, error) {
	body, err := c.fetch(ctx, pathElements...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) fetch(ctx context.Context, pathElements ...string) ([]byte, error) {
	requestURL := c.resourceURL(pathElements...)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Tracef("GET %s", requestURL)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting %s from the Esplora server", requestURL)
	}
	return readResponse(requestURL, response)
}

func readResponse(requestURL string, response *http.Response) (body []byte, err error) {
	defer response.Body.Close()

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading the response of %s", requestURL)
	}

	if response.StatusCode != http.StatusOK {
		if len(body) > maxErrorBodySize {
			body = body[:maxErrorBodySize]
		}
		return nil, errors.WithStack(&StatusError{
			URL:        requestURL,
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	return body, nil
}
