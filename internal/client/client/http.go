package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gymmi-app/gymmi/internal/client/models"
	"github.com/gymmi-app/gymmi/internal/common"
	"github.com/gymmi-app/gymmi/internal/logging"
	"github.com/gymmi-app/gymmi/internal/netx"
)

const maxBodySize = 1 << 20

// HTTPClient talks to the backend over JSON/HTTP.
type HTTPClient struct {
	root *url.URL
	api  *url.URL
	http *http.Client
	log  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates serverURL and joins it with apiPrefix. hc is
// usually built by netx.NewHTTPClient.
func NewHTTPClient(serverURL, apiPrefix string, hc *http.Client, log logging.Logger) (*HTTPClient, error) {
	root, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (root.Scheme != "http" && root.Scheme != "https") || root.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, serverURL)
	}
	if root.Path == "" {
		root.Path = "/"
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		root: root,
		api:  root.JoinPath(apiPrefix),
		http: hc,
		log:  log.With("component", "api"),
	}, nil
}

// BaseURL returns the API base, e.g. http://host/api/v1.
func (c *HTTPClient) BaseURL() string {
	return c.api.String()
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	status, body, err := c.do(ctx, http.MethodPost, c.api.JoinPath("auth", "login"), "", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, backendError(status, body)
	}

	var tr models.TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response", ErrInvalidResponse)
	}
	return &tr, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	status, body, err := c.do(ctx, http.MethodPost, c.api.JoinPath("auth", "register"), "", req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, backendError(status, body)
	}

	var rr models.RegisterResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrInvalidResponse, err)
	}
	return &rr, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrInvalidURL)
	}

	status, body, err := c.do(ctx, http.MethodGet, c.api.JoinPath("auth", "me"), token, nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var u models.User
		if err := json.Unmarshal(body, &u); err != nil {
			return nil, fmt.Errorf("%w: user: %v", ErrInvalidResponse, err)
		}
		return &u, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, status)
	}
}

// CheckEmail reports whether an account exists. Any non-200 answer is read
// as "does not exist".
func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	u := c.api.JoinPath("auth", "check-email")
	u.RawQuery = url.Values{"email": {email}}.Encode()

	status, body, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, nil
	}

	var r models.CheckEmailResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return false, fmt.Errorf("%w: check-email: %v", ErrInvalidResponse, err)
	}
	return r.Exists, nil
}

// Ping hits the backend root liveness endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, c.root.JoinPath("/"), "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method string, u *url.URL, token string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "transport failure", "method", method, "path", u.Path, "error", err)
		return 0, nil, mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, mapError(err)
	}

	c.log.Debug(ctx, "response", "method", method, "path", u.Path, "status", resp.StatusCode, "bytes", len(data))
	return resp.StatusCode, data, nil
}

// mapError turns a transport failure into a *ServerError with a localized
// message.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case netx.IsConnectivityError(err):
		msg = MsgCannotConnect
	case netx.IsTimeout(err):
		msg = MsgTimeout
	default:
		var ue *url.Error
		if errors.As(err, &ue) {
			msg = ue.Err.Error()
		}
	}
	return &ServerError{Message: msg, Err: err}
}

// backendError decodes a {detail} body into a *ServerError.
func backendError(status int, body []byte) error {
	var er models.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, status)
	}
	msg, ok := er.Message()
	if !ok {
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, status)
	}
	return &ServerError{Message: msg, Status: status}
}
