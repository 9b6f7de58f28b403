// Package backend wraps the panel's HTTP API: login.php, view.php, buy.php.
//
// The API is a PHP application with loose typing; numeric fields may arrive
// as numbers or quoted strings, and success is reported as the literal
// status "true" (login, view) or "success" (buy).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Profile is the account record returned by a successful login.
type Profile struct {
	ID      string
	Email   string
	Name    string
	Balance int64
}

// Product is one purchasable quota package from the catalog.
type Product struct {
	ID    string
	Name  string
	Price int64
	Quota string
}

type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient returns a client for the API rooted at baseURL
// (e.g. "http://localhost/website/expired/api").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// flexString decodes JSON values that may be strings or bare numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(bytes.Trim(b, `"`))
	return nil
}

// flexInt decodes JSON integers that may be quoted, fractional or null.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	s := string(b)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		n = int64(fl)
	}
	*f = flexInt(n)
	return nil
}

type loginResponse struct {
	Status string `json:"status"`
	Data   *struct {
		ID    flexString `json:"id"`
		Email string     `json:"email"`
		Name  string     `json:"name"`
		Saldo flexInt    `json:"saldo"`
	} `json:"data"`
}

type viewResponse struct {
	Status string `json:"status"`
	Data   []struct {
		ID             flexString `json:"id"`
		NamaPaket      string     `json:"nama_paket"`
		Harga          flexInt    `json:"harga"`
		QuotaAllocated flexString `json:"quota_allocated"`
	} `json:"data"`
}

type buyResponse struct {
	Status       string     `json:"status"`
	SaldoTerbaru flexString `json:"saldo_terbaru"`
	Message      string     `json:"message"`
}

// Login authenticates with a form-encoded POST to login.php. A response
// whose status is not "true" or that carries no profile maps to ErrRejected;
// transport and decode failures map to ErrUnavailable.
func (c *Client) Login(ctx context.Context, email, password string) (*Profile, error) {
	form := url.Values{
		"email":    {email},
		"password": {password},
	}

	var out loginResponse
	if err := c.post(ctx, "/login.php", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &out); err != nil {
		return nil, err
	}

	if out.Status != "true" || out.Data == nil {
		return nil, ErrRejected
	}

	return &Profile{
		ID:      string(out.Data.ID),
		Email:   out.Data.Email,
		Name:    out.Data.Name,
		Balance: int64(out.Data.Saldo),
	}, nil
}

// ListProducts fetches the quota catalog from view.php. An empty catalog is
// a valid empty slice, not an error.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out viewResponse
	if err := c.post(ctx, "/view.php", "", http.NoBody, &out); err != nil {
		return nil, err
	}

	if out.Status != "true" {
		return nil, ErrRejected
	}

	products := make([]Product, 0, len(out.Data))
	for _, d := range out.Data {
		products = append(products, Product{
			ID:    string(d.ID),
			Name:  d.NamaPaket,
			Price: int64(d.Harga),
			Quota: string(d.QuotaAllocated),
		})
	}
	return products, nil
}

// Buy submits a purchase to buy.php and returns the new balance the backend
// reports. A non-"success" status maps to a RejectionError carrying the
// backend's message.
func (c *Client) Buy(ctx context.Context, productID, customerNo, userID string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"id":          productID,
		"customer-no": customerNo,
		"user_id":     userID,
	})
	if err != nil {
		return "", err
	}

	var out buyResponse
	if err := c.post(ctx, "/buy.php", "application/json", bytes.NewReader(body), &out); err != nil {
		return "", err
	}

	if out.Status != "success" {
		return "", &RejectionError{Message: out.Message}
	}
	return string(out.SaldoTerbaru), nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %s", ErrUnavailable, err)
	}
	return nil
}
