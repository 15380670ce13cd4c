// Package protocol implements the HTTP envelope around JSON-RPC bodies.
//
// Daemons accept a JSON body POSTed to "/" with HTTP basic auth. Their answer
// is a JSON body too, but the HTTP status is not reliable on its own: a fault
// usually arrives as HTTP 500 with a perfectly valid JSON-RPC error object.
//
//	client                                   daemon
//	  │ POST / (basic auth, application/json)  │
//	  │ ─────────────────────────────────────► │
//	  │      200 {"result":..,"error":null}    │  success
//	  │      500 {"result":null,"error":{..}}  │  fault, still a protocol response
//	  │      401 (empty body)                  │  bad credentials
//	  │ ◄───────────────────────────────────── │
package protocol

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxBodySize caps how much of a body is read, in either direction.
	// getwork and listtransactions answers are the largest ones seen in practice.
	MaxBodySize int64 = 32 << 20
	UserAgent         = "litecoin-rpc/1.0"
)

var (
	ErrUnauthorized = errors.New("protocol: daemon rejected credentials")
	ErrBodyTooLarge = errors.New("protocol: body exceeds size limit")
	ErrMethod       = errors.New("protocol: JSON-RPC requires POST")
)

// Header is everything needed to address one daemon.
type Header struct {
	Endpoint    string // e.g. "https://127.0.0.1:9332/"
	Username    string
	Password    string
	ContentType string
}

// StatusError is returned for HTTP answers that carry no JSON-RPC body.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("protocol: unexpected HTTP status %s", e.Status)
	}
	return fmt.Sprintf("protocol: unexpected HTTP status %s: %s", e.Status, e.Body)
}

// Encode builds the POST carrying body to the endpoint in h.
func Encode(ctx context.Context, h *Header, body []byte) (*http.Request, error) {
	if int64(len(body)) > MaxBodySize {
		return nil, ErrBodyTooLarge
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "protocol: build request")
	}
	if h.Username != "" || h.Password != "" {
		req.SetBasicAuth(h.Username, h.Password)
	}
	contentType := h.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", UserAgent)
	return req, nil
}

// Decode reads the body of resp and decides whether it is a JSON-RPC answer.
// It always closes resp.Body.
func Decode(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := readLimited(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	// A JSON object is a JSON-RPC answer whatever the status says.
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		return body, nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// ReadRequest is the server-side counterpart of Encode. It returns the body of
// a JSON-RPC POST.
func ReadRequest(r *http.Request) ([]byte, error) {
	if r.Method != http.MethodPost {
		return nil, ErrMethod
	}
	defer r.Body.Close()
	return readLimited(r.Body)
}

// WriteResponse writes a JSON-RPC body with the given HTTP status.
func WriteResponse(w http.ResponseWriter, status int, contentType string, body []byte) error {
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return errors.Wrap(err, "protocol: write response")
	}
	return nil
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(err, "protocol: read body")
	}
	if int64(len(body)) > MaxBodySize {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
