package protocol

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestEncode(t *testing.T) {
	header := Header{
		Endpoint: "http://127.0.0.1:9332/",
		Username: "rpcuser",
		Password: "rpcpass",
	}
	body := []byte(`{"method":"getinfo","params":[],"id":"1"}`)

	req, err := Encode(context.Background(), &header, body)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, UserAgent, req.Header.Get("User-Agent"))

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "rpcuser", user)
	assert.Equal(t, "rpcpass", pass)

	sent, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, sent)
}

func TestEncodeBadEndpoint(t *testing.T) {
	_, err := Encode(context.Background(), &Header{Endpoint: "://nope"}, nil)
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	body, err := Decode(response(http.StatusOK, `{"result":1,"error":null,"id":"1"}`))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"result":1`)
}

func TestDecodeFaultOnServerError(t *testing.T) {
	// Daemons report faults as HTTP 500 with a JSON-RPC body.
	body, err := Decode(response(http.StatusInternalServerError,
		`{"result":null,"error":{"code":-5,"message":"Invalid address"},"id":"1"}`))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Invalid address")
}

func TestDecodeUnauthorized(t *testing.T) {
	_, err := Decode(response(http.StatusUnauthorized, ""))
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDecodeStatusError(t *testing.T) {
	_, err := Decode(response(http.StatusBadGateway, "upstream down\n"))
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Body)
}

func TestReadRequestAndWriteResponse(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"method":"stop"}`))
	body, err := ReadRequest(r)
	require.NoError(t, err)
	assert.Equal(t, `{"method":"stop"}`, string(body))

	_, err = ReadRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, ErrMethod)

	w := httptest.NewRecorder()
	require.NoError(t, WriteResponse(w, http.StatusInternalServerError, "", []byte(`{}`)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
