// Package message defines the JSON-RPC envelopes exchanged with the daemon.
//
// A Request is built fresh for every call and a Response is only kept for the
// duration of the call that produced it. On the wire they look like:
//
//	request:  {"method": "getbalance", "params": ["acct", 6], "id": "..."}
//	response: {"result": 1.5, "error": null, "id": "..."}
//	fault:    {"result": null, "error": {"code": -5, "message": "..."}, "id": "..."}
package message

import (
	"encoding/json"
	"fmt"

	"litecoin-rpc/param"
)

// Request carries one named operation and its ordered wire parameters.
type Request struct {
	ID     any           `json:"id"`
	Method string        `json:"method"`
	Params []param.Param `json:"params"`
}

// NewRequest coerces args in order and wraps them in a Request.
func NewRequest(id, method string, args ...any) *Request {
	return &Request{
		ID:     id,
		Method: method,
		Params: param.CoerceAll(args),
	}
}

// Response is what the daemon answered. Exactly one of Result and Fault is
// meaningful: a non-nil Fault means the call failed remotely.
type Response struct {
	ID     any             `json:"id"`
	Result json.RawMessage `json:"result"`
	Fault  *Fault          `json:"error"`
}

// IsFault reports whether the daemon signalled a failure.
func (r *Response) IsFault() bool {
	return r.Fault != nil
}

// Fault is the structured error object of a JSON-RPC response.
// It implements error so that server-side handlers can return it directly.
type Fault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault %d: %s", f.Code, f.Message)
}
