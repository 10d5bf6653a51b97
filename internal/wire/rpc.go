// Package wire decodes the JSON bodies shared by the REST and WebSocket
// transports: the JSON-RPC 2.0 envelope, subscription notifications and the
// entity payloads they carry. Entities go through the same drafts and
// validation as the FIX decoder, so both transports yield equal values.
package wire

import (
	"strconv"

	json "github.com/goccy/go-json"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// NewRequest builds a request for method. params may be nil.
func NewRequest(id uint64, method string, params interface{}) Request {
	return Request{
		JSONRPC: constants.JSONRPCVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// Call is a typed params object that names its JSON-RPC method, such as
// models.OrderRequest or models.AuthRequest.
type Call interface {
	Method() string
}

// NewCallRequest builds a request for c.Method() carrying c as params.
func NewCallRequest(id uint64, c Call) Request {
	return NewRequest(id, c.Method(), c)
}

// Marshal encodes the request.
func (r Request) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSerialization, "encode %s request: %v", r.Method, err)
	}
	return data, nil
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is set
// on a well-formed response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	Testnet bool            `json:"testnet"`
	UsIn    int64           `json:"usIn"`
	UsOut   int64           `json:"usOut"`
	UsDiff  int64           `json:"usDiff"`
}

// Err returns the exchange error carried by the response as an
// *errors.APIError, or nil on success.
func (r *Response) Err() error {
	if r.Error == nil {
		return nil
	}
	apiErr := errors.NewAPIError(r.Error.Code, r.Error.Message)
	apiErr.Data = r.Error.Data
	return apiErr
}

// DecodeResponse parses a JSON-RPC response envelope. It does not look at the
// result; use Err to surface exchange errors.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError("response", err)
	}
	if resp.JSONRPC != constants.JSONRPCVersion {
		return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, "unsupported jsonrpc version "+strconv.Quote(resp.JSONRPC), nil)
	}
	if resp.Error == nil && len(resp.Result) == 0 {
		return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, "response has neither result nor error", nil)
	}
	return &resp, nil
}

func decodeError(what string, err error) error {
	return errors.NewProtocolError(errors.JSONDecodeFailed, 0, "decode "+what, err)
}
