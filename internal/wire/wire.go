package wire

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/oklog/ulid/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawMessage is an alias for the codec's raw message type.
type RawMessage = jsoniter.RawMessage

// Version is the JSON-RPC protocol version transmitted in every message.
const Version = "2.0"

// Methods initiated by this client.
const (
	// MethodSessionCreate establishes or resumes a session.
	MethodSessionCreate = "session.create"
	// MethodToolsRegister replaces the session's registered tool list.
	MethodToolsRegister = "tools.register"
)

// Methods initiated by the server.
const (
	// MethodToolsCall invokes a registered tool.
	MethodToolsCall = "tools.call"
	// MethodSessionPing is a liveness notification; no response expected.
	MethodSessionPing = "session.ping"
)

// Message is the decoded form of any JSON-RPC frame. Which fields are set
// determines its role: Method+ID is a request, Method alone a notification,
// Result/Error+ID a response.
type Message struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      string     `json:"id,omitempty"`
	Method  string     `json:"method,omitempty"`
	Params  RawMessage `json:"params,omitempty"`
	Result  RawMessage `json:"result,omitempty"`
	Error   *Error     `json:"error,omitempty"`
}

// IsRequest reports whether the message is a request expecting a response.
func (m *Message) IsRequest() bool {
	return m.Method != "" && m.ID != ""
}

// IsNotification reports whether the message is a fire-and-forget notification.
func (m *Message) IsNotification() bool {
	return m.Method != "" && m.ID == ""
}

// IsResponse reports whether the message answers an earlier request.
func (m *Message) IsResponse() bool {
	return m.Method == "" && m.ID != ""
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// JSON-RPC error codes used by the transport.
const (
	// CodeToolNotFound is returned for an invocation of an unregistered tool.
	CodeToolNotFound = -32601
	// CodeToolFailed is returned when a tool handler fails.
	CodeToolFailed = -32000
	// CodeInvalidParams is returned for undecodable invocation params.
	CodeInvalidParams = -32602
)

// NewRequest builds a request frame with a fresh ULID identifier and
// marshalled params.
func NewRequest(method string, params any) (*Message, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal %s params: %w", method, err)
	}

	return &Message{
		JSONRPC: Version,
		ID:      ulid.Make().String(),
		Method:  method,
		Params:  raw,
	}, nil
}

// NewResponse builds a success response for the request identified by id.
func NewResponse(id string, result any) (*Message, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return &Message{JSONRPC: Version, ID: id, Result: raw}, nil
}

// NewErrorResponse builds an error response for the request identified by id.
func NewErrorResponse(id string, code int, message string) *Message {
	return &Message{
		JSONRPC: Version,
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}

// Encode serializes a frame for transmission.
func Encode(m *Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a received frame.
func Decode(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	return &m, nil
}

// DecodeParams unmarshals request params into v.
func DecodeParams(m *Message, v any) error {
	if len(m.Params) == 0 {
		return nil
	}

	return json.Unmarshal(m.Params, v)
}

// DecodeResult unmarshals a response result into v.
func DecodeResult(m *Message, v any) error {
	if len(m.Result) == 0 {
		return nil
	}

	return json.Unmarshal(m.Result, v)
}
