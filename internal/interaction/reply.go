package interaction

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ContentType is the only content type replies are served with.
const ContentType = "application/json"

// Response type tags understood by the platform.
const (
	ResponsePong                     = 1
	ResponseChannelMessageWithSource = 4
)

// Error messages returned to the caller. Authentication failures are never
// more specific than MessageUnsigned.
const (
	MessageUnsigned   = "Unsigned request"
	MessageBadRequest = "Bad request"
	MessageInternal   = "Internal server error"
)

// Kind tags a Reply variant.
type Kind int

const (
	KindInvalid Kind = iota
	KindPong
	KindMessage
	KindError
)

// Reply is the outcome of dispatching one interaction.
type Reply struct {
	Kind   Kind
	Status int

	// Content is set for KindMessage.
	Content string
	// Error is set for KindError.
	Error string
}

// Pong acknowledges a ping.
func Pong() Reply {
	return Reply{Kind: KindPong, Status: http.StatusOK}
}

// Message replies to a command with content.
func Message(content string) Reply {
	return Reply{Kind: KindMessage, Status: http.StatusOK, Content: content}
}

// Failure builds an error reply.
func Failure(status int, message string) Reply {
	return Reply{Kind: KindError, Status: status, Error: message}
}

// Unauthorized is the reply for any signature failure.
func Unauthorized() Reply {
	return Failure(http.StatusUnauthorized, MessageUnsigned)
}

// BadRequest is the reply for malformed or unrecognized interactions.
func BadRequest() Reply {
	return Failure(http.StatusBadRequest, MessageBadRequest)
}

// Outcome is a short label for logs and metrics.
func (r Reply) Outcome() string {
	switch r.Kind {
	case KindPong:
		return "pong"
	case KindMessage:
		return "message"
	case KindError:
		switch r.Status {
		case http.StatusUnauthorized:
			return "unsigned"
		case http.StatusBadRequest:
			return "bad_request"
		}
		return "error"
	default:
		return "error"
	}
}

// PongResponse is the wire form of a Pong reply.
type PongResponse struct {
	Type int `json:"type"`
}

// MessageResponse is the wire form of a Message reply.
type MessageResponse struct {
	Type int         `json:"type"`
	Data MessageData `json:"data"`
}

// MessageData carries the message text.
type MessageData struct {
	Content string `json:"content"`
}

// ErrorResponse is the wire form of an error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Rendered is a reply ready to be written to the wire.
type Rendered struct {
	Status      int
	ContentType string
	Body        []byte
}

// Render serializes the reply. An invalid reply renders as a 500.
func (r Reply) Render() (Rendered, error) {
	status := r.Status
	var payload any

	switch r.Kind {
	case KindPong:
		payload = PongResponse{Type: ResponsePong}
	case KindMessage:
		payload = MessageResponse{
			Type: ResponseChannelMessageWithSource,
			Data: MessageData{Content: r.Content},
		}
	case KindError:
		payload = ErrorResponse{Error: r.Error}
	default:
		status = http.StatusInternalServerError
		payload = ErrorResponse{Error: MessageInternal}
	}
	if status == 0 {
		status = http.StatusOK
	}

	body, err := marshal(payload)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Status: status, ContentType: ContentType, Body: body}, nil
}

// marshal encodes v without HTML escaping; content strings routinely
// contain '<', '>' and '&'.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
