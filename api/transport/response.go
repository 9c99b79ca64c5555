package transport

import "encoding/json"

// Envelope wraps every API response. Success responses carry Data,
// error responses carry Code and Message.
type Envelope struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewSuccess wraps a payload in a success envelope.
func NewSuccess(data any) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError builds an error envelope from a machine code and a
// human-readable message.
func NewError(code, message string) Envelope {
	return Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
	}
}

// String renders the envelope as JSON for log output, best effort.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
