package interaction

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Type is the interaction kind tag sent by the platform.
type Type int

// Interaction types.
const (
	// TypeUnknown is used when the payload carries no type.
	TypeUnknown            Type = 0
	TypePing               Type = 1
	TypeApplicationCommand Type = 2
)

func (t Type) String() string {
	switch t {
	case TypePing:
		return "ping"
	case TypeApplicationCommand:
		return "application_command"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// UnmarshalJSON accepts any integral JSON number; null maps to TypeUnknown.
func (t *Type) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*t = TypeUnknown
		return nil
	}
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return fmt.Errorf("type must be a number, got %s", s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("type must be a number: %w", err)
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("type must be an integer, got %s", s)
	}

	*t = Type(f)
	return nil
}

// CategoryOption is the command option naming the content category.
const CategoryOption = "category"

// RawRequest is a fully buffered inbound request. The body is read once by
// the transport and reused for both verification and parsing.
type RawRequest struct {
	ID     string
	Method string
	Header http.Header
	Body   []byte
}

// Envelope is a decoded interaction.
type Envelope struct {
	ID            string       `json:"id,omitempty"`
	ApplicationID string       `json:"application_id,omitempty"`
	Type          Type         `json:"type"`
	Data          *CommandData `json:"data,omitempty"`
}

// CommandData describes an invoked command.
type CommandData struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name,omitempty"`
	Options []CommandOption `json:"options,omitempty"`
}

// CommandOption is one user-supplied command argument. Value is decoded
// only when the dispatcher needs it.
type CommandOption struct {
	Name  string          `json:"name"`
	Type  int             `json:"type,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// The platform sends lower-case keys. encoding/json folds case when matching
// struct fields, so the payload types decode through exact-key maps instead:
// "TYPE" or "Name" are unknown fields, not aliases.

// UnmarshalJSON decodes an interaction object, matching keys exactly.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	fields, err := objectFields(b)
	if err != nil {
		return err
	}
	var env Envelope
	if err := decodeFields(fields,
		field{"id", &env.ID},
		field{"application_id", &env.ApplicationID},
		field{"type", &env.Type},
		field{"data", &env.Data},
	); err != nil {
		return err
	}
	*e = env
	return nil
}

// UnmarshalJSON decodes command data, matching keys exactly.
func (d *CommandData) UnmarshalJSON(b []byte) error {
	fields, err := objectFields(b)
	if err != nil {
		return err
	}
	var data CommandData
	if err := decodeFields(fields,
		field{"id", &data.ID},
		field{"name", &data.Name},
		field{"options", &data.Options},
	); err != nil {
		return err
	}
	*d = data
	return nil
}

// UnmarshalJSON decodes one option, matching keys exactly. The value is
// kept raw.
func (o *CommandOption) UnmarshalJSON(b []byte) error {
	fields, err := objectFields(b)
	if err != nil {
		return err
	}
	var opt CommandOption
	if err := decodeFields(fields,
		field{"name", &opt.Name},
		field{"type", &opt.Type},
	); err != nil {
		return err
	}
	if raw, ok := fields["value"]; ok {
		opt.Value = append(json.RawMessage(nil), raw...)
	}
	*o = opt
	return nil
}

type field struct {
	key string
	dst any
}

// objectFields splits a JSON object into its members keyed as sent. A JSON
// null yields no members.
func objectFields(b []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeFields(fields map[string]json.RawMessage, want ...field) error {
	for _, f := range want {
		raw, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
	}
	return nil
}

// Category returns the value of the first "category" option, or nil when
// there is no data, no options, no such option, or the option has no value.
// A non-string value is an ErrInvalidPayload.
func (e *Envelope) Category() (*string, error) {
	if e.Data == nil {
		return nil, nil
	}

	for _, opt := range e.Data.Options {
		if opt.Name != CategoryOption {
			continue
		}
		if len(opt.Value) == 0 || string(opt.Value) == "null" {
			return nil, nil
		}

		var v string
		if err := json.Unmarshal(opt.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: option %q must be a string", ErrInvalidPayload, opt.Name)
		}
		return &v, nil
	}

	return nil, nil
}
