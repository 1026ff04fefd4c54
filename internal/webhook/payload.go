package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

// ErrMalformedPayload is returned when a webhook body is not a JSON object.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// fields is a loosely typed JSON object. Every accessor tolerates missing
// keys, nulls and values of the wrong type, so lookups on a nil fields are safe.
type fields map[string]any

func decodeObject(body []byte) (fields, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}

	// Numbers stay json.Number so large ids keep their integer form.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedPayload)
	}
	return fields(obj), nil
}

// object returns the nested object under key, or nil.
func (f fields) object(key string) fields {
	if obj, ok := f[key].(map[string]any); ok {
		return fields(obj)
	}
	return nil
}

func (f fields) has(key string) bool {
	return f.object(key) != nil
}

// str returns the string under key. Empty strings count as absent.
func (f fields) str(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok && s != ""
}

func (f fields) stringOr(key, fallback string) string {
	if s, ok := f.str(key); ok {
		return s
	}
	return fallback
}

// idOr is stringOr for identifiers, which GitHub sends as either strings or
// integers.
func (f fields) idOr(key, fallback string) string {
	if n, ok := f[key].(json.Number); ok {
		return n.String()
	}
	return f.stringOr(key, fallback)
}

// timestampOr returns the value under key when it is an ISO-8601 date-time.
func (f fields) timestampOr(key, fallback string) string {
	if s, ok := f.str(key); ok {
		if _, ok := domain.ParseTimestamp(s); ok {
			return s
		}
	}
	return fallback
}

func (f fields) boolean(key string) bool {
	b, _ := f[key].(bool)
	return b
}
