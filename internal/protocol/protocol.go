// Package protocol defines the wire message shapes exchanged with clinic
// clients: a {"command": ..., "data": {...}} request envelope and a flat
// {"reply": ..., ...} reply. Messages are newline-delimited JSON; one
// message per line.
package protocol

import (
	"strconv"
)

// Body is the decoded "data" object of a request. All field values on the
// wire are strings in practice, but clients occasionally send bare numbers,
// so accessors coerce scalars.
type Body map[string]any

// Request is one decoded client message. Envelope retains the full message
// as received so it can be echoed back verbatim.
type Request struct {
	Command  string
	Data     Body
	Envelope map[string]any
}

// Message is an outbound reply. Extra fields such as "data" sit at the top
// level next to "reply"; there is no nested reply envelope.
type Message map[string]any

// Text builds a bare {"reply": s} message.
func Text(s string) Message {
	return Message{"reply": s}
}

// WithData builds a {"reply": s, "data": {...}} message.
func WithData(s string, data map[string]any) Message {
	return Message{"reply": s, "data": data}
}

// Missing builds the validation reply for an absent required field.
func Missing(field string) Message {
	return Text("no [" + field + "]")
}

// Numbered renders a list as {prefix_1: item, prefix_2: item, ...}, the
// shape the desktop client iterates over list replies.
func Numbered[T any](prefix string, items []T) map[string]any {
	data := make(map[string]any, len(items))
	for i, item := range items {
		data[prefix+"_"+strconv.Itoa(i+1)] = item
	}
	return data
}

// String returns the named field coerced to a string. JSON null counts as
// absent.
func (b Body) String(key string) (string, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return "", false
	}
	return coerce(v)
}

// Object returns the named field as a nested object.
func (b Body) Object(key string) (Body, bool) {
	v, ok := b[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Body(m), true
}

// Has reports whether the field is present, regardless of type.
func (b Body) Has(key string) bool {
	_, ok := b[key]
	return ok
}

func coerce(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
