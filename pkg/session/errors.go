package session

import (
	"slices"
	"sort"
	"strings"
)

// ErrorBag holds validation messages keyed by field name. Field order and
// message order are preserved. The exported fields keep the bag gob
// encodable for session storage.
type ErrorBag struct {
	Keys     []string
	Messages map[string][]string
}

// NewErrorBag returns an empty bag.
func NewErrorBag() ErrorBag {
	return ErrorBag{Messages: make(map[string][]string)}
}

// ErrorBagFromMap builds a bag from a plain map. Field order follows the
// sorted keys since map order is undefined.
func ErrorBagFromMap(values map[string][]string) ErrorBag {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bag := NewErrorBag()
	for _, key := range keys {
		bag.Add(key, values[key]...)
	}
	return bag
}

// Add appends messages for field. Blank messages are ignored.
func (b *ErrorBag) Add(field string, messages ...string) {
	field = strings.TrimSpace(field)
	if field == "" {
		return
	}
	if b.Messages == nil {
		b.Messages = make(map[string][]string)
	}
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, exists := b.Messages[field]; !exists {
			b.Keys = append(b.Keys, field)
		}
		b.Messages[field] = append(b.Messages[field], message)
	}
}

// Has reports whether field has at least one message.
func (b ErrorBag) Has(field string) bool {
	return len(b.Messages[field]) > 0
}

// Get returns the messages for field in insertion order.
func (b ErrorBag) Get(field string) []string {
	return slices.Clone(b.Messages[field])
}

// Fields returns the field names holding messages.
func (b ErrorBag) Fields() []string {
	out := make([]string, 0, len(b.Keys))
	for _, key := range b.Keys {
		if b.Has(key) {
			out = append(out, key)
		}
	}
	return out
}

// All flattens every message, field by field.
func (b ErrorBag) All() []string {
	var out []string
	for _, key := range b.Fields() {
		out = append(out, b.Messages[key]...)
	}
	return out
}

// Len returns the total number of messages.
func (b ErrorBag) Len() int {
	total := 0
	for _, messages := range b.Messages {
		total += len(messages)
	}
	return total
}

// Empty reports whether the bag holds no messages.
func (b ErrorBag) Empty() bool {
	return b.Len() == 0
}

// Merge appends the messages of other after the messages of b.
func (b *ErrorBag) Merge(other ErrorBag) {
	for _, key := range other.Fields() {
		b.Add(key, other.Messages[key]...)
	}
}
