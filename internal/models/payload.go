package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldAuthor      = "author"
	FieldDateCreated = "date_created"
)

// EditableFields are the keys a client may set. They are required on
// creation and are the only keys accepted on update.
var EditableFields = []string{FieldTitle, FieldContent, FieldAuthor}

// Payload is a decoded JSON object submitted by a client.
type Payload map[string]any

// DecodePayload parses body as a JSON object. Anything else, including
// an empty body or null, is a validation error.
func DecodePayload(body []byte) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrValidation)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrValidation)
	}
	return payload, nil
}

// CheckRequired fails unless every editable field is present. Extra keys
// are allowed.
func (p Payload) CheckRequired() error {
	missing := make([]string, 0)
	for _, field := range EditableFields {
		if _, ok := p[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return p.checkStrings()
}

// CheckAllowed fails if the payload carries any key outside the editable
// fields.
func (p Payload) CheckAllowed() error {
	unknown := make([]string, 0)
	for key := range p {
		if !isEditable(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unexpected %s", ErrValidation, strings.Join(unknown, ", "))
	}
	return p.checkStrings()
}

// Apply copies the editable fields present in the payload onto post.
// The payload must have passed CheckRequired or CheckAllowed.
func (p Payload) Apply(post *Post) {
	if v, ok := p[FieldTitle].(string); ok {
		post.Title = v
	}
	if v, ok := p[FieldContent].(string); ok {
		post.Content = v
	}
	if v, ok := p[FieldAuthor].(string); ok {
		post.Author = v
	}
}

func (p Payload) checkStrings() error {
	for _, field := range EditableFields {
		value, ok := p[field]
		if !ok {
			continue
		}
		if _, isString := value.(string); !isString {
			return fmt.Errorf("%w: %s must be a string", ErrValidation, field)
		}
	}
	return nil
}

func isEditable(key string) bool {
	for _, field := range EditableFields {
		if key == field {
			return true
		}
	}
	return false
}
