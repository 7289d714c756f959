package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "object", body: `{"title":"A"}`},
		{name: "empty object", body: `{}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "array", body: `[{"title":"A"}]`, wantErr: true},
		{name: "malformed", body: `{"title":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodePayload([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, payload)
		})
	}
}

func TestPayload_CheckRequired(t *testing.T) {
	full := Payload{"title": "t", "content": "c", "author": "a"}
	assert.NoError(t, full.CheckRequired())

	withExtra := Payload{"title": "t", "content": "c", "author": "a", "tags": []any{"x"}}
	assert.NoError(t, withExtra.CheckRequired())

	err := Payload{"title": "t", "content": "c"}.CheckRequired()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "author")

	err = Payload{"title": "t", "content": "c", "author": 42.0}.CheckRequired()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "author must be a string")
}

func TestPayload_CheckAllowed(t *testing.T) {
	assert.NoError(t, Payload{}.CheckAllowed())
	assert.NoError(t, Payload{"title": "new"}.CheckAllowed())

	for _, key := range []string{"id", "date_created", "date_modified", "tags"} {
		err := Payload{"title": "new", key: "x"}.CheckAllowed()
		assert.ErrorIs(t, err, ErrValidation, key)
		assert.Contains(t, err.Error(), key)
	}

	assert.ErrorIs(t, Payload{"content": nil}.CheckAllowed(), ErrValidation)
}

func TestPayload_Apply(t *testing.T) {
	post := Post{Id: 7, Title: "old", Content: "body", Author: "jane"}
	Payload{"title": "new"}.Apply(&post)

	assert.Equal(t, Post{Id: 7, Title: "new", Content: "body", Author: "jane"}, post)
}

func TestPost_Field(t *testing.T) {
	post := Post{Title: "t", Content: "c", Author: "a", DateCreated: "d"}

	for field, want := range map[string]string{"title": "t", "content": "c", "author": "a", "date_created": "d"} {
		got, ok := post.Field(field)
		assert.True(t, ok, field)
		assert.Equal(t, want, got)
	}

	_, ok := post.Field("id")
	assert.False(t, ok)
}
