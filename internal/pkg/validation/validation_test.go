package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string   `json:"title" validate:"required"`
	Time  string   `json:"time" validate:"clocktime"`
	Name  string   `json:"name" validate:"notblank"`
	Tags  []string `json:"tags" validate:"dive,max=3"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, Setup(v))
	return v
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(sample{Time: "9am", Name: "  ", Tags: []string{"ok", "toolong"}})
	require.Error(t, err)

	fields := FieldErrors(err)
	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}

	assert.Equal(t, "title is a required field", byField["title"])
	assert.Equal(t, "time must be a 24h time formatted as HH:MM", byField["time"])
	assert.Equal(t, "name cannot be blank", byField["name"])
	assert.Contains(t, byField, "tags[1]")
}

func TestFieldErrorsValidInput(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.Struct(sample{Title: "x", Time: "23:59", Name: "n", Tags: []string{"a"}}))
}

func TestFieldErrorsJSON(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"title": 5}`), &s)
	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "title", fields[0].Field)

	err = json.Unmarshal([]byte(`{`), &s)
	assert.Equal(t, "body", FieldErrors(err)[0].Field)
}
