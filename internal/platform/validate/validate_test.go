// Copyright (c) 2026 Toolshelf. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolshelf/toolshelf/internal/platform/apperr"
	"github.com/toolshelf/toolshelf/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "Tool Name", "Star Atlas", false},
		{"empty_string", "Tool Name", "", true},
		{"whitespace_only", "Tool Name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Contains(t, ae.Details, tt.field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_URL checks the URL format validation rule.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_https", "https://example.com/tool", true},
		{"valid_http", "http://example.com", true},
		{"surrounding_whitespace", "  https://example.com  ", true},
		{"empty", "", false},
		{"no_scheme", "example.com/tool", false},
		{"relative_path", "/tools/1", false},
		{"unsupported_scheme", "ftp://example.com", false},
		{"not_a_url", "not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("URL", tt.value)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("Tool Name", "Star Atlas").
		URL("URL", "https://example.com").
		Required("Description", "Interactive sky map").
		Required("Category", "Science").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain: every
failed rule is reported, keyed by field.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("Tool Name", "").       // Fails
		URL("URL", "not-a-url").         // Fails
		Required("Description", "desc"). // Passes
		Required("Category", "").        // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors, keyed by field name.
	assert.Len(t, ae.Details, 3)
	assert.Contains(t, ae.Details, "Tool Name")
	assert.Contains(t, ae.Details, "URL")
	assert.Contains(t, ae.Details, "Category")
}
