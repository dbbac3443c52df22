package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"text", "Kim", false},
		{"padded", "  Kim ", false},
		{"empty", "", true},
		{"spaces", " \t\n", true},
		{"not_a_string", 42, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.value)
			if tt.wantErr {
				assert.EqualError(t, err, "must not be blank")
				return
			}
			assert.NoError(t, err)
		})
	}
}
