package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexibleBoolUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
		wantErr  bool
	}{
		{"boolean true", `true`, true, false},
		{"integer one", `1`, true, false},
		{"string one", `"1"`, true, false},
		{"boolean false", `false`, false, false},
		{"integer zero", `0`, false, false},
		{"string zero", `"0"`, false, false},
		{"null", `null`, false, false},
		{"empty string", `""`, false, false},
		{"arbitrary string", `"yes"`, false, true},
		{"other number", `2`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b FlexibleBool
			err := json.Unmarshal([]byte(tt.input), &b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, b.Bool())
		})
	}
}

func TestFlexibleBoolInStruct(t *testing.T) {
	var payload struct {
		MobileVerified FlexibleBool `json:"mobileVerified"`
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"mobileVerified":"1"}`), &payload))
	assert.True(t, payload.MobileVerified.Bool())
}

func TestNormalizeMobile(t *testing.T) {
	valid := NormalizeMobile("9876543210")
	if assert.NotNil(t, valid) {
		assert.Equal(t, int64(9876543210), *valid)
	}

	assert.Nil(t, NormalizeMobile(""))
	assert.Nil(t, NormalizeMobile("12345"))
	assert.Nil(t, NormalizeMobile("98765432101"))
	assert.Nil(t, NormalizeMobile("98765abc10"))
	assert.Nil(t, NormalizeMobile("+919876543210"))
}
