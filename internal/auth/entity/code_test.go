package entity

import (
	"encoding/json"
	"testing"
)

func TestOtpCodeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "Number", in: `{"otp":123456}`, want: 123456},
		{name: "String", in: `{"otp":"123456"}`, want: 123456},
		{name: "NonNumericString", in: `{"otp":"abc"}`, want: 0},
		{name: "EmptyString", in: `{"otp":""}`, want: 0},
		{name: "Null", in: `{"otp":null}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var payload struct {
				Otp OtpCode `json:"otp"`
			}

			// Act
			if err := json.Unmarshal([]byte(tt.in), &payload); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Assert
			if payload.Otp.Int() != tt.want {
				t.Fatalf("got %d, want %d", payload.Otp.Int(), tt.want)
			}
		})
	}
}
