package otp

import "testing"

func TestCodeGeneratorGenerate(t *testing.T) {
	t.Run("AlwaysSixDigits", func(t *testing.T) {
		// Arrange
		gen := NewCodeGenerator()

		// Act & Assert
		for range 1000 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code < 100000 || code > 999999 {
				t.Fatalf("code %d out of range", code)
			}
		}
	})

	t.Run("NotConstant", func(t *testing.T) {
		// Arrange
		gen := NewCodeGenerator()
		seen := make(map[int]struct{})

		// Act
		for range 50 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			seen[code] = struct{}{}
		}

		// Assert
		if len(seen) < 2 {
			t.Fatalf("expected varied codes, got %d distinct", len(seen))
		}
	})
}
