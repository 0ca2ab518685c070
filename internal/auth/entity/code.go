package entity

import (
	"strconv"
	"strings"
)

// OtpCode is a submitted one-time passcode. Clients send it either as a
// JSON number or as a JSON string, so it coerces both to an int.
type OtpCode int

// UnmarshalJSON implements json.Unmarshaler.
func (c *OtpCode) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}

	s = strings.Trim(s, `"`)
	if s == "" {
		*c = 0
		return nil
	}

	// A non-numeric submission is coerced to zero, which can never match a
	// live challenge, so it fails the comparison instead of the parse.
	n, err := strconv.Atoi(s)
	if err != nil {
		*c = 0
		return nil
	}

	*c = OtpCode(n)
	return nil
}

// Int returns the code as a plain int.
func (c OtpCode) Int() int {
	return int(c)
}
