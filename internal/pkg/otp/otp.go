// Package otp generates one-time passcodes for login challenges.
package otp

import (
	"crypto/rand"
	"math/big"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generator produces one-time passcodes.
type Generator interface {
	Generate() (int, error)
}

// CodeGenerator produces uniformly random six digit codes from a
// cryptographic source.
type CodeGenerator struct{}

// NewCodeGenerator returns a CodeGenerator.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate returns a code in [100000, 999999].
func (*CodeGenerator) Generate() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return 0, err
	}

	return codeMin + int(n.Int64()), nil
}
