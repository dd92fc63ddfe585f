// Package mocks provides testify mocks for the translator contract.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Translator is a mock implementation of translate.Translator for testing.
type Translator struct {
	mock.Mock
}

// Translate is a mock implementation of the Translate method.
func (m *Translator) Translate(ctx context.Context, source string) (string, error) {
	args := m.Called(ctx, source)
	return args.String(0), args.Error(1)
}

// String identifies the mock translator.
func (m *Translator) String() string {
	return "mocks.Translator"
}
