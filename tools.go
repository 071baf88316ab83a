//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq (mocks, see the go:generate lines in _test files)
// - github.com/pressly/goose/v3/cmd/goose (ad-hoc migrations; cmd/migrate covers CI)
