//go:build tools

// Package tools pins development dependencies in go.mod.
// Install with: go install -tags tools ./...
package tools

import (
	// Linting and formatting
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "golang.org/x/tools/cmd/goimports"

	// Regenerates pkg/mocks
	_ "github.com/golang/mock/mockgen"

	// Testing tools
	_ "github.com/onsi/ginkgo/v2/ginkgo"
	_ "gotest.tools/gotestsum"

	// Security scanning
	_ "github.com/securego/gosec/v2/cmd/gosec"

	// Profiling search runs (mazesearch run --cpuprofile)
	_ "github.com/google/pprof"

	// HTTP API documentation
	_ "github.com/swaggo/swag/cmd/swag"
)
