//go:build tools
// +build tools

// This file exists solely to ensure the protoc plugin binaries driven by
// protogen are tracked in go.mod and not removed via go mod tidy.

package tools

import (
	_ "github.com/grpc-ecosystem/grpc-gateway/v2/protoc-gen-grpc-gateway"
	_ "google.golang.org/grpc/cmd/protoc-gen-go-grpc"
	_ "google.golang.org/protobuf/cmd/protoc-gen-go"
)
