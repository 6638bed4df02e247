//go:build amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm

// endian_le.go - the vga package requires a little-endian architecture.
//
// This file compiles on known LE targets. The sibling file endian_unsupported.go
// contains a deliberate compile error for any architecture not listed here.

package vga
