//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package vga

// Mapped surfaces reinterpret file bytes as host-order uint16 cell words, so
// the on-disk layout only matches the hardware text buffer on little-endian
// machines.
var _ = "vga requires a little-endian architecture" + 1
