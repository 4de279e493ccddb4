//go:build nativeheaders && !libdrm && cgo && linux && (amd64 || arm64)

package nativeabi

// HasLibdrm reports whether the libdrm records are compared.
const HasLibdrm = false

func drmTypes(map[string]Type) {}

func drmMembers(out []Member) []Member { return out }
