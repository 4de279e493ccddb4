// Package abiprobe fills fixed-layout native records with deterministic
// values so that an independent re-declaration of the same record (in Go,
// C#, Rust, Python ctypes...) can be checked byte-for-byte against it.
//
// A Record is derived from a Go mirror of the native structure. Each
// exported member carries an `abi` struct tag naming the native member:
//
//	type ModeFB struct {
//	    FbID   uint32 `abi:"fb_id"`
//	    Width  uint32 `abi:"width"`
//	    ...
//	}
//
// Tag options:
//
//	abi:"name,string"  fixed-capacity NUL-terminated char array
//	abi:"name,ptr"     pointer member, never populated unless a table says so
//	abi:"-"            member skipped
//
// Blank (_) members are padding and are never described or written.
// Nested structs flatten to dotted names ("mode.clock") and arrays of
// structs to indexed names ("plane_fmt[1].sizeimage").
//
// # Modes
//
// Every record carries two assignment tables:
//
//	ModePattern    bit-distinguishing sentinels, one per member, for offset checks
//	ModeRealistic  domain-plausible values for semantic round-trips
//
// # Filling
//
//	rec.Fill(ptr, abiprobe.ModePattern)       // raw caller-owned memory, nil is a no-op
//	err := rec.FillBytes(buf, abiprobe.ModeRealistic)
//
// Values are written with the exact width of the native member in host
// byte order. Literals wider than the member are truncated the way a C
// compiler truncates an assignment.
package abiprobe
