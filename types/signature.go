package types

// SignatureSize is the size in bytes of an opaque signature value.
const SignatureSize = 64

// Signature is an opaque signature blob. Verifying it is the block
// processor / block-body validator's job; the election and syncer
// packages only store and forward signatures.
type Signature [SignatureSize]byte
