// Package adaptor implements the cryptographic building blocks a DLC needs
// outside the core transaction-assembly engine: ECDSA sign/verify/DER-encode,
// the oracle's Schnorr sig-point computation, and the ECDSA-adaptor-signature
// primitives (Sign/Verify/Adapt) that bind a CET to an oracle outcome.
//
// The adaptor-signature construction is built directly on
// github.com/decred/dcrd/dcrec/secp256k1/v4's scalar and point arithmetic,
// the same curve library btcec/v2 itself wraps. See DESIGN.md.
package adaptor
