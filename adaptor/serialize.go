package adaptor

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Each field of Signature and Proof serializes as a 33-byte compressed
// point or a 32-byte big-endian scalar, concatenated in struct-declaration
// order. This is this module's own wire format for AdaptorPair, not a
// format borrowed from elsewhere, since no pack example serializes an
// adaptor signature.
const (
	signatureEncodedLen = 33 + 33 + 32
	proofEncodedLen     = 33 + 33 + 32
)

// Encode serializes sig into the wire bytes stored in AdaptorPair.Signature.
func (sig *Signature) Encode() ([]byte, error) {
	if sig == nil || sig.R == nil || sig.RPrime == nil || sig.SHat == nil {
		return nil, fmt.Errorf("adaptor: cannot encode incomplete signature")
	}
	out := make([]byte, 0, signatureEncodedLen)
	out = append(out, sig.R.SerializeCompressed()...)
	out = append(out, sig.RPrime.SerializeCompressed()...)
	sHatBytes := sig.SHat.Bytes()
	out = append(out, sHatBytes[:]...)
	return out, nil
}

// DecodeSignature parses the wire bytes produced by Signature.Encode.
func DecodeSignature(b []byte) (*Signature, error) {
	if len(b) != signatureEncodedLen {
		return nil, fmt.Errorf("adaptor: signature must be %d bytes, got %d", signatureEncodedLen, len(b))
	}
	r, err := btcec.ParsePubKey(b[0:33])
	if err != nil {
		return nil, fmt.Errorf("adaptor: parse R: %w", err)
	}
	rPrime, err := btcec.ParsePubKey(b[33:66])
	if err != nil {
		return nil, fmt.Errorf("adaptor: parse R': %w", err)
	}
	var sHat secp.ModNScalar
	var sHatBytes [32]byte
	copy(sHatBytes[:], b[66:98])
	if overflow := sHat.SetBytes(&sHatBytes); overflow != 0 {
		return nil, fmt.Errorf("adaptor: sHat overflows group order")
	}
	return &Signature{R: r, RPrime: rPrime, SHat: &sHat}, nil
}

// Encode serializes proof into the wire bytes stored in AdaptorPair.Proof.
func (proof *Proof) Encode() ([]byte, error) {
	if proof == nil || proof.CommitG == nil || proof.CommitT == nil || proof.Z == nil {
		return nil, fmt.Errorf("adaptor: cannot encode incomplete proof")
	}
	out := make([]byte, 0, proofEncodedLen)
	out = append(out, proof.CommitG.SerializeCompressed()...)
	out = append(out, proof.CommitT.SerializeCompressed()...)
	zBytes := proof.Z.Bytes()
	out = append(out, zBytes[:]...)
	return out, nil
}

// DecodeProof parses the wire bytes produced by Proof.Encode.
func DecodeProof(b []byte) (*Proof, error) {
	if len(b) != proofEncodedLen {
		return nil, fmt.Errorf("adaptor: proof must be %d bytes, got %d", proofEncodedLen, len(b))
	}
	commitG, err := btcec.ParsePubKey(b[0:33])
	if err != nil {
		return nil, fmt.Errorf("adaptor: parse commitment G: %w", err)
	}
	commitT, err := btcec.ParsePubKey(b[33:66])
	if err != nil {
		return nil, fmt.Errorf("adaptor: parse commitment T: %w", err)
	}
	var z secp.ModNScalar
	var zBytes [32]byte
	copy(zBytes[:], b[66:98])
	if overflow := z.SetBytes(&zBytes); overflow != 0 {
		return nil, fmt.Errorf("adaptor: z overflows group order")
	}
	return &Proof{CommitG: commitG, CommitT: commitT, Z: &z}, nil
}
