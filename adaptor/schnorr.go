package adaptor

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ComputeSigPoint returns the Schnorr sig-point T = R + H(R||P||m)*P for a
// single oracle nonce R, pubkey P, and message hash m. This is the adaptor
// point a CET's adaptor signature is encrypted under for a single-nonce
// oracle.
func ComputeSigPoint(msgHash [32]byte, nonce, oraclePubKey *btcec.PublicKey) (*btcec.PublicKey, error) {
	e := sigPointChallenge(nonce, oraclePubKey, msgHash)

	var eP, result secp.JacobianPoint
	oraclePubKey.AsJacobian(&eP)
	secp.ScalarMultNonConst(&e, &eP, &eP)

	var rJ secp.JacobianPoint
	nonce.AsJacobian(&rJ)

	secp.AddNonConst(&rJ, &eP, &result)
	result.ToAffine()

	return secp.NewPublicKey(&result.X, &result.Y), nil
}

// ComputeSigPointBatch returns the sum of the per-nonce sig points for a
// multi-nonce oracle. len(msgHashes) must equal len(nonces).
func ComputeSigPointBatch(msgHashes [][32]byte, nonces []*btcec.PublicKey, oraclePubKey *btcec.PublicKey) (*btcec.PublicKey, error) {
	if len(msgHashes) != len(nonces) {
		return nil, fmt.Errorf("adaptor: %d messages but %d nonces", len(msgHashes), len(nonces))
	}
	if len(msgHashes) == 0 {
		return nil, fmt.Errorf("adaptor: at least one message/nonce pair is required")
	}

	var sum secp.JacobianPoint
	for i := range msgHashes {
		point, err := ComputeSigPoint(msgHashes[i], nonces[i], oraclePubKey)
		if err != nil {
			return nil, err
		}

		var pointJ secp.JacobianPoint
		point.AsJacobian(&pointJ)

		if i == 0 {
			sum = pointJ
			continue
		}
		secp.AddNonConst(&sum, &pointJ, &sum)
	}

	sum.ToAffine()
	return secp.NewPublicKey(&sum.X, &sum.Y), nil
}

// sigPointChallenge computes H(R||P||m) reduced modulo the group order, with
// H a plain SHA-256 over the compressed nonce, the compressed oracle pubkey
// and the message hash (not BIP340's tagged hash over x-only keys).
func sigPointChallenge(nonce, oraclePubKey *btcec.PublicKey, msgHash [32]byte) secp.ModNScalar {
	h := sha256.New()
	h.Write(nonce.SerializeCompressed())
	h.Write(oraclePubKey.SerializeCompressed())
	h.Write(msgHash[:])
	digest := h.Sum(nil)

	var e secp.ModNScalar
	e.SetByteSlice(digest)
	return e
}

// AggregateScalars sums the given mod-n scalars via iterated tweak-add: the
// first scalar taken directly, each subsequent one folded in via scalar
// tweak-add. It combines several oracle signature scalars into one
// adaptation secret when an outcome requires more than one oracle nonce.
func AggregateScalars(scalars []*secp.ModNScalar) (*secp.ModNScalar, error) {
	if len(scalars) == 0 {
		return nil, fmt.Errorf("adaptor: at least one scalar is required")
	}

	sum := new(secp.ModNScalar).Set(scalars[0])
	for _, s := range scalars[1:] {
		sum = TweakAdd(sum, s)
	}
	return sum, nil
}

// TweakAdd returns sk + tweak mod n.
func TweakAdd(sk, tweak *secp.ModNScalar) *secp.ModNScalar {
	sum := new(secp.ModNScalar).Set(sk)
	sum.Add(tweak)
	return sum
}

// ScalarFromBytes parses a 32-byte big-endian scalar, reducing modulo the
// group order if it overflows.
func ScalarFromBytes(b []byte) (*secp.ModNScalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("adaptor: scalar must be 32 bytes, got %d", len(b))
	}
	var s secp.ModNScalar
	s.SetByteSlice(b)
	return &s, nil
}
