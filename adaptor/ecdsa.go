package adaptor

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// EcSign produces a DER-encoded ECDSA signature over hash, with the given
// sighash byte appended, the same witness-stack format the funding and
// refund inputs use.
func EcSign(hash [32]byte, sk *btcec.PrivateKey, sighashType byte) []byte {
	sig := ecdsa.Sign(sk, hash[:])
	return append(sig.Serialize(), sighashType)
}

// EcVerify reports whether sig (DER-encoded with a trailing sighash byte,
// as EcSign produces) is a valid ECDSA signature by pk over hash.
func EcVerify(sig []byte, pk *btcec.PublicKey, hash [32]byte) (bool, error) {
	if len(sig) < 2 {
		return false, fmt.Errorf("adaptor: signature too short")
	}
	parsed, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return false, fmt.Errorf("adaptor: parse signature: %w", err)
	}
	return parsed.Verify(hash[:], pk), nil
}
