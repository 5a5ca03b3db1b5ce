package adaptor

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Signature is an ECDSA adaptor signature: an ECDSA signature encrypted
// under the adaptor point T, together with the plain nonce point it was
// derived from.
type Signature struct {
	R      *btcec.PublicKey // k*G
	RPrime *btcec.PublicKey // k*T
	SHat   *secp.ModNScalar // k^-1 * (m + RPrime.x*sk) mod n
}

// Proof is a non-interactive Chaum-Pedersen proof that Signature.R and
// Signature.RPrime share the same discrete log with respect to G and T.
type Proof struct {
	CommitG *btcec.PublicKey // a*G
	CommitT *btcec.PublicKey // a*T
	Z       *secp.ModNScalar // a + e*k mod n
}

// Sign produces an ECDSA adaptor signature on msgHash under sk, encrypted
// so that it can only be decrypted into a valid signature by whoever knows
// the discrete log of T (the oracle's eventual Schnorr scalar). It also
// produces the DLEQ proof binding the adaptor signature to T.
func Sign(msgHash [32]byte, sk *btcec.PrivateKey, adaptorPoint *btcec.PublicKey) (*Signature, *Proof, error) {
	if sk == nil || adaptorPoint == nil {
		return nil, nil, fmt.Errorf("adaptor: sign requires a non-nil key and adaptor point")
	}

	k, err := randScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("adaptor: %w", err)
	}

	r, rPrime := noncePoints(k, adaptorPoint)

	// Canonicalize R' to an even Y coordinate so the encrypted signature
	// has a unique representation; negating k flips both R and R'.
	if rPrime.Y.IsOdd() {
		k.NegateVal(k)
		r, rPrime = noncePoints(k, adaptorPoint)
	}

	skScalar := sk.Key
	m := scalarFromHash(msgHash)

	rPrimeX := xFieldToScalar(&rPrime.X)

	var sHat secp.ModNScalar
	sHat.Set(&rPrimeX)
	sHat.Mul(&skScalar)
	sHat.Add(&m)

	kInv := new(secp.ModNScalar).InverseValNonConst(k)
	sHat.Mul(kInv)

	proof, err := proveDLEQ(k, adaptorPoint, r, rPrime)
	if err != nil {
		return nil, nil, fmt.Errorf("adaptor: %w", err)
	}

	rPub := jacobianToPubKey(r)
	rPrimePub := jacobianToPubKey(rPrime)

	return &Signature{R: rPub, RPrime: rPrimePub, SHat: &sHat}, proof, nil
}

// Verify checks that sig was produced by the holder of pk for msgHash,
// encrypted under adaptorPoint, and that proof witnesses the binding
// between sig.R and sig.RPrime.
func Verify(sig *Signature, proof *Proof, pk, adaptorPoint *btcec.PublicKey, msgHash [32]byte) error {
	if sig == nil || proof == nil || pk == nil || adaptorPoint == nil {
		return fmt.Errorf("adaptor: verify requires non-nil signature, proof, pubkey and adaptor point")
	}

	if err := verifyDLEQ(proof, adaptorPoint, sig.R, sig.RPrime); err != nil {
		return fmt.Errorf("adaptor: dleq proof invalid: %w", err)
	}

	// sHat*R must equal m*G + RPrime.x*pk, the adaptor-point analogue of
	// the standard ECDSA verification equation s*R == m*G + r*pk.
	var rJ secp.JacobianPoint
	sig.R.AsJacobian(&rJ)
	var lhs secp.JacobianPoint
	secp.ScalarMultNonConst(sig.SHat, &rJ, &lhs)
	lhs.ToAffine()

	m := scalarFromHash(msgHash)
	rPrimeX := xFieldToScalar(pubKeyXField(sig.RPrime))

	var mG secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&m, &mG)

	var pkJ, rX_pk secp.JacobianPoint
	pk.AsJacobian(&pkJ)
	secp.ScalarMultNonConst(&rPrimeX, &pkJ, &rX_pk)

	var rhs secp.JacobianPoint
	secp.AddNonConst(&mG, &rX_pk, &rhs)
	rhs.ToAffine()

	if lhs.X != rhs.X || lhs.Y != rhs.Y {
		return fmt.Errorf("adaptor: signature does not verify against pubkey")
	}
	return nil
}

// Adapt decrypts an adaptor signature using t, the discrete log of the
// adaptor point it was encrypted under (the oracle's revealed Schnorr
// scalar), producing a standard low-S ECDSA signature.
func Adapt(sig *Signature, t *secp.ModNScalar) (*ecdsa.Signature, error) {
	if sig == nil || t == nil {
		return nil, fmt.Errorf("adaptor: adapt requires a non-nil signature and scalar")
	}
	if t.IsZero() {
		return nil, fmt.Errorf("adaptor: adaptation secret must be non-zero")
	}

	tInv := new(secp.ModNScalar).InverseValNonConst(t)

	var s secp.ModNScalar
	s.Set(sig.SHat)
	s.Mul(tInv)

	if s.IsOverHalfOrder() {
		s.Negate()
	}

	r := xFieldToScalar(pubKeyXField(sig.RPrime))
	return ecdsa.NewSignature(&r, &s), nil
}

// proveDLEQ builds the Chaum-Pedersen proof that r = k*G and rPrime = k*T
// for the same scalar k.
func proveDLEQ(k *secp.ModNScalar, adaptorPoint *btcec.PublicKey, r, rPrime secp.JacobianPoint) (*Proof, error) {
	a, err := randScalar()
	if err != nil {
		return nil, err
	}

	var commitGJ secp.JacobianPoint
	secp.ScalarBaseMultNonConst(a, &commitGJ)

	var tJ, commitTJ secp.JacobianPoint
	adaptorPoint.AsJacobian(&tJ)
	secp.ScalarMultNonConst(a, &tJ, &commitTJ)

	commitGJ.ToAffine()
	commitTJ.ToAffine()
	commitG := jacobianToPubKey(commitGJ)
	commitT := jacobianToPubKey(commitTJ)

	e := dleqChallenge(adaptorPoint, jacobianToPubKey(r), jacobianToPubKey(rPrime), commitG, commitT)

	var z secp.ModNScalar
	z.Set(&e)
	z.Mul(k)
	z.Add(a)

	return &Proof{CommitG: commitG, CommitT: commitT, Z: &z}, nil
}

// verifyDLEQ checks a Chaum-Pedersen proof produced by proveDLEQ.
func verifyDLEQ(proof *Proof, adaptorPoint, r, rPrime *btcec.PublicKey) error {
	e := dleqChallenge(adaptorPoint, r, rPrime, proof.CommitG, proof.CommitT)

	// z*G =?= CommitG + e*R
	var zG secp.JacobianPoint
	secp.ScalarBaseMultNonConst(proof.Z, &zG)
	zG.ToAffine()

	var rJ, eR secp.JacobianPoint
	r.AsJacobian(&rJ)
	secp.ScalarMultNonConst(&e, &rJ, &eR)
	var commitGJ secp.JacobianPoint
	proof.CommitG.AsJacobian(&commitGJ)
	var want1 secp.JacobianPoint
	secp.AddNonConst(&commitGJ, &eR, &want1)
	want1.ToAffine()

	if zG.X != want1.X || zG.Y != want1.Y {
		return fmt.Errorf("base-G relation does not hold")
	}

	// z*T =?= CommitT + e*R'
	var tJ, zT secp.JacobianPoint
	adaptorPoint.AsJacobian(&tJ)
	secp.ScalarMultNonConst(proof.Z, &tJ, &zT)
	zT.ToAffine()

	var rPrimeJ, eRPrime secp.JacobianPoint
	rPrime.AsJacobian(&rPrimeJ)
	secp.ScalarMultNonConst(&e, &rPrimeJ, &eRPrime)
	var commitTJ secp.JacobianPoint
	proof.CommitT.AsJacobian(&commitTJ)
	var want2 secp.JacobianPoint
	secp.AddNonConst(&commitTJ, &eRPrime, &want2)
	want2.ToAffine()

	if zT.X != want2.X || zT.Y != want2.Y {
		return fmt.Errorf("base-T relation does not hold")
	}
	return nil
}

// dleqChallenge computes the Fiat-Shamir challenge binding a DLEQ proof to
// the adaptor point and both nonce points.
func dleqChallenge(adaptorPoint, r, rPrime, commitG, commitT *btcec.PublicKey) secp.ModNScalar {
	h := sha256.New()
	h.Write([]byte("cfddlc/adaptor-dleq/v1"))
	h.Write(adaptorPoint.SerializeCompressed())
	h.Write(r.SerializeCompressed())
	h.Write(rPrime.SerializeCompressed())
	h.Write(commitG.SerializeCompressed())
	h.Write(commitT.SerializeCompressed())

	var e secp.ModNScalar
	e.SetByteSlice(h.Sum(nil))
	return e
}

// noncePoints returns (k*G, k*T) in Jacobian form.
func noncePoints(k *secp.ModNScalar, adaptorPoint *btcec.PublicKey) (r, rPrime secp.JacobianPoint) {
	secp.ScalarBaseMultNonConst(k, &r)
	r.ToAffine()

	var tJ secp.JacobianPoint
	adaptorPoint.AsJacobian(&tJ)
	secp.ScalarMultNonConst(k, &tJ, &rPrime)
	rPrime.ToAffine()
	return r, rPrime
}

// randScalar draws a uniformly random non-zero scalar mod the group order.
func randScalar() (*secp.ModNScalar, error) {
	for {
		var buf [32]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		var s secp.ModNScalar
		overflow := s.SetBytes(&buf)
		if overflow == 0 && !s.IsZero() {
			return &s, nil
		}
	}
}

// scalarFromHash reduces a 32-byte message digest modulo the group order,
// the same reduction a standard ECDSA signature applies to its message.
func scalarFromHash(msgHash [32]byte) secp.ModNScalar {
	var m secp.ModNScalar
	m.SetByteSlice(msgHash[:])
	return m
}

// xFieldToScalar reduces a field element (a point's X coordinate) modulo
// the group order, as ECDSA's r component does.
func xFieldToScalar(x *secp.FieldVal) secp.ModNScalar {
	b := x.Bytes()
	var s secp.ModNScalar
	s.SetBytes(b)
	return s
}

// pubKeyXField returns the X coordinate of pk as a *secp.FieldVal.
func pubKeyXField(pk *btcec.PublicKey) *secp.FieldVal {
	var j secp.JacobianPoint
	pk.AsJacobian(&j)
	return &j.X
}

// jacobianToPubKey converts an affine-reduced Jacobian point to a
// *btcec.PublicKey. The point must already have Z == 1 (ToAffine called).
func jacobianToPubKey(p secp.JacobianPoint) *btcec.PublicKey {
	return secp.NewPublicKey(&p.X, &p.Y)
}
