package cfddlc

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/AtomicFinance/cfd-dlc/adaptor"
)

// oracleAttestation is a minimal single-nonce oracle fixture: a keypair
// standing in for the oracle's long-term key, a nonce keypair, and the
// scalar the oracle would reveal on attesting to a given message.
type oracleAttestation struct {
	pubKey *btcec.PublicKey
	nonce  *btcec.PublicKey
	scalar *secp.ModNScalar
}

func newOracleAttestation(t *testing.T, msg [32]byte) oracleAttestation {
	t.Helper()
	oracleSK, oraclePK := randKeyPair(t)
	nonceSK, noncePK := randKeyPair(t)

	point, err := adaptor.ComputeSigPoint(msg, noncePK, oraclePK)
	require.NoError(t, err)

	e := sigPointChallengeForTest(noncePK, oraclePK, msg)
	var s secp.ModNScalar
	s.Set(&e)
	s.Mul(&oracleSK.Key)
	s.Add(&nonceSK.Key)

	// Sanity-check the fixture: s*G must equal the nonce point plus the
	// challenge-scaled oracle point, i.e. exactly the adaptor point.
	var sG secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&s, &sG)
	sG.ToAffine()
	got := secp.NewPublicKey(&sG.X, &sG.Y)
	require.True(t, got.IsEqual(point), "oracle fixture's scalar does not match its own sig-point")

	return oracleAttestation{pubKey: oraclePK, nonce: noncePK, scalar: &s}
}

// sigPointChallengeForTest recomputes ComputeSigPoint's internal Fiat-Shamir
// challenge so the fixture above can construct a scalar whose base point
// equals the real sig-point, without ComputeSigPoint itself exposing e.
func sigPointChallengeForTest(nonce, oraclePubKey *btcec.PublicKey, msgHash [32]byte) secp.ModNScalar {
	h := sha256.New()
	h.Write(nonce.SerializeCompressed())
	h.Write(oraclePubKey.SerializeCompressed())
	h.Write(msgHash[:])
	digest := h.Sum(nil)

	var e secp.ModNScalar
	e.SetByteSlice(digest)
	return e
}

func TestCetAdaptorSignatureCreateVerifyAdaptRoundTrip(t *testing.T) {
	t.Parallel()

	localSK, localPK := randKeyPair(t)
	remoteSK, remotePK := randKeyPair(t)
	_, redeemScript, fundOut := testFundingOutput(t, localPK, remotePK, 10_000_000_000)

	var fundTxID chainhash.Hash
	fundTxID[0] = 0x01
	cet := CreateCet(p2wpkhScript(t, localPK), 6_000_000_000, p2wpkhScript(t, remotePK), 4_000_000_000, fundTxID, 0, 0, 1, 2)

	outcomeMsg := sha256.Sum256([]byte("outcome: local wins"))
	attestation := newOracleAttestation(t, outcomeMsg)
	adaptorPoint, err := AdaptorPointForOutcome([][32]byte{outcomeMsg}, []*btcec.PublicKey{attestation.nonce}, attestation.pubKey)
	require.NoError(t, err)

	pair, err := CreateCetAdaptorSignature(cet, Amount(fundOut.Value), redeemScript, remoteSK, adaptorPoint)
	require.NoError(t, err)

	require.NoError(t, VerifyCetAdaptorSignature(cet, Amount(fundOut.Value), redeemScript, remotePK, adaptorPoint, pair))

	err = SignCet(cet, Amount(fundOut.Value), redeemScript, localSK, localPK, remotePK, pair, []*secp.ModNScalar{attestation.scalar})
	require.NoError(t, err)

	require.NoError(t, VerifyCetSignature(cet, Amount(fundOut.Value), redeemScript, localPK, remotePK))
}

func TestVerifyCetAdaptorSignatureRejectsWrongOutcome(t *testing.T) {
	t.Parallel()

	_, localPK := randKeyPair(t)
	remoteSK, remotePK := randKeyPair(t)
	_, redeemScript, fundOut := testFundingOutput(t, localPK, remotePK, 10_000_000_000)

	var fundTxID chainhash.Hash
	cet := CreateCet(p2wpkhScript(t, localPK), 6_000_000_000, p2wpkhScript(t, remotePK), 4_000_000_000, fundTxID, 0, 0, 1, 2)

	msgA := sha256.Sum256([]byte("outcome A"))
	msgB := sha256.Sum256([]byte("outcome B"))
	attestationA := newOracleAttestation(t, msgA)
	adaptorPointA, err := AdaptorPointForOutcome([][32]byte{msgA}, []*btcec.PublicKey{attestationA.nonce}, attestationA.pubKey)
	require.NoError(t, err)
	adaptorPointB, err := AdaptorPointForOutcome([][32]byte{msgB}, []*btcec.PublicKey{attestationA.nonce}, attestationA.pubKey)
	require.NoError(t, err)

	pair, err := CreateCetAdaptorSignature(cet, Amount(fundOut.Value), redeemScript, remoteSK, adaptorPointA)
	require.NoError(t, err)

	err = VerifyCetAdaptorSignature(cet, Amount(fundOut.Value), redeemScript, remotePK, adaptorPointB, pair)
	require.Error(t, err, "expected verification to fail against the wrong outcome's adaptor point")
}

func TestRefundSignVerifyAssemble(t *testing.T) {
	t.Parallel()

	localSK, localPK := randKeyPair(t)
	remoteSK, remotePK := randKeyPair(t)
	_, redeemScript, fundOut := testFundingOutput(t, localPK, remotePK, 10_000_000_000)

	var fundTxID chainhash.Hash
	refund := CreateRefundTransaction(p2wpkhScript(t, localPK), 6_000_000_000, p2wpkhScript(t, remotePK), 4_000_000_000, fundTxID, 0, 100)

	localSig, err := SignRefundTransaction(refund, Amount(fundOut.Value), redeemScript, localSK)
	require.NoError(t, err)
	remoteSig, err := SignRefundTransaction(refund, Amount(fundOut.Value), redeemScript, remoteSK)
	require.NoError(t, err)

	require.NoError(t, VerifyRefundSignature(refund, Amount(fundOut.Value), redeemScript, localSig, localPK))
	require.NoError(t, VerifyRefundSignature(refund, Amount(fundOut.Value), redeemScript, remoteSig, remotePK))

	require.NoError(t, AssembleRefundWitness(refund, redeemScript, localPK, localSig, remotePK, remoteSig))
	require.Len(t, refund.TxIn[0].Witness, 4)
}

// testFundingOutput builds a 2-of-2 funding output for two pubkeys and
// returns its redeem script alongside the resulting wire.TxOut.
func testFundingOutput(t *testing.T, localPK, remotePK *btcec.PublicKey, amount Amount) ([]byte, []byte, *wire.TxOut) {
	t.Helper()
	redeemScript, txOut, err := fundingOutput(localPK, remotePK, amount)
	require.NoError(t, err)
	return nil, redeemScript, txOut
}
