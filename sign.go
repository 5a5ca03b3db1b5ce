package cfddlc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/AtomicFinance/cfd-dlc/adaptor"
	"github.com/AtomicFinance/cfd-dlc/internal/dlcscript"
)

// AdaptorPointForOutcome computes the adaptor point T for an outcome with
// one or more oracle message hashes and nonces. With a single nonce it is
// the plain Schnorr sig-point; with more than one it is the sum of each
// nonce's sig-point (a multi-nonce, i.e. numeric, oracle attestation).
func AdaptorPointForOutcome(msgHashes [][32]byte, oracleNonces []*btcec.PublicKey, oraclePubKey *btcec.PublicKey) (*btcec.PublicKey, error) {
	if len(msgHashes) == 0 {
		return nil, illegalArgumentf("at least one message hash is required")
	}
	if len(oracleNonces) < len(msgHashes) {
		return nil, illegalArgumentf("%d oracle nonces is fewer than %d message hashes", len(oracleNonces), len(msgHashes))
	}
	nonces := oracleNonces[:len(msgHashes)]

	if len(msgHashes) == 1 {
		point, err := adaptor.ComputeSigPoint(msgHashes[0], nonces[0], oraclePubKey)
		if err != nil {
			return nil, cryptoErrorf(err, "failed to compute adaptor point")
		}
		return point, nil
	}

	point, err := adaptor.ComputeSigPointBatch(msgHashes, nonces, oraclePubKey)
	if err != nil {
		return nil, cryptoErrorf(err, "failed to compute adaptor point")
	}
	return point, nil
}

// sigHash computes the segwit-v0 sighash digest of one input of tx against
// the given scriptCode and amount.
func sigHash(tx *wire.MsgTx, inputIndex int, scriptCode []byte, amount Amount) ([32]byte, error) {
	hashCache := txscript.NewTxSigHashes(tx, txscript.NewCannedPrevOutputFetcher(scriptCode, int64(amount)))
	h, err := txscript.CalcWitnessSigHash(scriptCode, hashCache, txscript.SigHashAll, tx, inputIndex, int64(amount))
	if err != nil {
		return [32]byte{}, cryptoErrorf(err, "failed to compute segwit sighash")
	}
	var out [32]byte
	copy(out[:], h)
	return out, nil
}

// CreateCetAdaptorSignature produces an encrypted adaptor signature over a
// CET's sole input, using the signer's funding secret key and the outcome's
// adaptor point.
func CreateCetAdaptorSignature(cet *wire.MsgTx, fundAmount Amount, redeemScript []byte, sk *btcec.PrivateKey, adaptorPoint *btcec.PublicKey) (*AdaptorPair, error) {
	h, err := sigHash(cet, 0, redeemScript, fundAmount)
	if err != nil {
		return nil, err
	}

	sig, proof, err := adaptor.Sign(h, sk, adaptorPoint)
	if err != nil {
		return nil, cryptoErrorf(err, "failed to create adaptor signature")
	}

	sigBytes, err := sig.Encode()
	if err != nil {
		return nil, cryptoErrorf(err, "failed to encode adaptor signature")
	}
	proofBytes, err := proof.Encode()
	if err != nil {
		return nil, cryptoErrorf(err, "failed to encode adaptor proof")
	}
	return &AdaptorPair{Signature: sigBytes, Proof: proofBytes}, nil
}

// VerifyCetAdaptorSignature checks a CET adaptor signature against the
// signer's funding pubkey and the outcome's adaptor point.
func VerifyCetAdaptorSignature(cet *wire.MsgTx, fundAmount Amount, redeemScript []byte, pubKey *btcec.PublicKey, adaptorPoint *btcec.PublicKey, pair *AdaptorPair) error {
	h, err := sigHash(cet, 0, redeemScript, fundAmount)
	if err != nil {
		return err
	}

	sig, err := adaptor.DecodeSignature(pair.Signature)
	if err != nil {
		return cryptoErrorf(err, "failed to decode adaptor signature")
	}
	proof, err := adaptor.DecodeProof(pair.Proof)
	if err != nil {
		return cryptoErrorf(err, "failed to decode adaptor proof")
	}

	if err := adaptor.Verify(sig, proof, pubKey, adaptorPoint, h); err != nil {
		return cryptoErrorf(err, "adaptor signature failed verification")
	}
	return nil
}

// CreateBatchCetAdaptorSignatures creates one adaptor signature per CET in a
// single outcome family, requiring every outcome to carry no more message
// hashes than there are oracle nonces.
func CreateBatchCetAdaptorSignatures(cets []*wire.MsgTx, fundAmount Amount, redeemScript []byte, sk *btcec.PrivateKey,
	msgHashesPerOutcome [][][32]byte, oracleNonces []*btcec.PublicKey, oraclePubKey *btcec.PublicKey) ([]*AdaptorPair, error) {

	if len(cets) != len(msgHashesPerOutcome) {
		return nil, illegalArgumentf("%d cets but %d outcome message-hash vectors", len(cets), len(msgHashesPerOutcome))
	}

	pairs := make([]*AdaptorPair, len(cets))
	for i, cet := range cets {
		if len(msgHashesPerOutcome[i]) > len(oracleNonces) {
			return nil, illegalArgumentf("outcome %d needs %d oracle nonces but only %d are available", i, len(msgHashesPerOutcome[i]), len(oracleNonces))
		}
		point, err := AdaptorPointForOutcome(msgHashesPerOutcome[i], oracleNonces, oraclePubKey)
		if err != nil {
			return nil, err
		}
		pair, err := CreateCetAdaptorSignature(cet, fundAmount, redeemScript, sk, point)
		if err != nil {
			return nil, err
		}
		pairs[i] = pair
	}
	return pairs, nil
}

// SignCet adapts the counterparty's adaptor signature using the oracle's
// revealed signature scalars, produces our own ordinary ECDSA signature,
// and assembles the 2-of-2 witness in script order.
func SignCet(cet *wire.MsgTx, fundAmount Amount, redeemScript []byte,
	ownSK *btcec.PrivateKey, ownPubKey *btcec.PublicKey, counterpartyPubKey *btcec.PublicKey,
	counterpartyAdaptorSig *AdaptorPair, oracleScalars []*secp.ModNScalar) error {

	h, err := sigHash(cet, 0, redeemScript, fundAmount)
	if err != nil {
		return err
	}

	s, err := adaptor.AggregateScalars(oracleScalars)
	if err != nil {
		return cryptoErrorf(err, "failed to aggregate oracle signature scalars")
	}

	sig, err := adaptor.DecodeSignature(counterpartyAdaptorSig.Signature)
	if err != nil {
		return cryptoErrorf(err, "failed to decode counterparty adaptor signature")
	}

	adaptedSig, err := adaptor.Adapt(sig, s)
	if err != nil {
		return cryptoErrorf(err, "failed to adapt counterparty signature")
	}
	adaptedDER := append(adaptedSig.Serialize(), byte(txscript.SigHashAll))

	ownDER := adaptor.EcSign(h, ownSK, byte(txscript.SigHashAll))

	witness, err := assembleMultiSigWitness(redeemScript, ownPubKey, ownDER, counterpartyPubKey, adaptedDER)
	if err != nil {
		return err
	}
	cet.TxIn[0].Witness = witness
	return nil
}

// VerifyCetSignature checks a fully-assembled CET's witness by recomputing
// both signatures' sighash and verifying each against its claimed pubkey.
func VerifyCetSignature(cet *wire.MsgTx, fundAmount Amount, redeemScript []byte, pubKeyA, pubKeyB *btcec.PublicKey) error {
	h, err := sigHash(cet, 0, redeemScript, fundAmount)
	if err != nil {
		return err
	}
	witness := cet.TxIn[0].Witness
	if len(witness) != 4 {
		return illegalArgumentf("expected a 4-element multisig witness, got %d", len(witness))
	}
	return verifyMultiSigWitness(witness, h, pubKeyA, pubKeyB)
}

// SignRefundTransaction produces this party's ordinary ECDSA signature over
// the refund transaction's sole input.
func SignRefundTransaction(refundTx *wire.MsgTx, fundAmount Amount, redeemScript []byte, sk *btcec.PrivateKey) ([]byte, error) {
	h, err := sigHash(refundTx, 0, redeemScript, fundAmount)
	if err != nil {
		return nil, err
	}
	return adaptor.EcSign(h, sk, byte(txscript.SigHashAll)), nil
}

// VerifyRefundSignature checks one party's raw refund signature.
func VerifyRefundSignature(refundTx *wire.MsgTx, fundAmount Amount, redeemScript []byte, sig []byte, pubKey *btcec.PublicKey) error {
	h, err := sigHash(refundTx, 0, redeemScript, fundAmount)
	if err != nil {
		return err
	}
	ok, err := adaptor.EcVerify(sig, pubKey, h)
	if err != nil {
		return cryptoErrorf(err, "failed to verify refund signature")
	}
	if !ok {
		return cryptoErrorf(nil, "refund signature does not verify")
	}
	return nil
}

// AssembleRefundWitness attaches both parties' refund signatures to the
// refund transaction's sole input, in script order.
func AssembleRefundWitness(refundTx *wire.MsgTx, redeemScript []byte, pubKeyA *btcec.PublicKey, sigA []byte, pubKeyB *btcec.PublicKey, sigB []byte) error {
	witness, err := assembleMultiSigWitness(redeemScript, pubKeyA, sigA, pubKeyB, sigB)
	if err != nil {
		return err
	}
	refundTx.TxIn[0].Witness = witness
	return nil
}

// SignFundingInput signs one P2WPKH funding input, producing the standard
// two-element witness [signature, pubkey].
func SignFundingInput(tx *wire.MsgTx, inputIndex int, sk *btcec.PrivateKey, pkScript []byte, amount Amount) error {
	hashCache := txscript.NewTxSigHashes(tx, txscript.NewCannedPrevOutputFetcher(pkScript, int64(amount)))
	witness, err := txscript.WitnessSignature(tx, hashCache, inputIndex, int64(amount), pkScript, txscript.SigHashAll, sk, true)
	if err != nil {
		return cryptoErrorf(err, "failed to sign funding input %d", inputIndex)
	}
	tx.TxIn[inputIndex].Witness = witness
	return nil
}

// assembleMultiSigWitness builds the witness stack for a 2-of-2 P2WSH
// multisig spend: a leading empty element satisfying CHECKMULTISIG's
// off-by-one pop, the two signatures in script order, and the redeem
// script.
func assembleMultiSigWitness(redeemScript []byte, pubKeyA *btcec.PublicKey, sigA []byte, pubKeyB *btcec.PublicKey, sigB []byte) (wire.TxWitness, error) {
	stack, err := dlcscript.SpendMultiSig(redeemScript, pubKeyA.SerializeCompressed(), sigA, pubKeyB.SerializeCompressed(), sigB)
	if err != nil {
		return nil, illegalArgumentf("%v", err)
	}
	witness := make(wire.TxWitness, len(stack))
	for i, item := range stack {
		witness[i] = item
	}
	witness[0] = []byte{}
	return witness, nil
}

// verifyMultiSigWitness checks that a 4-element multisig witness carries
// valid signatures for both pubkeys, in either script order.
func verifyMultiSigWitness(witness wire.TxWitness, h [32]byte, pubKeyA, pubKeyB *btcec.PublicKey) error {
	redeemScript := witness[3]
	pubkeys, err := dlcscript.ExtractPubkeys(redeemScript)
	if err != nil {
		return cryptoErrorf(err, "failed to extract pubkeys from redeem script")
	}

	byBytes := map[string]*btcec.PublicKey{
		string(pubKeyA.SerializeCompressed()): pubKeyA,
		string(pubKeyB.SerializeCompressed()): pubKeyB,
	}

	for i, sig := range [][]byte{witness[1], witness[2]} {
		pk, ok := byBytes[string(pubkeys[i])]
		if !ok {
			return illegalArgumentf("witness pubkey at position %d does not match either party", i)
		}
		ok, err := adaptor.EcVerify(sig, pk, h)
		if err != nil {
			return cryptoErrorf(err, "failed to verify multisig witness signature %d", i)
		}
		if !ok {
			return cryptoErrorf(nil, "multisig witness signature %d does not verify", i)
		}
	}
	return nil
}
