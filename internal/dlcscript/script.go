// Package dlcscript builds and inspects the 2-of-2 multisig witness script
// that secures a DLC's funding output, and assembles the witness stack that
// spends it. It is split out of the top-level package the way the teacher
// keeps script helpers (input.GenMultiSigScript, input.SpendMultiSig)
// separate from the wallet code that calls them.
package dlcscript

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// MultiSig builds the non-P2SH 2-of-2 multisig redeem script for the two
// fund pubkeys, lexicographically sorted by their compressed serialization:
// OP_2 <pk0> <pk1> OP_2 OP_CHECKMULTISIG.
func MultiSig(pubKeyA, pubKeyB *btcec.PublicKey) ([]byte, error) {
	a := pubKeyA.SerializeCompressed()
	b := pubKeyB.SerializeCompressed()
	if len(a) != 33 || len(b) != 33 {
		return nil, fmt.Errorf("dlcscript: compressed pubkeys only")
	}

	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_2)
	builder.AddData(a)
	builder.AddData(b)
	builder.AddOp(txscript.OP_2)
	builder.AddOp(txscript.OP_CHECKMULTISIG)
	return builder.Script()
}

// WitnessScriptHash wraps a witness script as a version-0 P2WSH output
// script: OP_0 <sha256(witnessScript)>.
func WitnessScriptHash(witnessScript []byte) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_0)
	scriptHash := sha256.Sum256(witnessScript)
	builder.AddData(scriptHash[:])
	return builder.Script()
}

// FundingPkScript builds the funding output's redeem script and its
// matching P2WSH locking script for the given amount.
func FundingPkScript(pubKeyA, pubKeyB *btcec.PublicKey, amount int64) ([]byte, *wire.TxOut, error) {
	if amount <= 0 {
		return nil, nil, fmt.Errorf("dlcscript: funding output amount must be positive")
	}

	redeemScript, err := MultiSig(pubKeyA, pubKeyB)
	if err != nil {
		return nil, nil, err
	}

	pkScript, err := WitnessScriptHash(redeemScript)
	if err != nil {
		return nil, nil, err
	}

	return redeemScript, wire.NewTxOut(amount, pkScript), nil
}

// ExtractPubkeys recovers the two compressed pubkeys pushed by MultiSig, in
// the order they were pushed (i.e. already sorted ascending by hex).
func ExtractPubkeys(redeemScript []byte) ([][]byte, error) {
	tokens, err := txscript.PushedData(redeemScript)
	if err != nil {
		return nil, err
	}
	if len(tokens) != 2 {
		return nil, fmt.Errorf("dlcscript: expected 2 pushed pubkeys, got %d", len(tokens))
	}
	return tokens, nil
}

// SpendMultiSig assembles the witness stack redeeming a 2-of-2 P2WSH
// multisig output: a leading empty element (satisfying OP_CHECKMULTISIG's
// off-by-one pop), the two signatures in script order, and the redeem
// script. pubKeyA and pubKeyB identify which script position sigA and sigB
// belong to, so the caller may pass the two (pubkey, signature) pairs in
// either order.
func SpendMultiSig(redeemScript []byte, pubKeyA []byte, sigA []byte, pubKeyB []byte, sigB []byte) ([][]byte, error) {
	pubkeys, err := ExtractPubkeys(redeemScript)
	if err != nil {
		return nil, err
	}

	first, second := sigA, sigB
	switch {
	case bytes.Equal(pubkeys[0], pubKeyA) && bytes.Equal(pubkeys[1], pubKeyB):
		first, second = sigA, sigB
	case bytes.Equal(pubkeys[0], pubKeyB) && bytes.Equal(pubkeys[1], pubKeyA):
		first, second = sigB, sigA
	default:
		return nil, fmt.Errorf("dlcscript: pubkeys do not match the multisig redeem script")
	}

	return [][]byte{
		nil,
		first,
		second,
		redeemScript,
	}, nil
}
