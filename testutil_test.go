package cfddlc

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// randKeyPair returns a fresh secp256k1 keypair for test fixtures.
func randKeyPair(t *testing.T) (*btcec.PrivateKey, *btcec.PublicKey) {
	t.Helper()
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate private key: %v", err)
	}
	return sk, sk.PubKey()
}

// p2wpkhScript builds a 22-byte version-0 P2WPKH locking script for pk.
func p2wpkhScript(t *testing.T, pk *btcec.PublicKey) []byte {
	t.Helper()
	hash := btcutil.Hash160(pk.SerializeCompressed())
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(hash).
		Script()
	if err != nil {
		t.Fatalf("build p2wpkh script: %v", err)
	}
	return script
}

// testFundingInput builds a single spendable P2WPKH input with a fixed,
// deterministic outpoint derived from the given seed byte so successive
// calls produce distinct inputs.
func testFundingInput(seed byte, serialID uint64) TxInputInfo {
	var hash chainhash.Hash
	hash[0] = seed
	return TxInputInfo{
		OutPoint:         wire.OutPoint{Hash: hash, Index: 0},
		MaxWitnessLength: 107,
		SerialID:         serialID,
	}
}
