package cfddlc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"

	"github.com/AtomicFinance/cfd-dlc/internal/dlcscript"
)

// fundingOutput builds the deterministic funding redeem script and its
// P2WSH locking script for a pair of fund pubkeys.
func fundingOutput(localPubKey, remotePubKey *btcec.PublicKey, amount Amount) (redeemScript []byte, txOut *wire.TxOut, err error) {
	redeemScript, txOut, err = dlcscript.FundingPkScript(localPubKey, remotePubKey, int64(amount))
	if err != nil {
		return nil, nil, cryptoErrorf(err, "failed to build funding output script")
	}
	return redeemScript, txOut, nil
}

// ExtractFundingPubkeys recovers the two compressed pubkeys committed to by
// a funding redeem script, in ascending-hex order.
func ExtractFundingPubkeys(redeemScript []byte) ([][]byte, error) {
	pubkeys, err := dlcscript.ExtractPubkeys(redeemScript)
	if err != nil {
		return nil, cryptoErrorf(err, "failed to extract pubkeys from multisig redeem script")
	}
	return pubkeys, nil
}
