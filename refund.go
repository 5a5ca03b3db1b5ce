package cfddlc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// CreateRefundTransaction builds the unsigned refund transaction: one input
// spending the funding output, and local/remote payouts of their original
// collateral in fixed (not serial-sorted) order.
func CreateRefundTransaction(localScript []byte, localAmount Amount, remoteScript []byte, remoteAmount Amount,
	fundTxID chainhash.Hash, fundVout uint32, locktime uint32) *wire.MsgTx {

	tx := wire.NewMsgTx(TxVersion)

	txIn := wire.NewTxIn(wire.NewOutPoint(&fundTxID, fundVout), nil, nil)
	txIn.Sequence = wire.MaxTxInSequenceNum - 1
	tx.AddTxIn(txIn)

	tx.AddTxOut(wire.NewTxOut(int64(localAmount), localScript))
	tx.AddTxOut(wire.NewTxOut(int64(remoteAmount), remoteScript))

	tx.LockTime = locktime
	return tx
}

// CreateBatchRefundTransactions builds one refund transaction per contract
// in a batch DLC, each paying out to that contract's own pair of final
// scripts and spending its own funding vout.
func CreateBatchRefundTransactions(localScripts [][]byte, localAmounts []Amount, remoteScripts [][]byte, remoteAmounts []Amount,
	fundTxID chainhash.Hash, fundVouts []uint32, locktime uint32) ([]*wire.MsgTx, error) {

	n := len(localAmounts)
	if len(remoteAmounts) != n || len(fundVouts) != n || len(localScripts) != n || len(remoteScripts) != n {
		return nil, illegalArgumentf("batch refund construction requires matching per-contract slice lengths, got %d", n)
	}

	refunds := make([]*wire.MsgTx, n)
	for i := 0; i < n; i++ {
		refunds[i] = CreateRefundTransaction(localScripts[i], localAmounts[i], remoteScripts[i], remoteAmounts[i],
			fundTxID, fundVouts[i], locktime)
	}
	return refunds, nil
}
