package cfddlc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/AtomicFinance/cfd-dlc/internal/txrules"
)

// CreateCet builds one unsigned Contract Execution Transaction spending the
// funding output, paying each party's outcome-specific payout. Dust outputs
// are silently dropped; both may be dropped, leaving a CET with no outputs
// of its own collateral split.
func CreateCet(localScript []byte, localAmount Amount, remoteScript []byte, remoteAmount Amount,
	fundTxID chainhash.Hash, fundVout uint32, locktime uint32, localSerialID, remoteSerialID uint64) *wire.MsgTx {

	outputs := []TxOutputInfo{
		{PkScript: localScript, Value: localAmount, SerialID: localSerialID},
		{PkScript: remoteScript, Value: remoteAmount, SerialID: remoteSerialID},
	}
	sorted := sortOutputsBySerialID(outputs)

	tx := wire.NewMsgTx(TxVersion)
	txIn := wire.NewTxIn(wire.NewOutPoint(&fundTxID, fundVout), nil, nil)
	txIn.Sequence = wire.MaxTxInSequenceNum - 1
	tx.AddTxIn(txIn)

	for _, out := range sorted {
		if txrules.IsDust(out.Value) {
			continue
		}
		tx.AddTxOut(out.txOut())
	}
	tx.LockTime = locktime
	return tx
}

// CreateCets maps CreateCet over a vector of oracle outcomes, reusing the
// same serial IDs across the whole family so every CET shares the same
// output ordering.
func CreateCets(outcomes []DlcOutcome, localScript, remoteScript []byte,
	fundTxID chainhash.Hash, fundVout uint32, locktime uint32, localSerialID, remoteSerialID uint64) []*wire.MsgTx {

	cets := make([]*wire.MsgTx, len(outcomes))
	for i, outcome := range outcomes {
		cets[i] = CreateCet(localScript, outcome.LocalPayout, remoteScript, outcome.RemotePayout,
			fundTxID, fundVout, locktime, localSerialID, remoteSerialID)
	}
	return cets
}

// CreateBatchCets builds the CET family for every contract in a batch DLC,
// one outcome vector per contract and one pair of payout serial IDs per
// contract, each spending its own funding vout.
func CreateBatchCets(outcomesPerContract [][]DlcOutcome, localScripts, remoteScripts [][]byte,
	fundTxID chainhash.Hash, fundVouts []uint32, locktime uint32, localSerialIDs, remoteSerialIDs []uint64) ([][]*wire.MsgTx, error) {

	n := len(outcomesPerContract)
	if len(localScripts) != n || len(remoteScripts) != n || len(fundVouts) != n ||
		len(localSerialIDs) != n || len(remoteSerialIDs) != n {
		return nil, illegalArgumentf("batch CET construction requires matching per-contract slice lengths, got %d outcome vectors", n)
	}

	cets := make([][]*wire.MsgTx, n)
	for i := 0; i < n; i++ {
		cets[i] = CreateCets(outcomesPerContract[i], localScripts[i], remoteScripts[i],
			fundTxID, fundVouts[i], locktime, localSerialIDs[i], remoteSerialIDs[i])
	}
	return cets, nil
}
