package cfddlc

import (
	"sort"

	"github.com/btcsuite/btcd/wire"
)

// sortOutputsBySerialID returns outputs ordered by ascending SerialID using a
// stable sort, so that equal (e.g. all-zero) serial IDs preserve the caller's
// insertion order.
func sortOutputsBySerialID(outputs []TxOutputInfo) []TxOutputInfo {
	sorted := make([]TxOutputInfo, len(outputs))
	copy(sorted, outputs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SerialID < sorted[j].SerialID
	})
	return sorted
}

// sortInputsBySerialID returns inputs ordered by ascending SerialID using a
// stable sort.
func sortInputsBySerialID(inputs []TxInputInfo) []TxInputInfo {
	sorted := make([]TxInputInfo, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SerialID < sorted[j].SerialID
	})
	return sorted
}

// inputToTxIn converts a TxInputInfo into the unsigned wire.TxIn form: a
// segwit input carries no scriptSig (it is supplied later as a witness), but
// a caller-declared RedeemScript is still honored.
func inputToTxIn(in TxInputInfo) *wire.TxIn {
	txIn := wire.NewTxIn(&in.OutPoint, in.RedeemScript, nil)
	txIn.Sequence = in.Sequence
	return txIn
}

// resolveFundingVout returns the position the funding output ends up at
// after the candidate output set {fundOutputSerialID, local change serial
// ID, remote change serial ID} is sorted by ascending serial ID.
func resolveFundingVout(fundOutputSerialID, localChangeSerialID, remoteChangeSerialID uint64) int {
	ids := []uint64{fundOutputSerialID, localChangeSerialID, remoteChangeSerialID}
	return rankOf(ids, 0)
}

// resolveBatchFundingVouts resolves the output index of every funding output
// in a batch funding transaction. If fundOutputSerialIDs is empty it returns
// nil; CreateBatchFundTransaction then places the funding outputs at
// positions 0..N-1, ahead of the two change outputs.
func resolveBatchFundingVouts(fundOutputSerialIDs []uint64, localChangeSerialID, remoteChangeSerialID uint64) []int {
	n := len(fundOutputSerialIDs)
	if n == 0 {
		return nil
	}

	ids := make([]uint64, 0, n+2)
	ids = append(ids, fundOutputSerialIDs...)
	ids = append(ids, localChangeSerialID, remoteChangeSerialID)

	vouts := make([]int, n)
	for i := 0; i < n; i++ {
		vouts[i] = rankOf(ids, i)
	}
	return vouts
}

// rankOf returns the position element ids[idx] ends up at once ids is sorted
// stably by ascending value, i.e. the number of elements that sort strictly
// before it plus the number of equal elements that precede it in the
// original slice.
func rankOf(ids []uint64, idx int) int {
	target := ids[idx]
	rank := 0
	for i, v := range ids {
		if v < target || (v == target && i < idx) {
			rank++
		}
	}
	return rank
}
