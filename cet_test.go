package cfddlc

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/AtomicFinance/cfd-dlc/internal/txrules"
)

func TestCreateCetPaysBothPartiesInSerialOrder(t *testing.T) {
	t.Parallel()

	_, localPK := randKeyPair(t)
	_, remotePK := randKeyPair(t)
	localScript := p2wpkhScript(t, localPK)
	remoteScript := p2wpkhScript(t, remotePK)

	var fundTxID chainhash.Hash
	fundTxID[0] = 0xAB

	cet := CreateCet(localScript, 6_000_000_000, remoteScript, 4_000_000_000, fundTxID, 0, 0, 20, 10)

	require.Len(t, cet.TxOut, 2)
	// remote serial id (10) sorts before local (20).
	require.Equal(t, int64(4_000_000_000), cet.TxOut[0].Value, "expected remote payout first")
	require.Equal(t, int64(6_000_000_000), cet.TxOut[1].Value, "expected local payout second")
}

func TestCreateCetDropsDustOutputs(t *testing.T) {
	t.Parallel()

	_, localPK := randKeyPair(t)
	_, remotePK := randKeyPair(t)
	localScript := p2wpkhScript(t, localPK)
	remoteScript := p2wpkhScript(t, remotePK)

	var fundTxID chainhash.Hash

	cet := CreateCet(localScript, 10_000_000_000, remoteScript, Amount(txrules.DustLimit-1), fundTxID, 0, 0, 1, 2)

	require.Len(t, cet.TxOut, 1, "expected the dust remote output to be dropped")
	require.Equal(t, int64(10_000_000_000), cet.TxOut[0].Value, "expected the surviving output to be the local payout")
}

func TestCreateCetsReusesSerialIDsAcrossOutcomes(t *testing.T) {
	t.Parallel()

	_, localPK := randKeyPair(t)
	_, remotePK := randKeyPair(t)
	localScript := p2wpkhScript(t, localPK)
	remoteScript := p2wpkhScript(t, remotePK)

	var fundTxID chainhash.Hash
	outcomes := []DlcOutcome{
		{LocalPayout: 10_000_000_000, RemotePayout: 0},
		{LocalPayout: 0, RemotePayout: 10_000_000_000},
	}

	cets := CreateCets(outcomes, localScript, remoteScript, fundTxID, 0, 0, 1, 2)
	require.Len(t, cets, 2)
	// Both cets keep only the non-dust output (since the other side's
	// payout is exactly zero, well below the dust limit).
	require.Len(t, cets[0].TxOut, 1)
	require.Equal(t, int64(10_000_000_000), cets[0].TxOut[0].Value)
	require.Len(t, cets[1].TxOut, 1)
	require.Equal(t, int64(10_000_000_000), cets[1].TxOut[0].Value)
}

func TestCreateBatchCetsRejectsMismatchedSliceLengths(t *testing.T) {
	t.Parallel()

	_, localPK := randKeyPair(t)
	localScript := p2wpkhScript(t, localPK)
	var fundTxID chainhash.Hash

	_, err := CreateBatchCets([][]DlcOutcome{{{LocalPayout: 1, RemotePayout: 0}}},
		[][]byte{localScript, localScript}, [][]byte{localScript},
		fundTxID, []uint32{0}, 0, []uint64{1}, []uint64{2})
	require.Error(t, err)
}
