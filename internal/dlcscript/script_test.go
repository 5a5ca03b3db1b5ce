package dlcscript

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

func randPubKey(t *testing.T) *btcec.PublicKey {
	t.Helper()
	sk, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return sk.PubKey()
}

func TestMultiSigSortsPubKeysAscending(t *testing.T) {
	t.Parallel()

	a := randPubKey(t)
	b := randPubKey(t)

	scriptAB, err := MultiSig(a, b)
	require.NoError(t, err)
	scriptBA, err := MultiSig(b, a)
	require.NoError(t, err)

	require.Equal(t, scriptAB, scriptBA, "redeem script must not depend on argument order")
}

func TestExtractPubkeysRoundTrips(t *testing.T) {
	t.Parallel()

	a := randPubKey(t)
	b := randPubKey(t)

	redeemScript, err := MultiSig(a, b)
	require.NoError(t, err)

	pubkeys, err := ExtractPubkeys(redeemScript)
	require.NoError(t, err)
	require.Len(t, pubkeys, 2)

	sorted := [][]byte{a.SerializeCompressed(), b.SerializeCompressed()}
	if bytes.Compare(sorted[0], sorted[1]) > 0 {
		sorted[0], sorted[1] = sorted[1], sorted[0]
	}
	require.Equal(t, sorted[0], pubkeys[0])
	require.Equal(t, sorted[1], pubkeys[1])
}

func TestFundingPkScriptRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	a := randPubKey(t)
	b := randPubKey(t)

	_, _, err := FundingPkScript(a, b, 0)
	require.Error(t, err)
}

func TestFundingPkScriptProducesP2WSH(t *testing.T) {
	t.Parallel()

	a := randPubKey(t)
	b := randPubKey(t)

	redeemScript, txOut, err := FundingPkScript(a, b, 10_000_000_000)
	require.NoError(t, err)
	require.NotEmpty(t, redeemScript)
	require.Equal(t, int64(10_000_000_000), txOut.Value)
	require.Len(t, txOut.PkScript, 34, "expected a version-0 P2WSH locking script")
	require.Equal(t, byte(0x00), txOut.PkScript[0])
	require.Equal(t, byte(0x20), txOut.PkScript[1])
}

func TestSpendMultiSigOrdersSignaturesByScriptPosition(t *testing.T) {
	t.Parallel()

	a := randPubKey(t)
	b := randPubKey(t)
	redeemScript, err := MultiSig(a, b)
	require.NoError(t, err)

	pubkeys, err := ExtractPubkeys(redeemScript)
	require.NoError(t, err)

	sigFirst := []byte("sig-for-first-pushed-pubkey")
	sigSecond := []byte("sig-for-second-pushed-pubkey")

	// Pass the two (pubkey, sig) pairs reversed from script order; the
	// witness stack must still come out in script order.
	firstPK, secondPK := a, b
	if bytes.Equal(pubkeys[0], b.SerializeCompressed()) {
		firstPK, secondPK = b, a
	}

	stack, err := SpendMultiSig(redeemScript, secondPK.SerializeCompressed(), sigSecond, firstPK.SerializeCompressed(), sigFirst)
	require.NoError(t, err)
	require.Len(t, stack, 4)
	require.Nil(t, stack[0])
	require.Equal(t, sigFirst, stack[1])
	require.Equal(t, sigSecond, stack[2])
	require.Equal(t, redeemScript, stack[3])
}

func TestSpendMultiSigRejectsUnknownPubkeys(t *testing.T) {
	t.Parallel()

	a := randPubKey(t)
	b := randPubKey(t)
	other := randPubKey(t)
	redeemScript, err := MultiSig(a, b)
	require.NoError(t, err)

	_, err = SpendMultiSig(redeemScript, a.SerializeCompressed(), []byte("sig"), other.SerializeCompressed(), []byte("sig"))
	require.Error(t, err)
}
