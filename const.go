package cfddlc

import "github.com/btcsuite/btcd/btcutil"

// Protocol-wide constants this package builds its transactions from. They
// are not tunable.
const (
	// TxVersion is the version field every transaction this package builds
	// carries.
	TxVersion = 2

	// DustLimit is the output value, in satoshis, below which an output is
	// considered economically unspendable and dropped from a CET. The fund
	// transaction keeps its funding and change outputs regardless of value;
	// only an option-premium output below this limit is left out of it.
	DustLimit btcutil.Amount = 1000

	// FundTxBaseWeight is the base weight shared by every single-DLC funding
	// transaction, before inputs, change outputs, or the optional premium
	// output are added. Each party's fee covers half of it.
	FundTxBaseWeight = 214

	// BatchFundTxBaseWeight is the batch-variant analogue of FundTxBaseWeight.
	BatchFundTxBaseWeight = 42

	// FundingOutputSize is the serialized size, in bytes, of a single P2WSH
	// funding output.
	FundingOutputSize = 43

	// CetBaseWeight is the base weight shared by every CET, before its final
	// (payout) scripts are added. Each party's CET fee covers half of it.
	CetBaseWeight = 498
)
