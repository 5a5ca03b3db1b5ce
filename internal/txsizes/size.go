// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txsizes estimates the virtual-byte weight of the transactions this
// module builds. Unlike a wallet, which knows the exact script class of
// every input it signs, this library's inputs are caller-described: each
// TxInputInfo carries a MaxWitnessLength hint rather than a concrete script
// class, so the estimator works from fixed per-transaction weight formulas
// rather than per-script-class constants.
package txsizes

import "github.com/btcsuite/btcd/blockchain"

// Per-item weight constants for the transactions this package sizes.
const (
	// FundTxBaseWeight is the funding transaction's fixed weight (version,
	// locktime, segwit marker/flag, output-count varint, and the
	// three-output skeleton before any input is added). FundWeight charges
	// each party half of it.
	FundTxBaseWeight = 214

	// BatchFundTxBaseWeight is the batch-variant analogue of
	// FundTxBaseWeight: with N funding outputs instead of one, their size
	// is added separately via FundingOutputSize.
	BatchFundTxBaseWeight = 42

	// FundingOutputSize is the serialized size, in bytes, of one P2WSH
	// funding output (8-byte value + 1-byte length prefix + 34-byte
	// script).
	FundingOutputSize = 43

	// CetBaseWeight is a CET's fixed weight before its final (payout) output
	// scripts are counted. CetWeight charges each party half of it.
	CetBaseWeight = 498

	// baseInputWeight is the fixed weight every input contributes
	// regardless of script size or witness length: 32-byte prevout hash +
	// 4-byte index + 4-byte sequence, scaled by 4
	// (blockchain.WitnessScaleFactor), plus the witness item's own
	// non-scaled weight accounting baked into this constant.
	baseInputWeight = 164
)

// InputWeight returns the weight contribution of one funding input given
// the serialized size of its (non-witness) unlocking script and the
// caller's worst-case witness-length estimate:
// 164 + 4*non_witness_script_size + max_witness_length.
func InputWeight(nonWitnessScriptSize int, maxWitnessLength uint32) int64 {
	return int64(baseInputWeight) +
		int64(blockchain.WitnessScaleFactor)*int64(nonWitnessScriptSize) +
		int64(maxWitnessLength)
}

// FundWeight returns the total weight of a single-DLC funding transaction:
// half the shared base weight (the other half is the counterparty's
// share), every input's weight, and the change output: 4 times its locking
// script size plus a fixed 36 for its value and script-length prefix.
func FundWeight(inputWeights []int64, changeScriptSize int) int64 {
	weight := int64(FundTxBaseWeight) / 2
	for _, w := range inputWeights {
		weight += w
	}
	weight += int64(blockchain.WitnessScaleFactor)*int64(changeScriptSize) + 36
	return weight
}

// PremiumWeight returns the extra weight contributed by an option-premium
// output of the given locking-script size.
func PremiumWeight(premiumScriptSize int) int64 {
	return 36 + int64(blockchain.WitnessScaleFactor)*int64(premiumScriptSize)
}

// CetWeight returns the weight of one party's share of a CET, given the
// serialized size of that party's final (payout) locking script.
func CetWeight(finalScriptSize int) int64 {
	return int64(CetBaseWeight)/2 + int64(blockchain.WitnessScaleFactor)*int64(finalScriptSize)
}

// BatchFundWeight returns the total weight of a batch funding transaction
// spending N contracts' worth of funding outputs. The base weight and the
// funding outputs' own weight are halved the same way FundWeight halves
// FundTxBaseWeight, before either party's inputs and change are added.
func BatchFundWeight(numContracts int, inputWeights []int64, changeScriptSize int) int64 {
	weight := (int64(BatchFundTxBaseWeight) +
		int64(blockchain.WitnessScaleFactor)*int64(FundingOutputSize)*int64(numContracts)) / 2
	for _, w := range inputWeights {
		weight += w
	}
	weight += int64(blockchain.WitnessScaleFactor)*int64(changeScriptSize) + 36
	return weight
}

// VSize converts a weight figure into virtual bytes, rounding up
// (ceil(weight / 4.0), implemented here as the equivalent integer ceiling
// division).
func VSize(weight int64) int64 {
	return (weight + int64(blockchain.WitnessScaleFactor) - 1) / int64(blockchain.WitnessScaleFactor)
}
