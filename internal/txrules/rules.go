// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txrules holds two small policy decisions pinned as literal
// constants rather than derived from network relay-fee policy: the
// 1000-satoshi dust limit, and ceil(vsize)*feeRate fee computation.
package txrules

import "github.com/btcsuite/btcd/btcutil"

// DustLimit is the output value, in satoshis, at or below which an output
// is kept (exactly at the limit) or dropped (below it).
const DustLimit btcutil.Amount = 1000

// IsDust reports whether amount is strictly below DustLimit.
func IsDust(amount btcutil.Amount) bool {
	return amount < DustLimit
}

// FeeForVSize computes the fee for a transaction (or a party's share of one)
// of the given virtual size at the given fee rate, in satoshis per vbyte.
func FeeForVSize(vsize int64, feeRatePerVByte btcutil.Amount) btcutil.Amount {
	return btcutil.Amount(vsize) * feeRatePerVByte
}
