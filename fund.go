package cfddlc

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/AtomicFinance/cfd-dlc/internal/txrules"
	"github.com/AtomicFinance/cfd-dlc/internal/txsizes"
)

// FundTransactionResult bundles the unsigned funding transaction with the
// per-party fee and change accounting the orchestrator needs to enforce its
// exactness invariant, the same way txauthor.AuthoredTx bundles a built
// transaction with the fee/change bookkeeping that produced it.
type FundTransactionResult struct {
	Tx                 *wire.MsgTx
	FundOutputVout     int
	FundOutputAmount   Amount
	LocalChangeAmount  Amount
	RemoteChangeAmount Amount
	LocalFundFee       Amount
	RemoteFundFee      Amount
}

// CreateFundTransaction builds the unsigned two-party funding transaction:
// local and remote inputs concatenated and serial-sorted, and a {funding,
// local change, remote change} output set serial-sorted with an optional
// unsorted trailing premium output.
func CreateFundTransaction(local, remote *PartyParams, feeRate Amount, opts FundTxOptions) (*FundTransactionResult, error) {
	if local == nil || remote == nil {
		return nil, illegalArgumentf("local and remote party params are required")
	}
	if opts.PremiumAmount > 0 && len(opts.PremiumDestination) == 0 {
		return nil, illegalArgumentf("premium destination is required when premium amount is positive")
	}

	totalCollateral := local.CollateralAmount + remote.CollateralAmount

	var localPremiumWeight int64
	if opts.PremiumAmount > 0 {
		localPremiumWeight = txsizes.PremiumWeight(len(opts.PremiumDestination))
	}
	localFundFee := partyFundFee(local.FundingInputs, len(local.ChangeScript), feeRate, localPremiumWeight)
	remoteFundFee := partyFundFee(remote.FundingInputs, len(remote.ChangeScript), feeRate, 0)

	localCetFee := partyCetFee(len(local.FinalScript), feeRate)
	remoteCetFee := partyCetFee(len(remote.FinalScript), feeRate)

	fundOutputAmount := totalCollateral + localCetFee + remoteCetFee

	_, fundTxOut, err := fundingOutput(local.FundPubKey, remote.FundPubKey, fundOutputAmount)
	if err != nil {
		return nil, err
	}

	localChange := local.InputAmount - local.CollateralAmount - localFundFee - localCetFee - opts.PremiumAmount
	remoteChange := remote.InputAmount - remote.CollateralAmount - remoteFundFee - remoteCetFee

	if localChange < 0 {
		log.Warnf("local input amount %d is insufficient for collateral %d, fund fee %d, cet fee %d and premium %d",
			local.InputAmount, local.CollateralAmount, localFundFee, localCetFee, opts.PremiumAmount)
		return nil, illegalArgumentf("local input amount %d is insufficient for collateral %d, fund fee %d, cet fee %d and premium %d",
			local.InputAmount, local.CollateralAmount, localFundFee, localCetFee, opts.PremiumAmount)
	}
	if remoteChange < 0 {
		log.Warnf("remote input amount %d is insufficient for collateral %d, fund fee %d and cet fee %d",
			remote.InputAmount, remote.CollateralAmount, remoteFundFee, remoteCetFee)
		return nil, illegalArgumentf("remote input amount %d is insufficient for collateral %d, fund fee %d and cet fee %d",
			remote.InputAmount, remote.CollateralAmount, remoteFundFee, remoteCetFee)
	}

	outputs := []TxOutputInfo{
		{PkScript: fundTxOut.PkScript, Value: fundOutputAmount, SerialID: opts.FundOutputSerialID},
		{PkScript: local.ChangeScript, Value: localChange, SerialID: local.ChangeSerialID},
		{PkScript: remote.ChangeScript, Value: remoteChange, SerialID: remote.ChangeSerialID},
	}
	sorted := sortOutputsBySerialID(outputs)
	fundVout := resolveFundingVout(opts.FundOutputSerialID, local.ChangeSerialID, remote.ChangeSerialID)

	tx := wire.NewMsgTx(TxVersion)
	for _, in := range sortInputsBySerialID(append(append([]TxInputInfo{}, local.FundingInputs...), remote.FundingInputs...)) {
		tx.AddTxIn(inputToTxIn(in))
	}
	for _, out := range sorted {
		tx.AddTxOut(out.txOut())
	}
	if opts.PremiumAmount > 0 && !txrules.IsDust(opts.PremiumAmount) {
		tx.AddTxOut(wire.NewTxOut(int64(opts.PremiumAmount), opts.PremiumDestination))
	}
	tx.LockTime = opts.FundLockTime

	return &FundTransactionResult{
		Tx:                 tx,
		FundOutputVout:     fundVout,
		FundOutputAmount:   fundOutputAmount,
		LocalChangeAmount:  localChange,
		RemoteChangeAmount: remoteChange,
		LocalFundFee:       localFundFee,
		RemoteFundFee:      remoteFundFee,
	}, nil
}

// BatchFundTransactionResult is the batch-variant analogue of
// FundTransactionResult: N funding outputs instead of one, and each party's
// per-contract CET fee, which is added to every contract's funding output.
type BatchFundTransactionResult struct {
	Tx                      *wire.MsgTx
	FundOutputVouts         []int
	FundOutputAmounts       []Amount
	LocalChangeAmount       Amount
	RemoteChangeAmount      Amount
	LocalFundFee            Amount
	RemoteFundFee           Amount
	LocalCetFeePerContract  Amount
	RemoteCetFeePerContract Amount
}

// CreateBatchFundTransaction builds the shared funding transaction for N
// independent DLCs: one funding output per contract, a single change
// output per party, and the two parties' input sets concatenated and
// serial-sorted exactly as in the single-DLC case.
func CreateBatchFundTransaction(local, remote *BatchPartyParams, feeRate Amount, opts BatchFundTxOptions) (*BatchFundTransactionResult, error) {
	if local == nil || remote == nil {
		return nil, illegalArgumentf("local and remote party params are required")
	}
	n := len(local.Collaterals)
	if n == 0 {
		return nil, illegalArgumentf("batch requires at least one contract")
	}
	if len(remote.Collaterals) != n || len(local.FundPubKeys) != n || len(remote.FundPubKeys) != n ||
		len(local.FinalScripts) != n || len(remote.FinalScripts) != n {
		return nil, illegalArgumentf("local and remote per-contract slices must all have length %d", n)
	}

	localFundWeight := txsizes.BatchFundWeight(n, inputWeights(local.FundingInputs), len(local.ChangeScript))
	remoteFundWeight := txsizes.BatchFundWeight(n, inputWeights(remote.FundingInputs), len(remote.ChangeScript))
	localFundFee := txrules.FeeForVSize(txsizes.VSize(localFundWeight), feeRate)
	remoteFundFee := txrules.FeeForVSize(txsizes.VSize(remoteFundWeight), feeRate)

	localCetFeeTotal := batchCetFeeTotal(local.FinalScripts, feeRate)
	remoteCetFeeTotal := batchCetFeeTotal(remote.FinalScripts, feeRate)
	localCetFee := Amount(ceilDiv(int64(localCetFeeTotal), int64(n)))
	remoteCetFee := Amount(ceilDiv(int64(remoteCetFeeTotal), int64(n)))

	fundOutputs := make([]TxOutputInfo, n)
	fundOutputAmounts := make([]Amount, n)
	totalCollateral := Amount(0)
	var fundOutputSerialIDs []uint64
	if len(opts.FundOutputSerialIDs) == n {
		fundOutputSerialIDs = opts.FundOutputSerialIDs
	} else {
		fundOutputSerialIDs = make([]uint64, n)
	}
	for i := 0; i < n; i++ {
		contractCollateral := local.Collaterals[i] + remote.Collaterals[i]
		totalCollateral += contractCollateral
		contractFundOutputAmount := contractCollateral + localCetFee + remoteCetFee
		_, txOut, err := fundingOutput(local.FundPubKeys[i], remote.FundPubKeys[i], contractFundOutputAmount)
		if err != nil {
			return nil, err
		}
		fundOutputAmounts[i] = contractFundOutputAmount
		fundOutputs[i] = TxOutputInfo{PkScript: txOut.PkScript, Value: contractFundOutputAmount, SerialID: fundOutputSerialIDs[i]}
	}

	localChange := local.InputAmount - sumAmounts(local.Collaterals) - localFundFee - localCetFeeTotal
	remoteChange := remote.InputAmount - sumAmounts(remote.Collaterals) - remoteFundFee - remoteCetFeeTotal
	if localChange < 0 {
		return nil, illegalArgumentf("local input amount %d is insufficient for collaterals, fund fee %d and cet fee %d",
			local.InputAmount, localFundFee, localCetFeeTotal)
	}
	if remoteChange < 0 {
		return nil, illegalArgumentf("remote input amount %d is insufficient for collaterals, fund fee %d and cet fee %d",
			remote.InputAmount, remoteFundFee, remoteCetFeeTotal)
	}

	outputs := append(fundOutputs,
		TxOutputInfo{PkScript: local.ChangeScript, Value: localChange, SerialID: local.ChangeSerialID},
		TxOutputInfo{PkScript: remote.ChangeScript, Value: remoteChange, SerialID: remote.ChangeSerialID},
	)
	sorted := sortOutputsBySerialID(outputs)

	var fundVouts []int
	if len(opts.FundOutputSerialIDs) == n {
		fundVouts = resolveBatchFundingVouts(opts.FundOutputSerialIDs, local.ChangeSerialID, remote.ChangeSerialID)
	} else {
		fundVouts = make([]int, n)
		for i := range fundVouts {
			fundVouts[i] = i
		}
	}

	tx := wire.NewMsgTx(TxVersion)
	for _, in := range sortInputsBySerialID(append(append([]TxInputInfo{}, local.FundingInputs...), remote.FundingInputs...)) {
		tx.AddTxIn(inputToTxIn(in))
	}
	for _, out := range sorted {
		tx.AddTxOut(out.txOut())
	}
	tx.LockTime = opts.FundLockTime

	return &BatchFundTransactionResult{
		Tx:                      tx,
		FundOutputVouts:         fundVouts,
		FundOutputAmounts:       fundOutputAmounts,
		LocalChangeAmount:       localChange,
		RemoteChangeAmount:      remoteChange,
		LocalFundFee:            localFundFee,
		RemoteFundFee:           remoteFundFee,
		LocalCetFeePerContract:  localCetFee,
		RemoteCetFeePerContract: remoteCetFee,
	}, nil
}

// batchCetFeeTotal computes one party's undivided CET fee across every
// contract in the batch: the fee for the sum of every contract's CET
// weight. Callers needing the per-contract share divide this by N
// themselves (ceilDiv), since the total (not the per-contract share) is
// what the party's own change output must absorb.
func batchCetFeeTotal(finalScripts [][]byte, feeRate Amount) Amount {
	var totalWeight int64
	for _, script := range finalScripts {
		totalWeight += txsizes.CetWeight(len(script))
	}
	return txrules.FeeForVSize(txsizes.VSize(totalWeight), feeRate)
}

// sumAmounts totals a slice of Amounts.
func sumAmounts(amounts []Amount) Amount {
	var sum Amount
	for _, a := range amounts {
		sum += a
	}
	return sum
}

// ceilDiv returns ceil(a/b) for positive b and non-negative a; it returns 0
// for any a <= 0.
func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// partyFundFee computes one party's share of the funding transaction's fee:
// its own inputs' weight, its own change output, half the shared base
// weight, and (for the local party, when a premium is requested) the
// premium output's own extra weight.
func partyFundFee(inputs []TxInputInfo, changeScriptSize int, feeRate Amount, extraWeight int64) Amount {
	weights := inputWeights(inputs)
	weight := txsizes.FundWeight(weights, changeScriptSize) + extraWeight
	return txrules.FeeForVSize(txsizes.VSize(weight), feeRate)
}

// partyCetFee computes one party's share of a CET's fee from its own final
// (payout) script size.
func partyCetFee(finalScriptSize int, feeRate Amount) Amount {
	weight := txsizes.CetWeight(finalScriptSize)
	return txrules.FeeForVSize(txsizes.VSize(weight), feeRate)
}

// inputWeights maps a party's funding inputs to their per-input weight
// contribution.
func inputWeights(inputs []TxInputInfo) []int64 {
	weights := make([]int64, len(inputs))
	for i, in := range inputs {
		weights[i] = txsizes.InputWeight(len(in.RedeemScript), in.MaxWitnessLength)
	}
	return weights
}
