package cfddlc

// CreateDlcTransactions builds the complete transaction set for a two-party
// DLC: the funding transaction, one CET per outcome, and the refund
// transaction, enforcing the fee-accounting exactness invariant before any
// transaction leaves this function.
//
// outcomes must each sum to the same total collateral (local.CollateralAmount
// + remote.CollateralAmount); otherwise CreateDlcTransactions reports
// ErrIllegalArgument. A mismatch between the funding transaction's actual
// output value and the fee/collateral accounting that produced it reports
// ErrInternal, since it indicates a bug in this package rather than a bad
// caller input.
func CreateDlcTransactions(local, remote *PartyParams, outcomes []DlcOutcome, feeRate Amount, opts FundTxOptions) (*DlcTransactions, error) {
	if len(outcomes) == 0 {
		return nil, illegalArgumentf("at least one outcome is required")
	}

	totalCollateral := local.CollateralAmount + remote.CollateralAmount
	for i, outcome := range outcomes {
		if outcome.LocalPayout+outcome.RemotePayout != totalCollateral {
			return nil, illegalArgumentf("outcome %d payouts %d+%d do not sum to total collateral %d",
				i, outcome.LocalPayout, outcome.RemotePayout, totalCollateral)
		}
	}

	fundResult, err := CreateFundTransaction(local, remote, feeRate, opts)
	if err != nil {
		return nil, err
	}

	if err := verifyFundOutputExactness(local, remote, fundResult, opts.PremiumAmount); err != nil {
		return nil, err
	}

	fundTxID := fundResult.Tx.TxHash()
	fundVout := uint32(fundResult.FundOutputVout)
	log.Debugf("fund tx %v funds %d outcomes at vout %d", fundTxID, len(outcomes), fundVout)

	cets := CreateCets(outcomes, local.FinalScript, remote.FinalScript,
		fundTxID, fundVout, opts.CetLockTime, local.PayoutSerialID, remote.PayoutSerialID)

	refundTx := CreateRefundTransaction(local.FinalScript, local.CollateralAmount, remote.FinalScript, remote.CollateralAmount,
		fundTxID, fundVout, opts.CetLockTime)

	return &DlcTransactions{FundTx: fundResult.Tx, Cets: cets, RefundTx: refundTx}, nil
}

// verifyFundOutputExactness checks that the funding output's value equals
// total collateral plus both parties' CET fees exactly, with no slack. Any
// other outcome means this package's own fee arithmetic disagrees with
// itself, not that the caller gave bad input.
func verifyFundOutputExactness(local, remote *PartyParams, fundResult *FundTransactionResult, premium Amount) error {
	totalCollateral := local.CollateralAmount + remote.CollateralAmount

	fundOutput := local.InputAmount + remote.InputAmount -
		fundResult.LocalChangeAmount - fundResult.RemoteChangeAmount -
		fundResult.LocalFundFee - fundResult.RemoteFundFee - premium

	if fundOutput != fundResult.FundOutputAmount {
		return internalf("funding output amount %d does not match computed value %d (collateral %d)",
			fundResult.FundOutputAmount, fundOutput, totalCollateral)
	}
	return nil
}

// CreateBatchDlcTransactions builds the shared funding transaction and one
// CET vector plus refund transaction per contract for a batch of N
// independent DLCs. outcomesPerContract[i] must sum to
// local.Collaterals[i]+remote.Collaterals[i] for every outcome.
func CreateBatchDlcTransactions(local, remote *BatchPartyParams, outcomesPerContract [][]DlcOutcome, feeRate Amount, opts BatchFundTxOptions) (*BatchDlcTransactions, error) {
	n := len(local.Collaterals)
	if len(outcomesPerContract) != n {
		return nil, illegalArgumentf("%d contracts but %d outcome vectors", n, len(outcomesPerContract))
	}
	for i := 0; i < n; i++ {
		contractCollateral := local.Collaterals[i] + remote.Collaterals[i]
		for j, outcome := range outcomesPerContract[i] {
			if outcome.LocalPayout+outcome.RemotePayout != contractCollateral {
				return nil, illegalArgumentf("contract %d outcome %d payouts %d+%d do not sum to collateral %d",
					i, j, outcome.LocalPayout, outcome.RemotePayout, contractCollateral)
			}
		}
	}

	fundResult, err := CreateBatchFundTransaction(local, remote, feeRate, opts)
	if err != nil {
		return nil, err
	}

	if err := verifyBatchFundOutputExactness(local, remote, fundResult); err != nil {
		return nil, err
	}

	fundTxID := fundResult.Tx.TxHash()
	fundVouts := make([]uint32, n)
	for i, v := range fundResult.FundOutputVouts {
		fundVouts[i] = uint32(v)
	}
	log.Debugf("batch fund tx %v funds %d contracts", fundTxID, n)

	localScripts := local.FinalScripts
	remoteScripts := remote.FinalScripts

	localPayoutSerialIDs := payoutSerialIDsOrZero(local.PayoutSerialIDs, n)
	remotePayoutSerialIDs := payoutSerialIDsOrZero(remote.PayoutSerialIDs, n)

	cets, err := CreateBatchCets(outcomesPerContract, localScripts, remoteScripts,
		fundTxID, fundVouts, opts.CetLockTime, localPayoutSerialIDs, remotePayoutSerialIDs)
	if err != nil {
		return nil, err
	}

	localAmounts := local.Collaterals
	remoteAmounts := remote.Collaterals
	refunds, err := CreateBatchRefundTransactions(localScripts, localAmounts, remoteScripts, remoteAmounts,
		fundTxID, fundVouts, opts.CetLockTime)
	if err != nil {
		return nil, err
	}

	return &BatchDlcTransactions{FundTx: fundResult.Tx, Cets: cets, RefundTxs: refunds}, nil
}

// payoutSerialIDsOrZero returns ids as-is if it already has length n,
// otherwise an all-zero slice of length n (every CET then keeps its
// caller-supplied output order by default).
func payoutSerialIDsOrZero(ids []uint64, n int) []uint64 {
	if len(ids) == n {
		return ids
	}
	return make([]uint64, n)
}

// verifyBatchFundOutputExactness checks the batch analogue of
// verifyFundOutputExactness across every contract's funding output at once,
// allowing up to the ±20 sat slack the batch CET fee's per-contract rounding
// introduces.
func verifyBatchFundOutputExactness(local, remote *BatchPartyParams, fundResult *BatchFundTransactionResult) error {
	const batchFeeSlack = 20

	var totalFundOutput Amount
	for _, amount := range fundResult.FundOutputAmounts {
		totalFundOutput += amount
	}

	computed := local.InputAmount + remote.InputAmount -
		fundResult.LocalChangeAmount - fundResult.RemoteChangeAmount -
		fundResult.LocalFundFee - fundResult.RemoteFundFee

	diff := computed - totalFundOutput
	if diff < -batchFeeSlack || diff > batchFeeSlack {
		return internalf("batch funding output total %d diverges from computed value %d by more than %d sat",
			totalFundOutput, computed, batchFeeSlack)
	}
	return nil
}

