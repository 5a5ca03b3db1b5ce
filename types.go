package cfddlc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// Amount is a quantity of satoshis. It is a re-export of btcutil.Amount
// rather than a parallel type, since every transaction this package builds
// is assembled out of btcd/btcutil primitives already.
type Amount = btcutil.Amount

// TxInputInfo describes one unspent output a party offers to the funding
// transaction.
type TxInputInfo struct {
	// OutPoint is the previous output being spent.
	OutPoint wire.OutPoint

	// RedeemScript is the unlocking script required in the scriptSig. It is
	// empty for pure segwit inputs (the common case), and non-empty for
	// nested or non-witness spends.
	RedeemScript []byte

	// Sequence is the input's nSequence field.
	Sequence uint32

	// MaxWitnessLength is the caller's worst-case estimate, in bytes, of the
	// serialized witness this input will carry once signed. It is used only
	// for fee estimation and never affects the emitted (unsigned) input.
	MaxWitnessLength uint32

	// SerialID is the 64-bit tiebreaker used to place this input within the
	// funding transaction's canonical input order.
	SerialID uint64
}

// TxOutputInfo describes a single transaction output together with the
// serial ID used to place it during canonical ordering.
type TxOutputInfo struct {
	PkScript []byte
	Value    Amount
	SerialID uint64
}

func (o TxOutputInfo) txOut() *wire.TxOut {
	return wire.NewTxOut(int64(o.Value), o.PkScript)
}

// PartyParams bundles one side's contribution to a single DLC.
type PartyParams struct {
	// FundPubKey is this party's 33-byte compressed pubkey used in the
	// funding output's 2-of-2 multisig.
	FundPubKey *btcec.PublicKey

	// ChangeScript is the locking script this party's funding change
	// returns to.
	ChangeScript []byte

	// FinalScript is the locking script this party is paid out to in every
	// CET and in the refund transaction.
	FinalScript []byte

	// FundingInputs are this party's offered UTXOs.
	FundingInputs []TxInputInfo

	// InputAmount is the total value of FundingInputs.
	InputAmount Amount

	// CollateralAmount is the amount this party is putting at risk in the
	// contract.
	CollateralAmount Amount

	// ChangeSerialID places this party's change output within the funding
	// transaction's canonical output order.
	ChangeSerialID uint64

	// PayoutSerialID places this party's payout output within each CET's
	// canonical output order.
	PayoutSerialID uint64
}

// BatchPartyParams bundles one side's contribution to a batch of N
// independent DLCs sharing a single funding transaction and input set.
type BatchPartyParams struct {
	// FundPubKeys holds this party's per-contract fund pubkey, length N.
	FundPubKeys []*btcec.PublicKey

	// ChangeScript is the single locking script this party's shared funding
	// change returns to.
	ChangeScript []byte

	// FinalScripts holds this party's per-contract payout script, length N.
	FinalScripts [][]byte

	// FundingInputs are this party's offered UTXOs, shared across all N
	// contracts.
	FundingInputs []TxInputInfo

	// InputAmount is the total value of FundingInputs.
	InputAmount Amount

	// Collaterals holds this party's per-contract collateral, length N.
	Collaterals []Amount

	// ChangeSerialID places this party's change output within the funding
	// transaction's canonical output order.
	ChangeSerialID uint64

	// PayoutSerialIDs holds this party's per-contract payout serial ID,
	// length N.
	PayoutSerialIDs []uint64
}

// DlcOutcome is one possible oracle outcome and its resulting payout split.
// LocalPayout+RemotePayout must equal the contract's total collateral.
type DlcOutcome struct {
	LocalPayout  Amount
	RemotePayout Amount
}

// AdaptorPair is an encrypted ECDSA adaptor signature together with its DLEQ
// proof of correct encryption. Its internal structure is owned by the
// adaptor package; this package treats it as an opaque byte pair.
type AdaptorPair struct {
	Signature []byte
	Proof     []byte
}

// DlcTransactions is the complete output of CreateDlcTransactions: the
// funding transaction, one CET per outcome (in the same order the outcomes
// were supplied), and the refund transaction.
type DlcTransactions struct {
	FundTx   *wire.MsgTx
	Cets     []*wire.MsgTx
	RefundTx *wire.MsgTx
}

// BatchDlcTransactions is the batch-variant output: one shared funding
// transaction, one CET vector and one refund transaction per contract.
type BatchDlcTransactions struct {
	FundTx    *wire.MsgTx
	Cets      [][]*wire.MsgTx
	RefundTxs []*wire.MsgTx
}

// FundTxOptions is the explicit configuration record for the orchestrator's
// optional parameters: locktimes, the funding output's own serial ID, and
// the option-premium side payment. The zero value reproduces the package's
// defaults.
type FundTxOptions struct {
	// FundLockTime is the nLockTime of the funding transaction.
	FundLockTime uint32

	// CetLockTime is the nLockTime of every CET and of the refund
	// transaction.
	CetLockTime uint32

	// FundOutputSerialID places the funding output within the funding
	// transaction's canonical output order.
	FundOutputSerialID uint64

	// PremiumDestination is the locking script an option premium is paid
	// to. Required, non-empty, whenever PremiumAmount > 0.
	PremiumDestination []byte

	// PremiumAmount is an unconditional side payment from the local party,
	// taken out of the funding transaction at construction time. It is
	// never part of the canonical serial-sorted output set; it is appended
	// last.
	PremiumAmount Amount
}

// BatchFundTxOptions is the batch-variant analogue of FundTxOptions. The
// option-premium mechanism does not apply to batch DLCs.
type BatchFundTxOptions struct {
	// FundLockTime is the nLockTime of the batch funding transaction.
	FundLockTime uint32

	// CetLockTime is the nLockTime of every CET and refund transaction,
	// shared across all contracts.
	CetLockTime uint32

	// FundOutputSerialIDs places each of the N funding outputs within the
	// funding transaction's canonical output order. An empty slice selects
	// the identity mapping vout_i = i.
	FundOutputSerialIDs []uint64
}
