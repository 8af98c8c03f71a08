// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a block can have for
	// the main network.  It is the value 2^236 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// regressionPowLimit is the highest proof of work value a block can
	// have for the regression test network.  It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

var (
	// ErrGenesisMismatch describes an error where the genesis block built
	// from the network parameters does not hash to the documented constant.
	// A node must not start with such parameters.
	ErrGenesisMismatch = errors.New("genesis block does not match the expected hash")

	// ErrUnknownNetwork describes an error where the requested network
	// variant has no parameters.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNoNetworkSelected describes an error where the active parameters
	// were requested before a network was selected.
	ErrNoNetworkSelected = errors.New("no network has been selected")

	// ErrNetworkAlreadySelected describes an error where a second,
	// different network was selected on a deployment that does not permit
	// reselection.
	ErrNetworkAlreadySelected = errors.New("a different network has already been selected")

	// ErrNotModifiable describes an error where the mutable test
	// parameters were requested while a production network is active.
	ErrNotModifiable = errors.New("parameters of the active network are not modifiable")

	// ErrBadAddressPrefix describes an error where an address hard coded
	// into the parameters does not decode with the network's magic.
	ErrBadAddressPrefix = errors.New("address does not match the network prefix")
)

// Network identifies one of the supported network variants.
type Network uint8

const (
	// MainNet is the production network.
	MainNet Network = iota

	// TestNet is the public test network.
	TestNet

	// RegTest is the regression test network.
	RegTest

	// UnitTest is the in-process network used by unit tests.  It shares the
	// main network checkpoints and is the only variant whose parameters
	// can be modified after selection.
	UnitTest
)

// networkStrings maps each Network to its human-readable name.
var networkStrings = map[Network]string{
	MainNet:  "main",
	TestNet:  "test",
	RegTest:  "regtest",
	UnitTest: "unittest",
}

// String returns the Network as a human-readable name.
func (n Network) String() string {
	if s, ok := networkStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Network (%d)", uint8(n))
}

// Checkpoint identifies a known good point in the block chain.  Using
// checkpoints allows a few optimizations for old blocks during initial download
// and also prevents forks from old blocks.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// CheckpointData is the metadata recorded with the checkpoint table.  It is
// used to estimate how far along the initial download is.
type CheckpointData struct {
	// LastCheckpointTime is the timestamp of the last checkpoint block.
	LastCheckpointTime time.Time

	// TransactionsLastCheckpoint is the total number of transactions
	// between genesis and the last checkpoint.
	TransactionsLastCheckpoint int64

	// TransactionsPerDay is the estimated number of transactions per day
	// after the last checkpoint.
	TransactionsPerDay float64
}

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Host defines the hostname of the seed.
	Host string

	// HasFiltering defines whether the seed supports filtering
	// by service flags (wire.ServiceFlag).
	HasFiltering bool
}

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a network by its parameters.  These parameters are consulted
// by every validation and mining decision and by the light witness worker.
//
// Params values are built once by NewParams and must be treated as read-only
// afterwards.  Tests that need different values use UnitTestParams.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Network is the variant these parameters belong to.
	Network Network

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// GenesisMerkleRoot is the expected merkle root of the genesis block.
	GenesisMerkleRoot *chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// LastPoWBlock is the final proof-of-work block.  Every later block is
	// proof-of-stake.
	LastPoWBlock int32

	// BadBlockTime and BadBlockBits identify a historical block whose
	// difficulty bits are not validated.
	BadBlockTime time.Time
	BadBlockBits uint32

	// SubsidyReductionInterval is the interval of blocks before the subsidy
	// is reduced.
	SubsidyReductionInterval int32

	// MaxReorganizationDepth is the deepest reorganization the node will
	// follow.
	MaxReorganizationDepth int32

	// These fields control the miner vote on block version upgrades.  A
	// new version is enforced once EnforceBlockUpgradeMajority of the last
	// ToCheckBlockUpgradeMajority blocks carry it, and older versions are
	// rejected at RejectBlockOutdatedMajority.
	EnforceBlockUpgradeMajority int32
	RejectBlockOutdatedMajority int32
	ToCheckBlockUpgradeMajority int32

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// FutureTimeDriftPoW and FutureTimeDriftPoS are how far in the future
	// a block timestamp may be for proof-of-work and proof-of-stake blocks.
	FutureTimeDriftPoW time.Duration
	FutureTimeDriftPoS time.Duration

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins (coinbase and coinstake transactions) can be spent.
	CoinbaseMaturity uint16

	// StakeMinDepth is the depth a staking input needs once stake modifier
	// v2 is active.
	StakeMinDepth int32

	// MasternodeCountDrift is the allowed drift in the masternode count.
	MasternodeCountDrift int32

	// ModifierUpdateBlock is the height of the stake modifier update.
	ModifierUpdateBlock int32

	// StakeModifierV2Height is the height at which stake modifier v2 and
	// depth based stake maturity activate.
	StakeModifierV2Height int32

	// MaxMoneyOut is the maximum amount of money in circulation.
	MaxMoneyOut btcutil.Amount

	// Zerocoin activation and limits.
	ZerocoinStartHeight                   int32
	ZerocoinStartTime                     time.Time
	ZerocoinHeaderVersion                 int32
	ZerocoinV2Height                      int32
	DoubleAccumulatedHeight               int32
	PublicZerocoinSpendsHeight            int32
	MaxZerocoinSpendsPerTransaction       int
	MaxZerocoinPublicSpendsPerTransaction int
	MinZerocoinMintFee                    btcutil.Amount
	MintRequiredConfirmations             int32
	RequiredAccumulation                  int32
	DefaultSecurityLevel                  int32
	ZerocoinRequiredStakeDepth            int32

	// ZerocoinModulus is the decimal RSA modulus of the coin accumulator.
	ZerocoinModulus string

	// Fraud mitigation.  Serials above the allowed range are rejected from
	// EnforceSerialRangeHeight, accumulators are recalculated at
	// RecalculateAccumulatorsHeight, bad serials emerged at
	// FirstFraudulentHeight and LastGoodCheckpointHeight is the last valid
	// accumulator checkpoint.  InvalidAmountFiltered is previously invalid
	// supply accepted as valid after EnforceInvalidUTXOHeight.
	EnforceSerialRangeHeight      int32
	RecalculateAccumulatorsHeight int32
	FirstFraudulentHeight         int32
	LastGoodCheckpointHeight      int32
	EnforceInvalidUTXOHeight      int32
	InvalidAmountFiltered         btcutil.Amount

	// FakeSerialHeightEnd is the last height affected by the fake serial
	// attack, -1 when the network never saw it.  SupplyBeforeFakeSerial is
	// the zerocoin supply at that height.
	FakeSerialHeightEnd    int32
	SupplyBeforeFakeSerial btcutil.Amount

	// Checkpoints ordered from oldest to newest.
	Checkpoints    []Checkpoint
	CheckpointData CheckpointData

	// Governance.
	PoolMaxTransactions         int32
	BudgetCycleBlocks           int32
	SporkKey                    string
	SporkKeyOld                 string
	EnforceNewSporkKeyTime      time.Time
	RejectOldSporkKeyTime       time.Time
	ObfuscationPoolDummyAddress string
	StartMasternodePayments     time.Time
	MasternodeCollateralMin     btcutil.Amount
	MasternodeCollateralMax     btcutil.Amount
	ProposalEstablishmentTime   time.Duration
	BudgetFeeConfirmations      int32

	// Policy flags.
	MiningRequiresPeers       bool
	AllowMinDifficultyBlocks  bool
	DefaultConsistencyChecks  bool
	RequireStandard           bool
	MineBlocksOnDemand        bool
	SkipProofOfWorkCheck      bool
	HeadersFirstSyncingActive bool

	// Address encoding magics
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType uint32
}

// builders maps each network to the function producing its unchecked table.
var builders = map[Network]func() Params{
	MainNet:  mainNetParams,
	TestNet:  testNetParams,
	RegTest:  regTestParams,
	UnitTest: unitTestParams,
}

// NewParams builds the parameters of the given network and asserts that its
// genesis block hashes to the documented constant.
func NewParams(net Network) (*Params, error) {
	build, ok := builders[net]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNetwork, net)
	}

	params := build()
	if err := params.CheckGenesis(); err != nil {
		return nil, err
	}
	if err := params.checkCheckpoints(); err != nil {
		return nil, err
	}
	if err := params.ValidateAddressPrefixes(); err != nil {
		return nil, err
	}
	return &params, nil
}

// CheckGenesis recomputes the merkle root and hash of the genesis block and
// compares them against the documented constants.
func (p *Params) CheckGenesis() error {
	if p.GenesisBlock == nil || p.GenesisHash == nil {
		return fmt.Errorf("%w: %s has no genesis block", ErrGenesisMismatch, p.Name)
	}

	if p.GenesisMerkleRoot != nil {
		merkle := p.GenesisBlock.Header.MerkleRoot
		if !merkle.IsEqual(p.GenesisMerkleRoot) {
			return fmt.Errorf("%w: %s merkle root %v, want %v",
				ErrGenesisMismatch, p.Name, merkle, p.GenesisMerkleRoot)
		}
	}

	hash := p.GenesisBlock.BlockHash()
	if !hash.IsEqual(p.GenesisHash) {
		return fmt.Errorf("%w: %s genesis %v, want %v", ErrGenesisMismatch,
			p.Name, hash, p.GenesisHash)
	}
	return nil
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}
