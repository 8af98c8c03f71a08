// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// neverActive is the height or unix time used for rules that are not
// scheduled on a network.
const neverActive = 2147483000

// rsa2048Modulus is the RSA-2048 challenge number in decimal.  It is the
// modulus of the coin accumulator on every network.
const rsa2048Modulus = "25195908475657893494027183240048398571429282126204032027777137836043662020707595556264018525880784" +
	"4069182906412495150821892985591491761845028084891200728449926873928072877767359714183472702618963750149718246911" +
	"6507761337985909570009733045974880842840179742910064245869181719511874612151517265463228221686998754918242243363" +
	"7259085141865462043576798423387184774447920739934236584823824281198163815010674810451660377306056201619676256133" +
	"8441436038339044149526344321901146575444541784240209246165157233507787077498171257724679629263863563732899121548" +
	"31438167899885040445364023527381951378636564391212010397122822120720357"

const mainSporkKey = "0494b3488594838306c1b91a8e4a802de046bd3f815c707f56a95f31ce8c55c9" +
	"47f4c2e878633fe288a35974952be12e819fe591677f845a99a85273142864b993"

// mainNetCheckpoints are the checkpoints of the main network.  The unit test
// network shares them.
func mainNetCheckpoints() []Checkpoint {
	return []Checkpoint{
		{0, genesisHash},
		{2, newHashFromStr("00000d9261d37ddd0280371317b4c41a3b179b3d31e4f5082b7e70a85d69effe")},
		{512, newHashFromStr("000003db9cbd239ab8724c6aa07451c3d975bbb8aa5d89868317714a69a3ef37")},
		{4559, newHashFromStr("fae475552886efefe299bb71c1d6b3764239056c4941464049ef6f6cabef0b6b")},
		{5530, newHashFromStr("8a5fe6dcd0bf8decf5a24789244748beeeb216c83e4458826fd67831047230f6")},
		{6160, newHashFromStr("2f94a6e0bf2d8ba2d84247ba400ffc04234a901377d08924ee6cf680aa11af0c")},
		{12588, newHashFromStr("93aa8321f7e5764df1cfd39b27dd4e08e36e8017abd1d92d00effc0257858f47")},
		{14374, newHashFromStr("681fef91feeae0dbfc2cc5335507bcaa6b896833ed5824e6a3fd426a4921616d")},
		{31000, newHashFromStr("f740eb8bba126e0898c4fb78b51539d8a0fae0f760bfedd338b5f6d708e2f12c")},
	}
}

// mainNetParams returns the parameters of the main network.  Every other
// network starts from this table.
func mainNetParams() Params {
	return Params{
		Name:        "mainnet",
		Network:     MainNet,
		Net:         wire.BitcoinNet(0xe51c2ff2),
		DefaultPort: "25992",
		DNSSeeds: []DNSSeed{
			{"seed.synx.online", false},
		},

		// Chain parameters
		GenesisBlock:             newGenesisBlock(3704342),
		GenesisHash:              genesisHash,
		GenesisMerkleRoot:        genesisMerkleRoot,
		PowLimit:                 mainPowLimit,
		PowLimitBits:             0x1e0fffff,
		LastPoWBlock:             512,
		BadBlockTime:             time.Unix(neverActive, 0),
		BadBlockBits:             0x1c056dac,
		SubsidyReductionInterval: 210000,
		MaxReorganizationDepth:   100,

		EnforceBlockUpgradeMajority: 750,
		RejectBlockOutdatedMajority: 950,
		ToCheckBlockUpgradeMajority: 1000,

		TargetTimePerBlock: time.Minute,
		FutureTimeDriftPoW: 2 * time.Hour,
		FutureTimeDriftPoS: 3 * time.Minute,

		CoinbaseMaturity:      100,
		StakeMinDepth:         600,
		MasternodeCountDrift:  20,
		ModifierUpdateBlock:   neverActive,
		StakeModifierV2Height: 1575158400,

		MaxMoneyOut: 398360470 * btcutil.SatoshiPerBitcoin,

		// Zerocoin
		ZerocoinStartHeight:                   neverActive,
		ZerocoinStartTime:                     time.Unix(neverActive, 0),
		ZerocoinHeaderVersion:                 4,
		ZerocoinV2Height:                      neverActive,
		DoubleAccumulatedHeight:               neverActive,
		PublicZerocoinSpendsHeight:            neverActive,
		MaxZerocoinSpendsPerTransaction:       7,
		MaxZerocoinPublicSpendsPerTransaction: 637,
		MinZerocoinMintFee:                    btcutil.SatoshiPerBitcent,
		MintRequiredConfirmations:             20,
		RequiredAccumulation:                  1,
		DefaultSecurityLevel:                  100,
		ZerocoinRequiredStakeDepth:            200,
		ZerocoinModulus:                       rsa2048Modulus,

		// Fraud mitigation
		EnforceSerialRangeHeight:      neverActive,
		RecalculateAccumulatorsHeight: neverActive,
		FirstFraudulentHeight:         neverActive,
		LastGoodCheckpointHeight:      neverActive,
		EnforceInvalidUTXOHeight:      neverActive,
		InvalidAmountFiltered:         268200 * btcutil.SatoshiPerBitcoin,
		FakeSerialHeightEnd:           1686229,
		SupplyBeforeFakeSerial:        4131563 * btcutil.SatoshiPerBitcoin,

		// Checkpoints ordered from oldest to newest.
		Checkpoints: mainNetCheckpoints(),
		CheckpointData: CheckpointData{
			LastCheckpointTime:         time.Unix(1523732885, 0),
			TransactionsLastCheckpoint: 98314,
			TransactionsPerDay:         2000,
		},

		// Governance
		PoolMaxTransactions:         3,
		BudgetCycleBlocks:           43200,
		SporkKey:                    mainSporkKey,
		SporkKeyOld:                 mainSporkKey,
		EnforceNewSporkKeyTime:      time.Unix(neverActive, 0),
		RejectOldSporkKeyTime:       time.Unix(neverActive, 0),
		ObfuscationPoolDummyAddress: "SXmCHzNQXcgiHsS5fukBf95jxyPzqQP2it",
		StartMasternodePayments:     time.Unix(1403728576, 0),
		MasternodeCollateralMin:     5000 * btcutil.SatoshiPerBitcoin,
		MasternodeCollateralMax:     25000 * btcutil.SatoshiPerBitcoin,
		ProposalEstablishmentTime:   24 * time.Hour,
		BudgetFeeConfirmations:      6,

		// Policy
		MiningRequiresPeers:       true,
		AllowMinDifficultyBlocks:  false,
		DefaultConsistencyChecks:  false,
		RequireStandard:           true,
		MineBlocksOnDemand:        false,
		SkipProofOfWorkCheck:      false,
		HeadersFirstSyncingActive: false,

		// Address encoding magics
		PubKeyHashAddrID: 63,
		ScriptHashAddrID: 85,
		PrivateKeyID:     153,

		// BIP32 hierarchical deterministic extended key magics
		HDPrivateKeyID: [4]byte{0x02, 0x21, 0x31, 0x2b},
		HDPublicKeyID:  [4]byte{0x02, 0x2d, 0x25, 0x33},

		// BIP44 coin type used in the hierarchical deterministic path for
		// address generation.
		HDCoinType: 0x77,
	}
}
