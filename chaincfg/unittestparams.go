// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// unitTestParams returns the parameters of the in-process unit test network:
// the main network table, including its checkpoints, with the overrides
// below.
func unitTestParams() Params {
	p := mainNetParams()

	p.Name = "unittest"
	p.Network = UnitTest
	p.DefaultPort = "25998"
	p.DNSSeeds = nil

	p.MiningRequiresPeers = false
	p.DefaultConsistencyChecks = true
	p.AllowMinDifficultyBlocks = false
	p.MineBlocksOnDemand = true

	return p
}

// UnitTestParams is the modifiable variant of the unit test network.  The
// exported fields may be changed freely by tests; Params applies them to a
// copy of the unit test table.
type UnitTestParams struct {
	base Params

	SubsidyReductionInterval    int32
	EnforceBlockUpgradeMajority int32
	RejectBlockOutdatedMajority int32
	ToCheckBlockUpgradeMajority int32
	DefaultConsistencyChecks    bool
	AllowMinDifficultyBlocks    bool
	SkipProofOfWorkCheck        bool
}

// NewUnitTestParams returns the modifiable unit test parameters initialized
// from the unit test table.
func NewUnitTestParams() (*UnitTestParams, error) {
	base, err := NewParams(UnitTest)
	if err != nil {
		return nil, err
	}
	return newUnitTestParams(*base), nil
}

func newUnitTestParams(base Params) *UnitTestParams {
	return &UnitTestParams{
		base:                        base,
		SubsidyReductionInterval:    base.SubsidyReductionInterval,
		EnforceBlockUpgradeMajority: base.EnforceBlockUpgradeMajority,
		RejectBlockOutdatedMajority: base.RejectBlockOutdatedMajority,
		ToCheckBlockUpgradeMajority: base.ToCheckBlockUpgradeMajority,
		DefaultConsistencyChecks:    base.DefaultConsistencyChecks,
		AllowMinDifficultyBlocks:    base.AllowMinDifficultyBlocks,
		SkipProofOfWorkCheck:        base.SkipProofOfWorkCheck,
	}
}

// Params returns a snapshot of the unit test parameters with the current
// overrides applied.  Later changes to u are not reflected in the snapshot.
func (u *UnitTestParams) Params() *Params {
	p := u.base
	p.Checkpoints = append([]Checkpoint(nil), u.base.Checkpoints...)
	p.SubsidyReductionInterval = u.SubsidyReductionInterval
	p.EnforceBlockUpgradeMajority = u.EnforceBlockUpgradeMajority
	p.RejectBlockOutdatedMajority = u.RejectBlockOutdatedMajority
	p.ToCheckBlockUpgradeMajority = u.ToCheckBlockUpgradeMajority
	p.DefaultConsistencyChecks = u.DefaultConsistencyChecks
	p.AllowMinDifficultyBlocks = u.AllowMinDifficultyBlocks
	p.SkipProofOfWorkCheck = u.SkipProofOfWorkCheck
	return &p
}
