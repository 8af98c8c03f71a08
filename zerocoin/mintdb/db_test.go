// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mintdb

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndicateltd/synxd/chaincfg"
	"github.com/syndicateltd/synxd/zerocoin"
	"github.com/utreexo/utreexo"
)

// testParams returns unit test parameters with zerocoin active from height 10
// and the v2 accumulator from height 20.
func testParams(t *testing.T) *chaincfg.Params {
	t.Helper()
	params, err := chaincfg.NewParams(chaincfg.UnitTest)
	require.NoError(t, err)
	params.ZerocoinStartHeight = 10
	params.ZerocoinV2Height = 20
	return params
}

func openTestDB(t *testing.T, params *chaincfg.Params, path string) *DB {
	t.Helper()
	db, err := Open(&Config{Path: path, Params: params, MintCacheSize: 4})
	require.NoError(t, err)
	return db
}

func coin(t *testing.T, value int64, denom zerocoin.Denomination) *zerocoin.PublicCoin {
	t.Helper()
	c, err := zerocoin.NewPublicCoin(big.NewInt(value), denom)
	require.NoError(t, err)
	return c
}

func TestConnectDisconnect(t *testing.T) {
	params := testParams(t)
	db := openTestDB(t, params, t.TempDir())
	defer db.Close()

	require.Equal(t, int32(-1), db.BestHeight())

	// Mints before activation are rejected.
	err := db.ConnectBlock(9, []*zerocoin.PublicCoin{coin(t, 3, zerocoin.Denom1)})
	require.True(t, errors.Is(err, ErrZerocoinInactive), err)

	blocks := [][]*zerocoin.PublicCoin{
		{coin(t, 3, zerocoin.Denom1), coin(t, 5, zerocoin.Denom10)},
		{},
		{coin(t, 7, zerocoin.Denom1)},
	}
	for i, mints := range blocks {
		require.NoError(t, db.ConnectBlock(int32(10+i), mints))
	}
	require.Equal(t, int32(12), db.BestHeight())
	require.Equal(t, int32(10), db.FirstHeight())

	// Blocks must extend the tip.
	err = db.ConnectBlock(14, nil)
	require.True(t, errors.Is(err, ErrNotConnected), err)

	mints, err := db.FetchBlockMints(10)
	require.NoError(t, err)
	require.Len(t, mints, 2)
	require.True(t, mints[0].Equal(blocks[0][0]))
	require.True(t, mints[1].Equal(blocks[0][1]))

	_, err = db.FetchBlockMints(13)
	require.True(t, errors.Is(err, ErrBlockNotFound), err)

	id := blocks[2][0].ID()
	height, err := db.FetchMintHeight(&id)
	require.NoError(t, err)
	require.Equal(t, int32(12), height)

	// Only the tip can be disconnected.
	err = db.DisconnectBlock(11)
	require.True(t, errors.Is(err, ErrNotConnected), err)

	digest := db.MintSetDigest()
	require.NoError(t, db.DisconnectBlock(12))
	require.NotEqual(t, digest, db.MintSetDigest())
	require.Equal(t, int32(11), db.BestHeight())
	_, err = db.FetchMintHeight(&id)
	require.True(t, errors.Is(err, ErrCoinNotFound), err)

	// The disconnected coin can be minted again.
	require.NoError(t, db.ConnectBlock(12, blocks[2]))
	require.Equal(t, digest, db.MintSetDigest())

	// Disconnecting everything leaves an empty index.
	for h := int32(12); h >= 10; h-- {
		require.NoError(t, db.DisconnectBlock(h))
	}
	require.Equal(t, int32(-1), db.BestHeight())
	require.Equal(t, [64]byte{}, db.MintSetDigest())
	require.Equal(t, uint64(0), db.Stump().NumLeaves)
}

func TestDuplicateMints(t *testing.T) {
	params := testParams(t)
	db := openTestDB(t, params, t.TempDir())
	defer db.Close()

	c := coin(t, 11, zerocoin.Denom5)
	err := db.ConnectBlock(10, []*zerocoin.PublicCoin{c, c})
	require.True(t, errors.Is(err, ErrDuplicateMint), err)
	require.Equal(t, int32(-1), db.BestHeight())

	require.NoError(t, db.ConnectBlock(10, []*zerocoin.PublicCoin{c}))
	err = db.ConnectBlock(11, []*zerocoin.PublicCoin{c})
	require.True(t, errors.Is(err, ErrDuplicateMint), err)
}

func TestAccumulators(t *testing.T) {
	params := testParams(t)
	db := openTestDB(t, params, t.TempDir())
	defer db.Close()

	modulusV1, err := params.AccumulatorModulus(true)
	require.NoError(t, err)
	modulusV2, err := params.AccumulatorModulus(false)
	require.NoError(t, err)

	want := zerocoin.NewAccumulator(modulusV1, zerocoin.Denom1)
	for h := int32(10); h < 22; h++ {
		if h == 20 {
			want = zerocoin.NewAccumulator(modulusV2, zerocoin.Denom1)
		}

		start, err := db.FetchStartAccumulator(h, zerocoin.Denom1)
		require.NoError(t, err)
		require.True(t, start.Equal(want), "height %d", h)

		c := coin(t, int64(101+2*h), zerocoin.Denom1)
		require.NoError(t, db.ConnectBlock(h, []*zerocoin.PublicCoin{c}))
		require.NoError(t, want.Accumulate(c))

		acc, err := db.FetchAccumulator(h, zerocoin.Denom1)
		require.NoError(t, err)
		require.True(t, acc.Equal(want), "height %d", h)

		// Other denominations stay empty.
		acc, err = db.FetchAccumulator(h, zerocoin.Denom100)
		require.NoError(t, err)
		require.Equal(t, big.NewInt(961), acc.Value())
	}

	// Before the first block the empty accumulator is returned.
	acc, err := db.FetchAccumulator(5, zerocoin.Denom1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(961), acc.Value())

	_, err = db.FetchAccumulator(30, zerocoin.Denom1)
	require.True(t, errors.Is(err, ErrBlockNotFound), err)
}

func TestMintProofs(t *testing.T) {
	params := testParams(t)
	db := openTestDB(t, params, t.TempDir())
	defer db.Close()

	for h := int32(10); h < 17; h++ {
		mints := []*zerocoin.PublicCoin{coin(t, int64(1000+h), zerocoin.Denom50)}
		require.NoError(t, db.ConnectBlock(h, mints))
	}
	require.Equal(t, uint64(7), db.Stump().NumLeaves)

	for h := int32(10); h < 17; h++ {
		proof, err := db.ProveMintBlock(h)
		require.NoError(t, err)
		require.Equal(t, h, proof.Summary.Height)
		require.NoError(t, proof.Verify())

		// A summary of another block does not verify.
		forged := proof.Summary
		forged.Height++
		require.Error(t, VerifyMintBlock(proof.Stump, &forged, proof.Proof))
	}

	_, err := db.ProveMintBlock(17)
	require.True(t, errors.Is(err, ErrBlockNotFound), err)

	// Proofs keep working after a disconnect.
	require.NoError(t, db.DisconnectBlock(16))
	require.Equal(t, uint64(6), db.Stump().NumLeaves)
	proof, err := db.ProveMintBlock(15)
	require.NoError(t, err)
	require.NoError(t, proof.Verify())
}

func TestMintCacheIsolation(t *testing.T) {
	params := testParams(t)
	db := openTestDB(t, params, t.TempDir())
	defer db.Close()

	c1 := coin(t, 1013, zerocoin.Denom1)
	c2 := coin(t, 1019, zerocoin.Denom1)
	mints := []*zerocoin.PublicCoin{c1}
	require.NoError(t, db.ConnectBlock(10, mints))

	// Reusing the connected slice or coin leaves the index untouched.
	mints[0] = c2
	c1.Value.SetInt64(1021)

	fetched, err := db.FetchBlockMints(10)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	require.Equal(t, big.NewInt(1013), fetched[0].Value)

	// Neither are the mints handed out.
	fetched[0].Value.SetInt64(1031)
	fetched[0] = c2

	fetched, err = db.FetchBlockMints(10)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1013), fetched[0].Value)
}

func TestDisconnectSummaries(t *testing.T) {
	params := testParams(t)
	db := openTestDB(t, params, t.TempDir())
	defer db.Close()

	var stumps []utreexo.Stump
	for h := int32(10); h < 19; h++ {
		stumps = append(stumps, db.Stump())
		mints := []*zerocoin.PublicCoin{coin(t, int64(2000+h), zerocoin.Denom10)}
		require.NoError(t, db.ConnectBlock(h, mints))
	}

	// Every disconnect restores the stump of the block before it.
	for h := int32(18); h >= 13; h-- {
		require.NoError(t, db.DisconnectBlock(h))
		want := stumps[h-10]
		got := db.Stump()
		require.Equal(t, want.NumLeaves, got.NumLeaves, "height %d", h)
		require.Equal(t, want.Roots, got.Roots, "height %d", h)

		for proved := int32(10); proved < h; proved++ {
			proof, err := db.ProveMintBlock(proved)
			require.NoError(t, err)
			require.NoError(t, proof.Verify(), "height %d", proved)
		}
	}

	// Reconnecting other mints commits to the new blocks.
	for h := int32(13); h < 16; h++ {
		mints := []*zerocoin.PublicCoin{coin(t, int64(3000+h), zerocoin.Denom10)}
		require.NoError(t, db.ConnectBlock(h, mints))
		proof, err := db.ProveMintBlock(h)
		require.NoError(t, err)
		require.NoError(t, proof.Verify())
	}
}

func TestReopen(t *testing.T) {
	params := testParams(t)
	path := t.TempDir()

	db := openTestDB(t, params, path)
	for h := int32(10); h < 14; h++ {
		mints := []*zerocoin.PublicCoin{coin(t, int64(500+h), zerocoin.Denom1000)}
		require.NoError(t, db.ConnectBlock(h, mints))
	}
	stump := db.Stump()
	digest := db.MintSetDigest()
	acc, err := db.FetchAccumulator(13, zerocoin.Denom1000)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db = openTestDB(t, params, path)
	defer db.Close()

	require.Equal(t, int32(10), db.FirstHeight())
	require.Equal(t, int32(13), db.BestHeight())
	require.Equal(t, stump.NumLeaves, db.Stump().NumLeaves)
	require.Equal(t, stump.Roots, db.Stump().Roots)
	require.Equal(t, digest, db.MintSetDigest())

	reopened, err := db.FetchAccumulator(13, zerocoin.Denom1000)
	require.NoError(t, err)
	require.True(t, acc.Equal(reopened))

	// Duplicates are caught from disk after a restart.
	mints, err := db.FetchBlockMints(12)
	require.NoError(t, err)
	err = db.ConnectBlock(14, mints)
	require.True(t, errors.Is(err, ErrDuplicateMint), err)
}

func TestMintSummarySerialize(t *testing.T) {
	mints := []*zerocoin.PublicCoin{
		coin(t, 17, zerocoin.Denom1),
		coin(t, 19, zerocoin.Denom5),
	}
	summary := newMintSummary(1234, mints)

	var buf bytes.Buffer
	require.NoError(t, summary.Serialize(&buf))
	require.Equal(t, summary.SerializeSize(), buf.Len())

	var decoded MintSummary
	require.NoError(t, decoded.Deserialize(&buf))
	require.Equal(t, *summary, decoded)
	require.Equal(t, summary.LeafHash(), decoded.LeafHash())

	// The leaf commits to the mint order.
	swapped := newMintSummary(1234, []*zerocoin.PublicCoin{mints[1], mints[0]})
	require.NotEqual(t, summary.LeafHash(), swapped.LeafHash())
	require.NotEqual(t, utreexo.Hash{}, summary.LeafHash())
}
