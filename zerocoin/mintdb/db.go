// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mintdb stores the zerocoin mints of every connected block together
// with the per-denomination accumulators after each block.
//
// A utreexo accumulator commits to one summary leaf per block so light
// clients can check the mints they are given against a compact stump.
package mintdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	dcrlru "github.com/decred/dcrd/lru"
	lru "github.com/hashicorp/golang-lru"
	"github.com/syndicateltd/synxd/chaincfg"
	"github.com/syndicateltd/synxd/zerocoin"
	"github.com/syndicateltd/synxd/zerocoin/mintdb/internal/mintset"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/utreexo/utreexo"
)

var (
	// ErrBlockNotFound is returned when a block outside the stored range is
	// requested.
	ErrBlockNotFound = errors.New("block not found in mint index")

	// ErrNotConnected is returned when a block does not extend the tip of
	// the index or is not the tip when disconnecting.
	ErrNotConnected = errors.New("block does not connect to the mint index tip")

	// ErrDuplicateMint is returned when a block mints a coin that already
	// exists.
	ErrDuplicateMint = errors.New("coin already minted")

	// ErrCoinNotFound is returned when a coin is not in the index.
	ErrCoinNotFound = errors.New("coin not found in mint index")

	// ErrZerocoinInactive is returned when a block carries mints before
	// zerocoin is active.
	ErrZerocoinInactive = errors.New("zerocoin is not active")
)

var (
	// mintsPrefix prefixes the serialized mints of a block.
	mintsPrefix = []byte("m")

	// accumulatorsPrefix prefixes the accumulators after a block.
	accumulatorsPrefix = []byte("a")

	// coinPrefix prefixes the mint height of a coin.
	coinPrefix = []byte("c")

	// stateKey holds the first and tip heights of the index.
	stateKey = []byte("tip")

	// digestKey holds the digest of every stored coin.
	digestKey = []byte("digest")
)

const (
	// DefaultMintCacheSize is the number of blocks whose mints are kept in
	// memory.
	DefaultMintCacheSize = 1024

	// DefaultCoinCacheSize is the number of recently minted coin IDs kept
	// in memory for duplicate checks.
	DefaultCoinCacheSize = 100000

	// maxAccumulatorSize bounds a serialized accumulator value.
	maxAccumulatorSize = 512
)

// heightKey returns prefix followed by the big-endian height.
func heightKey(prefix []byte, height int32) []byte {
	key := make([]byte, len(prefix)+4)
	copy(key, prefix)
	binary.BigEndian.PutUint32(key[len(prefix):], uint32(height))
	return key
}

// coinKey returns the key of the mint height of a coin.
func coinKey(id *chainhash.Hash) []byte {
	key := make([]byte, len(coinPrefix)+chainhash.HashSize)
	copy(key, coinPrefix)
	copy(key[len(coinPrefix):], id[:])
	return key
}

// Config holds the options of a mint index.
type Config struct {
	// Path is the leveldb directory.
	Path string

	// Params are the parameters of the network the index belongs to.
	Params *chaincfg.Params

	// MintCacheSize and CoinCacheSize override the default cache sizes.
	MintCacheSize int
	CoinCacheSize uint
}

// DB is a leveldb backed mint index.  It is safe for concurrent use.
type DB struct {
	params *chaincfg.Params
	db     *leveldb.DB

	mtx   sync.RWMutex
	empty bool
	first int32
	tip   int32

	// mintCache holds the mints of recently read blocks by height.
	mintCache *lru.Cache

	// knownCoins holds the IDs of recently minted coins.
	knownCoins dcrlru.Cache

	// digest covers the IDs of every stored coin.
	digest mintset.Digest

	// summaries commits to one leaf per block starting at first.
	summaries utreexo.Pollard
}

// Open opens or creates the mint index at cfg.Path.
func Open(cfg *Config) (*DB, error) {
	if cfg.Params == nil {
		return nil, errors.New("mint index requires network parameters")
	}

	mintCacheSize := cfg.MintCacheSize
	if mintCacheSize <= 0 {
		mintCacheSize = DefaultMintCacheSize
	}
	coinCacheSize := cfg.CoinCacheSize
	if coinCacheSize == 0 {
		coinCacheSize = DefaultCoinCacheSize
	}

	mintCache, err := lru.New(mintCacheSize)
	if err != nil {
		return nil, err
	}

	ldb, err := leveldb.OpenFile(cfg.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("open mint index: %w", err)
	}

	db := &DB{
		params:     cfg.Params,
		db:         ldb,
		empty:      true,
		mintCache:  mintCache,
		knownCoins: dcrlru.NewCache(coinCacheSize),
	}
	if err := db.loadState(); err != nil {
		ldb.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.db.Close()
}

// loadState reads the stored range and rebuilds the summary accumulator.
func (db *DB) loadState() error {
	db.summaries = utreexo.NewAccumulator()

	state, err := db.db.Get(stateKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		log.Infof("Created empty mint index")
		return nil
	}
	if err != nil {
		return err
	}
	if len(state) != 8 {
		return fmt.Errorf("corrupt mint index state of %d bytes", len(state))
	}

	db.empty = false
	db.first = int32(binary.BigEndian.Uint32(state[:4]))
	db.tip = int32(binary.BigEndian.Uint32(state[4:]))

	var digest mintset.Digest
	for h := db.first; h <= db.tip; h++ {
		mints, err := db.readMints(h)
		if err != nil {
			return err
		}
		summary := newMintSummary(h, mints)
		for i := range summary.CoinIDs {
			digest.AddCoin(&summary.CoinIDs[i])
		}
		if err := db.addSummary(summary); err != nil {
			return err
		}
	}

	// The digest is rewritten with every block, so it must match the
	// mints read back.
	stored, err := db.db.Get(digestKey, nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return err
	}
	want := digest.Bytes()
	if !bytes.Equal(stored, want[:]) {
		return fmt.Errorf("mint index is corrupt: coin digest %x does "+
			"not match the stored mints %x", stored, want)
	}
	db.digest = digest

	log.Infof("Loaded mint index for heights %d-%d", db.first, db.tip)
	return nil
}

// addSummary commits the summary of the next block.
func (db *DB) addSummary(summary *MintSummary) error {
	hash := summary.LeafHash()
	err := db.summaries.Modify(
		[]utreexo.Leaf{{Hash: hash, Remember: true}}, nil, utreexo.Proof{})
	return err
}

// undoSummary removes the summary of the tip block.  Leaves are never
// deleted from the accumulator so no previous root is ever empty.
func (db *DB) undoSummary() error {
	return db.summaries.Undo(1, utreexo.Proof{}, nil, nil)
}

// BestHeight returns the height of the last connected block, or -1 when the
// index is empty.
func (db *DB) BestHeight() int32 {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if db.empty {
		return -1
	}
	return db.tip
}

// FirstHeight returns the height of the first connected block, or -1 when the
// index is empty.
func (db *DB) FirstHeight() int32 {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if db.empty {
		return -1
	}
	return db.first
}

// ConnectBlock adds the mints of the block at height, which must extend the
// tip, and stores the accumulators after the block.
func (db *DB) ConnectBlock(height int32, mints []*zerocoin.PublicCoin) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	if !db.empty && height != db.tip+1 {
		return fmt.Errorf("%w: height %d, tip %d", ErrNotConnected, height,
			db.tip)
	}
	if len(mints) > 0 && !db.params.IsZerocoinActive(height) {
		return fmt.Errorf("%w at height %d", ErrZerocoinInactive, height)
	}
	if len(mints) > maxMintsPerBlock {
		return fmt.Errorf("block %d has %d mints, max is %d", height,
			len(mints), maxMintsPerBlock)
	}

	// Reject coins minted before or twice in this block.
	seen := make(map[chainhash.Hash]struct{}, len(mints))
	for _, coin := range mints {
		id := coin.ID()
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %v twice in block %d", ErrDuplicateMint,
				id, height)
		}
		seen[id] = struct{}{}

		known, err := db.coinKnown(&id)
		if err != nil {
			return err
		}
		if known {
			return fmt.Errorf("%w: %v", ErrDuplicateMint, id)
		}
	}

	accs, err := db.startAccumulators(height)
	if err != nil {
		return err
	}
	for _, coin := range mints {
		acc, ok := accs[coin.Denomination]
		if !ok {
			return fmt.Errorf("block %d: %v", height, coin.Denomination)
		}
		if err := acc.Accumulate(coin); err != nil {
			return err
		}
	}

	first := db.first
	if db.empty {
		first = height
	}

	batch := new(leveldb.Batch)
	serialized, err := serializeMints(mints)
	if err != nil {
		return err
	}
	batch.Put(heightKey(mintsPrefix, height), serialized)

	serialized, err = serializeAccumulators(accs)
	if err != nil {
		return err
	}
	batch.Put(heightKey(accumulatorsPrefix, height), serialized)

	var heightBuf [4]byte
	binary.BigEndian.PutUint32(heightBuf[:], uint32(height))
	for id := range seen {
		id := id
		batch.Put(coinKey(&id), heightBuf[:])
	}
	batch.Put(stateKey, serializeState(first, height))

	digest := db.digest
	for id := range seen {
		id := id
		digest.AddCoin(&id)
	}
	digestBytes := digest.Bytes()
	batch.Put(digestKey, digestBytes[:])

	if err := db.db.Write(batch, nil); err != nil {
		return fmt.Errorf("connect block %d: %w", height, err)
	}
	db.digest = digest

	db.empty = false
	db.first = first
	db.tip = height
	db.mintCache.Add(height, copyMints(mints))
	for id := range seen {
		db.knownCoins.Add(id)
	}

	if err := db.addSummary(newMintSummary(height, mints)); err != nil {
		return err
	}

	log.Debugf("Connected block %d with %d mints", height, len(mints))
	return nil
}

// DisconnectBlock removes the block at height, which must be the tip.
func (db *DB) DisconnectBlock(height int32) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	if db.empty || height != db.tip {
		return fmt.Errorf("%w: disconnecting %d, tip %d", ErrNotConnected,
			height, db.tip)
	}

	mints, err := db.readMints(height)
	if err != nil {
		return err
	}

	digest := db.digest
	batch := new(leveldb.Batch)
	batch.Delete(heightKey(mintsPrefix, height))
	batch.Delete(heightKey(accumulatorsPrefix, height))
	for _, coin := range mints {
		id := coin.ID()
		batch.Delete(coinKey(&id))
		digest.RemoveCoin(&id)
	}
	if height == db.first {
		batch.Delete(stateKey)
		batch.Delete(digestKey)
	} else {
		batch.Put(stateKey, serializeState(db.first, height-1))
		digestBytes := digest.Bytes()
		batch.Put(digestKey, digestBytes[:])
	}

	if err := db.db.Write(batch, nil); err != nil {
		return fmt.Errorf("disconnect block %d: %w", height, err)
	}
	db.digest = digest

	db.mintCache.Remove(height)
	for _, coin := range mints {
		db.knownCoins.Delete(coin.ID())
	}
	if height == db.first {
		db.empty = true
		db.first, db.tip = 0, 0
	} else {
		db.tip = height - 1
	}

	if err := db.undoSummary(); err != nil {
		return err
	}

	log.Debugf("Disconnected block %d with %d mints", height, len(mints))
	return nil
}

// FetchBlockMints returns the mints of the block at height in block order.
func (db *DB) FetchBlockMints(height int32) ([]*zerocoin.PublicCoin, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if !db.storedLocked(height) {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}
	return db.readMints(height)
}

// FetchAccumulator returns the accumulator of the denomination after the
// block at height.  Heights before the first stored block return the empty
// accumulator.
func (db *DB) FetchAccumulator(height int32, denom zerocoin.Denomination) (*zerocoin.Accumulator, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if !denom.IsValid() {
		return nil, fmt.Errorf("fetch accumulator: %v", denom)
	}
	if db.empty || height < db.first {
		return db.emptyAccumulator(height, denom)
	}
	if height > db.tip {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}

	accs, err := db.readAccumulators(height)
	if err != nil {
		return nil, err
	}
	return accs[denom], nil
}

// FetchStartAccumulator returns the accumulator the mints of the block at
// height are added to.
func (db *DB) FetchStartAccumulator(height int32, denom zerocoin.Denomination) (*zerocoin.Accumulator, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	if !denom.IsValid() {
		return nil, fmt.Errorf("fetch accumulator: %v", denom)
	}
	if db.empty || height <= db.first ||
		zerocoin.StartsNewAccumulator(db.params, height) {

		return db.emptyAccumulator(height, denom)
	}
	if height > db.tip+1 {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}

	accs, err := db.readAccumulators(height - 1)
	if err != nil {
		return nil, err
	}
	return accs[denom], nil
}

// FetchMintHeight returns the height of the block that minted the coin.
func (db *DB) FetchMintHeight(id *chainhash.Hash) (int32, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	value, err := db.db.Get(coinKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrCoinNotFound, id)
	}
	if err != nil {
		return 0, err
	}
	if len(value) != 4 {
		return 0, fmt.Errorf("corrupt mint height for coin %v", id)
	}
	return int32(binary.BigEndian.Uint32(value)), nil
}

// MintSetDigest returns the order independent digest of the IDs of every
// stored coin.
func (db *DB) MintSetDigest() [mintset.DigestSize]byte {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	return db.digest.Bytes()
}

// Stump returns the roots of the summary accumulator.
func (db *DB) Stump() utreexo.Stump {
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	return utreexo.Stump{
		Roots:     db.summaries.GetRoots(),
		NumLeaves: db.summaries.GetNumLeaves(),
	}
}

// ProveMintBlock returns a proof that the summary of the block at height is
// committed to by the current stump.
func (db *DB) ProveMintBlock(height int32) (*MintProof, error) {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	if !db.storedLocked(height) {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}

	mints, err := db.readMints(height)
	if err != nil {
		return nil, err
	}
	summary := newMintSummary(height, mints)

	proof, err := db.summaries.Prove([]utreexo.Hash{summary.LeafHash()})
	if err != nil {
		return nil, fmt.Errorf("prove mints at height %d: %w", height, err)
	}

	return &MintProof{
		Summary: *summary,
		Proof:   proof,
		Stump: utreexo.Stump{
			Roots:     db.summaries.GetRoots(),
			NumLeaves: db.summaries.GetNumLeaves(),
		},
	}, nil
}

// storedLocked returns whether the block at height is stored.
//
// This function MUST be called with the mutex held (for reads).
func (db *DB) storedLocked(height int32) bool {
	return !db.empty && height >= db.first && height <= db.tip
}

// coinKnown returns whether the coin was minted before.
func (db *DB) coinKnown(id *chainhash.Hash) (bool, error) {
	if db.knownCoins.Contains(*id) {
		return true, nil
	}
	return db.db.Has(coinKey(id), nil)
}

// emptyAccumulator returns the empty accumulator in force at height.
func (db *DB) emptyAccumulator(height int32, denom zerocoin.Denomination) (*zerocoin.Accumulator, error) {
	modulus, err := zerocoin.ModulusAt(db.params, height)
	if err != nil {
		return nil, err
	}
	return zerocoin.NewAccumulator(modulus, denom), nil
}

// startAccumulators returns the accumulators the mints of the next block are
// added to.
//
// This function MUST be called with the mutex held (for writes).
func (db *DB) startAccumulators(height int32) (map[zerocoin.Denomination]*zerocoin.Accumulator, error) {
	if !db.empty && !zerocoin.StartsNewAccumulator(db.params, height) {
		return db.readAccumulators(db.tip)
	}

	accs := make(map[zerocoin.Denomination]*zerocoin.Accumulator,
		len(zerocoin.Denominations))
	for _, denom := range zerocoin.Denominations {
		acc, err := db.emptyAccumulator(height, denom)
		if err != nil {
			return nil, err
		}
		accs[denom] = acc
	}
	return accs, nil
}

// readMints reads the mints of a stored block, going through the cache.
func (db *DB) readMints(height int32) ([]*zerocoin.PublicCoin, error) {
	if cached, ok := db.mintCache.Get(height); ok {
		return copyMints(cached.([]*zerocoin.PublicCoin)), nil
	}

	serialized, err := db.db.Get(heightKey(mintsPrefix, height), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}
	if err != nil {
		return nil, err
	}

	mints, err := deserializeMints(serialized)
	if err != nil {
		return nil, fmt.Errorf("mints at height %d: %w", height, err)
	}
	db.mintCache.Add(height, copyMints(mints))
	return mints, nil
}

// copyMints returns a deep copy of the mints so cached entries are never
// shared with callers.
func copyMints(mints []*zerocoin.PublicCoin) []*zerocoin.PublicCoin {
	copied := make([]*zerocoin.PublicCoin, len(mints))
	for i, coin := range mints {
		copied[i] = coin.Copy()
	}
	return copied
}

// readAccumulators reads the accumulators after a stored block.
func (db *DB) readAccumulators(height int32) (map[zerocoin.Denomination]*zerocoin.Accumulator, error) {
	serialized, err := db.db.Get(heightKey(accumulatorsPrefix, height), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: height %d", ErrBlockNotFound, height)
	}
	if err != nil {
		return nil, err
	}

	modulus, err := zerocoin.ModulusAt(db.params, height)
	if err != nil {
		return nil, err
	}
	accs, err := deserializeAccumulators(serialized, modulus)
	if err != nil {
		return nil, fmt.Errorf("accumulators at height %d: %w", height, err)
	}
	return accs, nil
}

// serializeState encodes the first and tip heights.
func serializeState(first, tip int32) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(first))
	binary.BigEndian.PutUint32(buf[4:], uint32(tip))
	return buf[:]
}

// serializeMints encodes the mints of a block as a count followed by the
// coins.
func serializeMints(mints []*zerocoin.PublicCoin) ([]byte, error) {
	size := wire.VarIntSerializeSize(uint64(len(mints)))
	for _, coin := range mints {
		size += coin.SerializeSize()
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := wire.WriteVarInt(buf, 0, uint64(len(mints))); err != nil {
		return nil, err
	}
	for _, coin := range mints {
		if err := coin.Serialize(buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// deserializeMints decodes the output of serializeMints.
func deserializeMints(serialized []byte) ([]*zerocoin.PublicCoin, error) {
	r := bytes.NewReader(serialized)
	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if count > maxMintsPerBlock {
		return nil, fmt.Errorf("%d mints, max is %d", count,
			maxMintsPerBlock)
	}

	mints := make([]*zerocoin.PublicCoin, 0, count)
	for i := uint64(0); i < count; i++ {
		coin := new(zerocoin.PublicCoin)
		if err := coin.Deserialize(r); err != nil {
			return nil, err
		}
		mints = append(mints, coin)
	}
	return mints, nil
}

// serializeAccumulators encodes the accumulator values in the order of
// zerocoin.Denominations.
func serializeAccumulators(accs map[zerocoin.Denomination]*zerocoin.Accumulator) ([]byte, error) {
	var buf bytes.Buffer
	for _, denom := range zerocoin.Denominations {
		acc, ok := accs[denom]
		if !ok {
			return nil, fmt.Errorf("missing %v accumulator", denom)
		}
		if err := wire.WriteVarBytes(&buf, 0, acc.Value().Bytes()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// deserializeAccumulators decodes the output of serializeAccumulators.
func deserializeAccumulators(serialized []byte, modulus *big.Int) (map[zerocoin.Denomination]*zerocoin.Accumulator, error) {
	r := bytes.NewReader(serialized)
	accs := make(map[zerocoin.Denomination]*zerocoin.Accumulator,
		len(zerocoin.Denominations))
	for _, denom := range zerocoin.Denominations {
		value, err := wire.ReadVarBytes(r, 0, maxAccumulatorSize,
			"accumulator")
		if err != nil {
			return nil, err
		}
		acc, err := zerocoin.NewAccumulatorFromValue(modulus, denom,
			new(big.Int).SetBytes(value))
		if err != nil {
			return nil, err
		}
		accs[denom] = acc
	}
	return accs, nil
}
