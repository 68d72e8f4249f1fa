package search

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/zobrist"
)

const (
	entrySize = 16

	minSizePowerOf2 = 16
	maxSizePowerOf2 = 22
)

// 16 bytes (entrySize)
type cacheEntry struct {
	hash  uint64
	score int32
	valid bool
}

// EvalCache remembers leaf evaluations by zobrist hash. Scores are stored
// from Black's point of view; evaluation is antisymmetric in the two
// colours, so White's score is the negation.
//
// A cache belongs to one Solver and is not safe for concurrent use.
type EvalCache struct {
	table        []cacheEntry
	sizePowerOf2 int
	sizeMask     uint64
	fraction     float64

	created      uint64
	lookups      uint64
	hits         uint64
	t2collisions uint64

	zobrist *zobrist.Zobrist
}

// NewEvalCache allocates a cache for boards of dimension boardDim using
// roughly fractionOfMemory of the machine's memory.
func NewEvalCache(fractionOfMemory float64, boardDim int) *EvalCache {
	c := &EvalCache{}
	c.Reset(fractionOfMemory, boardDim)
	return c
}

func (c *EvalCache) lookup(zval uint64) (int, bool) {
	c.lookups++
	e := c.table[zval&c.sizeMask]
	if !e.valid {
		return 0, false
	}
	if e.hash != zval {
		// some other position occupies this slot.
		c.t2collisions++
		return 0, false
	}
	c.hits++
	return int(e.score), true
}

func (c *EvalCache) store(zval uint64, score int) {
	// just overwrite whatever is there.
	c.table[zval&c.sizeMask] = cacheEntry{hash: zval, score: int32(score), valid: true}
	c.created++
}

// Reset resizes and clears the table, and makes sure the hash keys fit a
// board of dimension boardDim.
func (c *EvalCache) Reset(fractionOfMemory float64, boardDim int) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	c.sizePowerOf2 = minSizePowerOf2
	if desiredNElems >= 1 {
		c.sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	c.sizePowerOf2 = max(minSizePowerOf2, min(maxSizePowerOf2, c.sizePowerOf2))
	c.fraction = fractionOfMemory

	numElems := 1 << c.sizePowerOf2
	c.sizeMask = uint64(numElems - 1)
	reset := false
	if c.table != nil && len(c.table) == numElems {
		reset = true
		clear(c.table)
	} else {
		c.table = make([]cacheEntry, numElems)
	}
	if c.zobrist == nil || c.zobrist.BoardDim() != boardDim {
		c.zobrist = &zobrist.Zobrist{}
		c.zobrist.Initialize(boardDim)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("eval-cache-size")

	c.created = 0
	c.lookups = 0
	c.hits = 0
	c.t2collisions = 0
}

// ensureDim re-keys the cache when it is asked to serve a board of a
// different dimension. Old entries are meaningless under new keys.
func (c *EvalCache) ensureDim(boardDim int) {
	if c.zobrist.BoardDim() != boardDim {
		c.Reset(c.fraction, boardDim)
	}
}

func (c *EvalCache) Zobrist() *zobrist.Zobrist {
	return c.zobrist
}

// Stats returns the number of stores, lookups, hits and slot collisions
// since the last reset.
func (c *EvalCache) Stats() (created, lookups, hits, collisions uint64) {
	return c.created, c.lookups, c.hits, c.t2collisions
}

// Len is the number of slots in the table.
func (c *EvalCache) Len() int {
	return len(c.table)
}
