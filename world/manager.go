package world

import "sync"

// ChunkKey identifies one chunk column within a dimension.
type ChunkKey struct {
	Dimension  Dimension
	ChunkX, ChunkZ int32
}

// ChunkManager is the concurrent map of loaded chunks a Session exposes to
// handlers. Per spec.md §3/§5: inserts are idempotently replaceable,
// deletes tolerate missing keys, and lookups support point reads by
// absolute block position via floor-division by 16.
type ChunkManager struct {
	mu     sync.RWMutex
	chunks map[ChunkKey]*Chunk
}

// NewChunkManager creates an empty manager.
func NewChunkManager() *ChunkManager {
	return &ChunkManager{chunks: make(map[ChunkKey]*Chunk)}
}

// Put inserts or replaces the chunk at (dim, x, z).
func (m *ChunkManager) Put(dim Dimension, x, z int32, c *Chunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks[ChunkKey{Dimension: dim, ChunkX: x, ChunkZ: z}] = c
}

// Get returns the chunk at (dim, x, z), or nil if not loaded.
func (m *ChunkManager) Get(dim Dimension, x, z int32) *Chunk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chunks[ChunkKey{Dimension: dim, ChunkX: x, ChunkZ: z}]
}

// Delete removes the chunk at (dim, x, z). A missing key is a no-op.
func (m *ChunkManager) Delete(dim Dimension, x, z int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chunks, ChunkKey{Dimension: dim, ChunkX: x, ChunkZ: z})
}

// Len returns the number of loaded chunks (for diagnostics/tests).
func (m *ChunkManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// ChunkCoords converts an absolute block position to its containing chunk
// coordinates via floor division by 16 (not truncating division, which
// would be wrong for negative coordinates).
func ChunkCoords(blockX, blockZ int) (chunkX, chunkZ int32) {
	return int32(floorDiv(blockX, 16)), int32(floorDiv(blockZ, 16))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// BlockAt looks up the block-state id at an absolute world position,
// resolving the owning chunk first. Returns 0 and false if the chunk
// containing the position is not loaded.
func (m *ChunkManager) BlockAt(dim Dimension, x, y, z int) (uint32, bool) {
	cx, cz := ChunkCoords(x, z)
	c := m.Get(dim, cx, cz)
	if c == nil {
		return 0, false
	}
	return c.BlockAt(x, y, z), true
}

// SetBlockAt patches a single block in its owning chunk, if loaded.
func (m *ChunkManager) SetBlockAt(dim Dimension, x, y, z int, stateID uint32) bool {
	cx, cz := ChunkCoords(x, z)
	c := m.Get(dim, cx, cz)
	if c == nil {
		return false
	}
	c.SetBlockAt(x, y, z, stateID)
	return true
}
