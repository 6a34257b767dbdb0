package mpd

import (
	"sync/atomic"
	"time"
)

// PoolStats contains statistics about a connection pool.
//
// For Prometheus integration, expose these as:
//   - Gauges: TotalConns, IdleConns, ActiveConns
//   - Counters: AcquireCount, AcquireWaitCount, CreatedConns, DestroyedConns, AcquireErrors
type PoolStats struct {
	AcquireCount      uint64 // Total acquire attempts
	AcquireWaitCount  uint64 // Acquires that had to wait
	CreatedConns      uint64 // Total connections created
	DestroyedConns    uint64 // Total connections destroyed
	AcquireErrors     uint64 // Failed acquire attempts
	AcquireWaitTimeNs uint64 // Total nanoseconds spent waiting

	TotalConns  int32 // Total connections in pool (active + idle)
	IdleConns   int32 // Idle connections available
	ActiveConns int32 // Connections currently in use
}

// ClientStats contains statistics about client operations.
type ClientStats struct {
	Sets     uint64 // sticker set
	Gets     uint64 // sticker get
	GetHits  uint64 // sticker get that found the sticker
	Lists    uint64 // sticker list
	Deletes  uint64 // sticker delete
	Finds    uint64 // sticker find, with or without value filter
	Updates  uint64 // sticker inc and dec
	Listings uint64 // stickernames and stickertypes
	Errors   uint64 // Total errors across all operations
}

// poolStatsCollector updates pool stats. The zero value is ready to use.
type poolStatsCollector struct {
	acquireCount      atomic.Uint64
	acquireWaitCount  atomic.Uint64
	createdConns      atomic.Uint64
	destroyedConns    atomic.Uint64
	acquireErrors     atomic.Uint64
	acquireWaitTimeNs atomic.Uint64

	totalConns  atomic.Int32
	idleConns   atomic.Int32
	activeConns atomic.Int32
}

func (c *poolStatsCollector) recordAcquire() {
	c.acquireCount.Add(1)
}

func (c *poolStatsCollector) recordAcquireWait(duration time.Duration) {
	c.acquireWaitCount.Add(1)
	c.acquireWaitTimeNs.Add(uint64(duration.Nanoseconds()))
}

// recordCreate counts a new connection, handed out straight away.
func (c *poolStatsCollector) recordCreate() {
	c.createdConns.Add(1)
	c.totalConns.Add(1)
	c.activeConns.Add(1)
}

// recordDestroy counts the destruction of an active connection.
func (c *poolStatsCollector) recordDestroy() {
	c.destroyedConns.Add(1)
	c.totalConns.Add(-1)
	c.activeConns.Add(-1)
}

// recordDestroyIdle counts the destruction of a connection that was idle.
func (c *poolStatsCollector) recordDestroyIdle() {
	c.destroyedConns.Add(1)
	c.totalConns.Add(-1)
	c.idleConns.Add(-1)
}

func (c *poolStatsCollector) recordAcquireError() {
	c.acquireErrors.Add(1)
}

func (c *poolStatsCollector) recordAcquireFromIdle() {
	c.idleConns.Add(-1)
	c.activeConns.Add(1)
}

func (c *poolStatsCollector) recordRelease() {
	c.idleConns.Add(1)
	c.activeConns.Add(-1)
}

func (c *poolStatsCollector) snapshot() PoolStats {
	return PoolStats{
		AcquireCount:      c.acquireCount.Load(),
		AcquireWaitCount:  c.acquireWaitCount.Load(),
		CreatedConns:      c.createdConns.Load(),
		DestroyedConns:    c.destroyedConns.Load(),
		AcquireErrors:     c.acquireErrors.Load(),
		AcquireWaitTimeNs: c.acquireWaitTimeNs.Load(),
		TotalConns:        c.totalConns.Load(),
		IdleConns:         c.idleConns.Load(),
		ActiveConns:       c.activeConns.Load(),
	}
}

// clientStatsCollector updates client stats. The zero value is ready to use.
type clientStatsCollector struct {
	sets     atomic.Uint64
	gets     atomic.Uint64
	getHits  atomic.Uint64
	lists    atomic.Uint64
	deletes  atomic.Uint64
	finds    atomic.Uint64
	updates  atomic.Uint64
	listings atomic.Uint64
	errors   atomic.Uint64
}

func (c *clientStatsCollector) recordGet(found bool) {
	c.gets.Add(1)
	if found {
		c.getHits.Add(1)
	}
}

func (c *clientStatsCollector) recordSet()     { c.sets.Add(1) }
func (c *clientStatsCollector) recordList()    { c.lists.Add(1) }
func (c *clientStatsCollector) recordDelete()  { c.deletes.Add(1) }
func (c *clientStatsCollector) recordFind()    { c.finds.Add(1) }
func (c *clientStatsCollector) recordUpdate()  { c.updates.Add(1) }
func (c *clientStatsCollector) recordListing() { c.listings.Add(1) }
func (c *clientStatsCollector) recordError()   { c.errors.Add(1) }

func (c *clientStatsCollector) snapshot() ClientStats {
	return ClientStats{
		Sets:     c.sets.Load(),
		Gets:     c.gets.Load(),
		GetHits:  c.getHits.Load(),
		Lists:    c.lists.Load(),
		Deletes:  c.deletes.Load(),
		Finds:    c.finds.Load(),
		Updates:  c.updates.Load(),
		Listings: c.listings.Load(),
		Errors:   c.errors.Load(),
	}
}
