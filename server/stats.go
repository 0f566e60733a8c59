package server

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/allfs/quadstorvtl/spool"
)

type Counters struct {
	// Submissions recorded and spooled
	Accepted uint64 `json:"accepted"`

	// Submissions turned away by validation or uniqueness checks
	Rejected uint64 `json:"rejected"`
}

type Stats struct {
	vtl, drive, cartridge Counters
}

func (stats *Stats) counters(kind string) *Counters {
	switch kind {
	case spool.KindVTL:
		return &stats.vtl
	case spool.KindDrive:
		return &stats.drive
	case spool.KindCartridge:
		return &stats.cartridge
	}

	return nil
}

func (stats *Stats) Accepted(kind string) {
	if c := stats.counters(kind); c != nil {
		atomic.AddUint64(&c.Accepted, 1)
	}
}

func (stats *Stats) Rejected(kind string) {
	if c := stats.counters(kind); c != nil {
		atomic.AddUint64(&c.Rejected, 1)
	}
}

// Snapshot is a copy of the counters keyed by submission kind.
type Snapshot map[string]Counters

func (stats *Stats) Snapshot() Snapshot {
	snap := make(Snapshot)
	for _, kind := range spool.Kinds {
		c := stats.counters(kind)
		snap[kind] = Counters{
			Accepted: atomic.LoadUint64(&c.Accepted),
			Rejected: atomic.LoadUint64(&c.Rejected),
		}
	}

	return snap
}

func (snap Snapshot) String() string {
	parts := make([]string, 0, len(spool.Kinds))
	for _, kind := range spool.Kinds {
		parts = append(parts, fmt.Sprintf("%s=%d/%d", kind, snap[kind].Accepted, snap[kind].Rejected))
	}

	return strings.Join(parts, " ")
}
