// Zstd-compressed snapshot archive — a full dump of the world and record
// state written on a fixed cadence, for offline inspection and replay.
package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"colonymind/internal/relation"
	"colonymind/internal/world"
)

// SnapshotHeader identifies a snapshot file.
type SnapshotHeader struct {
	Version int    `json:"version"`
	Tick    uint64 `json:"tick"`
	Seed    int64  `json:"seed"`
}

// ObjectV1 is the serialized form of a live object.
type ObjectV1 struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Caps      world.Capability `json:"caps"`
	Category  world.Category   `json:"category"`
	Pos       world.Pos        `json:"pos"`
	Hits      int              `json:"hits,omitempty"`
	HitsMax   int              `json:"hits_max,omitempty"`
	Energy    int              `json:"energy,omitempty"`
	EnergyCap int              `json:"energy_cap,omitempty"`
	Body      []world.BodyPart `json:"body,omitempty"`
	TTL       int              `json:"ttl,omitempty"`
	Progress  int              `json:"progress,omitempty"`
	Total     int              `json:"progress_total,omitempty"`
	Level     int              `json:"level,omitempty"`
}

// SnapshotV1 is the complete archived state at one tick.
type SnapshotV1 struct {
	Header  SnapshotHeader     `json:"header"`
	Objects []ObjectV1         `json:"objects"`
	Records []*relation.Record `json:"records"`
}

// BuildSnapshot captures the current world and store state.
func BuildSnapshot(w *world.World, s *relation.Store, tick uint64) SnapshotV1 {
	snap := SnapshotV1{
		Header:  SnapshotHeader{Version: 1, Tick: tick, Seed: w.Seed},
		Records: s.Records(),
	}
	for _, o := range w.All() {
		snap.Objects = append(snap.Objects, ObjectV1{
			ID:        string(o.ID),
			Name:      o.Name,
			Caps:      o.Caps,
			Category:  o.Category,
			Pos:       o.Pos,
			Hits:      o.Hits,
			HitsMax:   o.HitsMax,
			Energy:    o.Energy,
			EnergyCap: o.EnergyCap,
			Body:      o.Body,
			TTL:       o.TTL,
			Progress:  o.Progress,
			Total:     o.ProgressTotal,
			Level:     o.Level,
		})
	}
	return snap
}

// WriteSnapshot writes a snapshot as zstd-compressed JSON, atomically via
// a temp file rename.
func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	zw, err := zstd.NewWriter(bw)
	if err != nil {
		f.Close()
		return err
	}

	enc := json.NewEncoder(zw)
	if err := enc.Encode(&snap); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadSnapshot loads a zstd-compressed snapshot.
func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1

	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		return snap, err
	}
	defer zr.Close()

	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
