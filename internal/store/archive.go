package store

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"courseqa/internal/domain"
)

// archive is the persisted form of a store: the parallel sequences plus
// the declared dimensionality, gob-encoded into a single file.
type archive struct {
	Dimension int
	Contents  []string
	Vectors   [][]float64
	Metas     []domain.Metadata
}

// Save serializes the store to path in one atomic step: the archive is
// written to a temporary file and renamed over the target, so a crash
// mid-write never corrupts a previous archive at path.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	arc := archive{
		Dimension: s.dimension,
		Contents:  s.contents,
		Vectors:   s.vectors,
		Metas:     s.metas,
	}
	s.mu.RUnlock()

	if len(arc.Contents) != len(arc.Vectors) || len(arc.Contents) != len(arc.Metas) {
		return fmt.Errorf("%w: parallel sequences out of sync (%d/%d/%d)",
			domain.ErrPersistence, len(arc.Contents), len(arc.Vectors), len(arc.Metas))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := gob.NewEncoder(f).Encode(arc); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Load deserializes an archive into a fresh store. Inconsistent sequence
// lengths or a vector whose length disagrees with the declared
// dimensionality yield ErrCorruptArchive; I/O failures yield ErrPersistence.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	defer f.Close()

	var arc archive
	if err := gob.NewDecoder(f).Decode(&arc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArchive, err)
	}
	if len(arc.Contents) != len(arc.Vectors) || len(arc.Contents) != len(arc.Metas) {
		return nil, fmt.Errorf("%w: parallel sequences disagree (%d/%d/%d)",
			domain.ErrCorruptArchive, len(arc.Contents), len(arc.Vectors), len(arc.Metas))
	}
	for i, v := range arc.Vectors {
		if len(v) != arc.Dimension {
			return nil, fmt.Errorf("%w: vector %d has length %d, archive declares %d",
				domain.ErrCorruptArchive, i, len(v), arc.Dimension)
		}
	}
	return &Store{
		dimension: arc.Dimension,
		contents:  arc.Contents,
		vectors:   arc.Vectors,
		metas:     arc.Metas,
	}, nil
}
