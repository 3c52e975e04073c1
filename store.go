package geonames

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Store is the read-mostly view over a persisted index, memory-mapped for
// zero-copy lookup per SPEC_FULL.md §5.D. A Store exclusively owns its
// mapping for its lifetime; Close unmaps it, after which any GeoObject
// values already returned to the caller remain valid Go values (they were
// decoded, not aliased), but further lookups must not be attempted.
type Store struct {
	file *os.File
	data []byte
	root rootHeader
}

// Open memory-maps mapPath read-only and validates its trailing root
// offset, per SPEC_FULL.md §5.D.
func Open(mapPath string) (*Store, error) {
	f, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrInputMissing, mapPath, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrBadFile, mapPath, err)
	}
	size := st.Size()
	if size <= trailerSize {
		f.Close()
		return nil, fmt.Errorf("%w: %s too small (%d bytes)", ErrBadFile, mapPath, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrBadFile, mapPath, err)
	}

	rootOffset := binary.LittleEndian.Uint64(data[len(data)-trailerSize:])
	if rootOffset >= uint64(len(data))-trailerSize {
		unix.Munmap(data)
		f.Close()
		return nil, fmt.Errorf("%w: invalid root offset %d in %s", ErrBadFile, rootOffset, mapPath)
	}

	root, err := unmarshalRootHeader(data[rootOffset:])
	if err != nil {
		unix.Munmap(data)
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}

	return &Store{file: f, data: data, root: root}, nil
}

// Close unmaps the store's file. The Store must not be used after Close.
func (s *Store) Close() error {
	if s == nil || s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// GetObject resolves id to its decoded GeoObject. ok is false if id is not
// present in the store.
func (s *Store) GetObject(id uint32) (GeoObject, bool) {
	section := s.data[s.root.ObjectIndexOffset:]
	n := int(s.root.ObjectIndexCount)

	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		rec := getObjectIndexRecord(section[mid*objectIndexRecordSize:])
		switch {
		case rec.ID == id:
			obj, err := decodeObjectAt(s.data, rec.Offset)
			if err != nil {
				return GeoObject{}, false
			}
			return obj, true
		case rec.ID < id:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return GeoObject{}, false
}

// IDsByNameHash returns the ids indexed under the given primary-name hash.
func (s *Store) IDsByNameHash(hash uint64) []uint32 {
	return s.idsByHash(s.root.NameHashOffset, s.root.NameHashCount, hash)
}

// IDsByAltHash returns the ids indexed under the given alternate-name hash.
func (s *Store) IDsByAltHash(hash uint64) []uint32 {
	return s.idsByHash(s.root.AltHashOffset, s.root.AltHashCount, hash)
}

func (s *Store) idsByHash(sectionOffset uint64, count uint32, hash uint64) []uint32 {
	section := s.data[sectionOffset:]
	n := int(count)

	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		rec := getHashIndexRecord(section[mid*hashIndexRecordSize:])
		switch {
		case rec.Hash == hash:
			return s.readIDs(rec.IDsOffset, rec.IDsCount)
		case rec.Hash < hash:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil
}

func (s *Store) readIDs(offset uint64, count uint32) []uint32 {
	ids := make([]uint32, count)
	buf := s.data[offset:]
	for i := range ids {
		ids[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return ids
}

// CountryByCode returns the id of the country entity with the given
// ISO-3166 alpha-2 code, if present.
func (s *Store) CountryByCode(code string) (uint32, bool) {
	return s.idByCode(s.root.CountryCodeOffset, s.root.CountryCodeCount, code)
}

// ProvinceByCode returns the id of the Adm1 entity whose composite key
// (CountryCode||ProvinceCode) matches code, if present.
func (s *Store) ProvinceByCode(code string) (uint32, bool) {
	return s.idByCode(s.root.ProvinceCodeOffset, s.root.ProvinceCodeCount, code)
}

func (s *Store) idByCode(sectionOffset uint64, count uint32, code string) (uint32, bool) {
	section := s.data[sectionOffset:]
	n := int(count)
	target := []byte(code)

	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		rec := getCodeIndexRecord(section[mid*codeIndexRecordSize:])
		switch c := bytes.Compare(rec.Code[:rec.Len], target); {
		case c == 0:
			return rec.ID, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}
