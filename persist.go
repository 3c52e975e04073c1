package geonames

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"
)

// countingWriter tracks the number of bytes written so far, giving each
// section's starting offset for the root header without a second pass.
type countingWriter struct {
	w   *bufio.Writer
	pos uint64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.pos += uint64(n)
	return n, err
}

// buildIndex is the builder's in-memory accumulator: the "build-time"
// concrete store implementation referenced by SPEC_FULL.md §5.C. It is
// converted to the persisted, mapping-address-independent layout in one
// pass by persistStore.
type buildIndex struct {
	objects map[uint32]*GeoObject

	nameHash map[uint64][]uint32
	altHash  map[uint64][]uint32

	countryByCode  map[string]uint32
	provinceByCode map[string]uint32
}

func newBuildIndex() *buildIndex {
	return &buildIndex{
		objects:        make(map[uint32]*GeoObject),
		nameHash:       make(map[uint64][]uint32),
		altHash:        make(map[uint64][]uint32),
		countryByCode:  make(map[string]uint32),
		provinceByCode: make(map[string]uint32),
	}
}

// add implements the merge-on-id rule of SPEC_FULL.md §5.C: a previously
// unseen id is inserted and indexed; a repeated id is merged, adopting the
// new population only if the stored one was zero.
func (b *buildIndex) add(obj GeoObject) {
	if existing, ok := b.objects[obj.ID]; ok {
		if existing.Population == 0 {
			existing.Population = obj.Population
		}
		return
	}

	stored := obj
	b.objects[obj.ID] = &stored

	nameHash := NameHash(obj.Name)
	b.nameHash[nameHash] = append(b.nameHash[nameHash], obj.ID)
	for _, h := range obj.AltHashes {
		b.altHash[h] = append(b.altHash[h], obj.ID)
	}

	if stored.IsCountry() {
		b.countryByCode[stored.CountryCode] = obj.ID
	}
	if stored.IsProvince() {
		b.provinceByCode[stored.CountryCode+stored.ProvinceCode] = obj.ID
	}
}

// persistStore writes idx to w in the layout documented in format.go,
// finishing with the 8-byte little-endian root-offset trailer.
func persistStore(w io.Writer, idx *buildIndex) error {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	// 1. Object heap, in ascending id order (gives us a pre-sorted object index for free).
	ids := make([]uint32, 0, len(idx.objects))
	for id := range idx.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	objectRecords := make([]objectIndexRecord, 0, len(ids))
	for _, id := range ids {
		offset := cw.pos
		if _, err := cw.Write(encodeObject(*idx.objects[id])); err != nil {
			return err
		}
		objectRecords = append(objectRecords, objectIndexRecord{ID: id, Offset: offset})
	}

	// 2. Object index (sorted by ID).
	objectIndexOffset := cw.pos
	for _, r := range objectRecords {
		buf := make([]byte, objectIndexRecordSize)
		putObjectIndexRecord(buf, r)
		if _, err := cw.Write(buf); err != nil {
			return err
		}
	}

	// 3+4. Name-hash id heap + sorted hash index.
	nameHashOffset, nameHashCount, err := writeHashIndex(cw, idx.nameHash)
	if err != nil {
		return err
	}

	// 5+6. Alt-hash id heap + sorted hash index.
	altHashOffset, altHashCount, err := writeHashIndex(cw, idx.altHash)
	if err != nil {
		return err
	}

	// 7. Country-by-code, sorted by code.
	countryOffset, countryCount, err := writeCodeIndex(cw, idx.countryByCode)
	if err != nil {
		return err
	}

	// 8. Province-by-code, sorted by code.
	provinceOffset, provinceCount, err := writeCodeIndex(cw, idx.provinceByCode)
	if err != nil {
		return err
	}

	root := rootHeader{
		ObjectIndexOffset:  objectIndexOffset,
		ObjectIndexCount:   uint32(len(objectRecords)),
		NameHashOffset:     nameHashOffset,
		NameHashCount:      nameHashCount,
		AltHashOffset:      altHashOffset,
		AltHashCount:       altHashCount,
		CountryCodeOffset:  countryOffset,
		CountryCodeCount:   countryCount,
		ProvinceCodeOffset: provinceOffset,
		ProvinceCodeCount:  provinceCount,
	}

	rootOffset := cw.pos
	if _, err := cw.Write(root.marshal()); err != nil {
		return err
	}

	trailer := make([]byte, trailerSize)
	binary.LittleEndian.PutUint64(trailer, rootOffset)
	if _, err := cw.Write(trailer); err != nil {
		return err
	}

	return bw.Flush()
}

// writeHashIndex flattens a hash->ids multimap into an id heap followed by
// a hash index sorted ascending by hash, and returns the index's offset
// and record count.
func writeHashIndex(cw *countingWriter, m map[uint64][]uint32) (offset uint64, count uint32, err error) {
	hashes := make([]uint64, 0, len(m))
	for h := range m {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	records := make([]hashIndexRecord, 0, len(hashes))
	for _, h := range hashes {
		ids := m[h]
		idsOffset := cw.pos
		for _, id := range ids {
			buf := make([]byte, 4)
			binary.LittleEndian.PutUint32(buf, id)
			if _, err := cw.Write(buf); err != nil {
				return 0, 0, err
			}
		}
		records = append(records, hashIndexRecord{Hash: h, IDsOffset: idsOffset, IDsCount: uint32(len(ids))})
	}

	indexOffset := cw.pos
	for _, r := range records {
		buf := make([]byte, hashIndexRecordSize)
		putHashIndexRecord(buf, r)
		if _, err := cw.Write(buf); err != nil {
			return 0, 0, err
		}
	}
	return indexOffset, uint32(len(records)), nil
}

// writeCodeIndex writes a code->id map as an array sorted lexicographically
// by code.
func writeCodeIndex(cw *countingWriter, m map[string]uint32) (offset uint64, count uint32, err error) {
	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	indexOffset := cw.pos
	for _, c := range codes {
		buf := make([]byte, codeIndexRecordSize)
		putCodeIndexRecord(buf, codeIndexRecord{Code: marshalCode(c), Len: uint8(len(c)), ID: m[c]})
		if _, err := cw.Write(buf); err != nil {
			return 0, 0, err
		}
	}
	return indexOffset, uint32(len(codes)), nil
}
