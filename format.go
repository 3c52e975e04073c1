package geonames

import (
	"encoding/binary"
	"fmt"
	"math"
)

// format.go defines the persisted index's binary layout: a sequence of
// sections, each a flat array of fixed-size records (plus a shared heap of
// variable-length payloads), followed by a root header recording each
// section's byte offset and record count, followed by an 8-byte
// little-endian trailer giving the root header's own offset.
//
// Every reference in this layout is a byte offset from the start of the
// mapped file, never a pointer — the layout is therefore mapping-address
// independent, per SPEC_FULL.md §5.D. Grounded on the
// header/offset/magic style of other_examples/hupe1980-vecgo__format.go.

const trailerSize = 8 // little-endian uint64 root offset, at file_size-8

// rootHeader is written once, after every section, and located via the
// trailer. Each *Offset field is a byte offset from the start of the file;
// each *Count field is the number of fixed-size records in that section.
type rootHeader struct {
	ObjectIndexOffset uint64
	ObjectIndexCount  uint32

	NameHashOffset uint64
	NameHashCount  uint32

	AltHashOffset uint64
	AltHashCount  uint32

	CountryCodeOffset uint64
	CountryCodeCount  uint32

	ProvinceCodeOffset uint64
	ProvinceCodeCount  uint32
}

const rootHeaderSize = 8*5 + 4*5

func (h rootHeader) marshal() []byte {
	buf := make([]byte, rootHeaderSize)
	binary.LittleEndian.PutUint64(buf[0:], h.ObjectIndexOffset)
	binary.LittleEndian.PutUint32(buf[8:], h.ObjectIndexCount)
	binary.LittleEndian.PutUint64(buf[12:], h.NameHashOffset)
	binary.LittleEndian.PutUint32(buf[20:], h.NameHashCount)
	binary.LittleEndian.PutUint64(buf[24:], h.AltHashOffset)
	binary.LittleEndian.PutUint32(buf[32:], h.AltHashCount)
	binary.LittleEndian.PutUint64(buf[36:], h.CountryCodeOffset)
	binary.LittleEndian.PutUint32(buf[44:], h.CountryCodeCount)
	binary.LittleEndian.PutUint64(buf[48:], h.ProvinceCodeOffset)
	binary.LittleEndian.PutUint32(buf[56:], h.ProvinceCodeCount)
	return buf
}

func unmarshalRootHeader(data []byte) (rootHeader, error) {
	if len(data) < rootHeaderSize {
		return rootHeader{}, fmt.Errorf("%w: root header truncated", ErrBadFile)
	}
	var h rootHeader
	h.ObjectIndexOffset = binary.LittleEndian.Uint64(data[0:])
	h.ObjectIndexCount = binary.LittleEndian.Uint32(data[8:])
	h.NameHashOffset = binary.LittleEndian.Uint64(data[12:])
	h.NameHashCount = binary.LittleEndian.Uint32(data[20:])
	h.AltHashOffset = binary.LittleEndian.Uint64(data[24:])
	h.AltHashCount = binary.LittleEndian.Uint32(data[32:])
	h.CountryCodeOffset = binary.LittleEndian.Uint64(data[36:])
	h.CountryCodeCount = binary.LittleEndian.Uint32(data[44:])
	h.ProvinceCodeOffset = binary.LittleEndian.Uint64(data[48:])
	h.ProvinceCodeCount = binary.LittleEndian.Uint32(data[56:])
	return h, nil
}

// objectIndexRecord maps one GeoObject's id to the byte offset of its
// encoded record in the object heap (see encodeObject/decodeObjectAt).
// The section is sorted by ID so GetObject can binary-search it.
type objectIndexRecord struct {
	ID     uint32
	Offset uint64
}

const objectIndexRecordSize = 4 + 8

// hashIndexRecord maps one 64-bit hash to a contiguous run of uint32 ids in
// the id heap. The section is sorted by Hash and each hash appears once
// (every id sharing a hash is grouped into that hash's run), so a lookup
// binary-searches for the single matching record.
type hashIndexRecord struct {
	Hash      uint64
	IDsOffset uint64
	IDsCount  uint32
}

const hashIndexRecordSize = 8 + 8 + 4

// codeIndexRecord maps a short ASCII code (country code, or
// countryCode+provinceCode) to a single id. The section is sorted
// lexicographically by the code bytes.
type codeIndexRecord struct {
	Code [maxCodeLen]byte // zero-padded; country codes use 2 bytes, composite country+province codes more
	Len  uint8
	ID   uint32
}

// maxCodeLen bounds composite CountryCode||ProvinceCode keys. GeoNames
// admin1 codes are short (typically 1-3 chars beyond the 2-char country
// code); 16 bytes leaves ample room without making the index sparse.
const maxCodeLen = 16

const codeIndexRecordSize = maxCodeLen + 1 + 4

func marshalCode(code string) [maxCodeLen]byte {
	var b [maxCodeLen]byte
	copy(b[:], code)
	return b
}

func putObjectIndexRecord(buf []byte, r objectIndexRecord) {
	binary.LittleEndian.PutUint32(buf[0:], r.ID)
	binary.LittleEndian.PutUint64(buf[4:], r.Offset)
}

func getObjectIndexRecord(buf []byte) objectIndexRecord {
	return objectIndexRecord{
		ID:     binary.LittleEndian.Uint32(buf[0:]),
		Offset: binary.LittleEndian.Uint64(buf[4:]),
	}
}

func putHashIndexRecord(buf []byte, r hashIndexRecord) {
	binary.LittleEndian.PutUint64(buf[0:], r.Hash)
	binary.LittleEndian.PutUint64(buf[8:], r.IDsOffset)
	binary.LittleEndian.PutUint32(buf[16:], r.IDsCount)
}

func getHashIndexRecord(buf []byte) hashIndexRecord {
	return hashIndexRecord{
		Hash:      binary.LittleEndian.Uint64(buf[0:]),
		IDsOffset: binary.LittleEndian.Uint64(buf[8:]),
		IDsCount:  binary.LittleEndian.Uint32(buf[16:]),
	}
}

func putCodeIndexRecord(buf []byte, r codeIndexRecord) {
	copy(buf[0:maxCodeLen], r.Code[:])
	buf[maxCodeLen] = r.Len
	binary.LittleEndian.PutUint32(buf[maxCodeLen+1:], r.ID)
}

func getCodeIndexRecord(buf []byte) codeIndexRecord {
	var r codeIndexRecord
	copy(r.Code[:], buf[0:maxCodeLen])
	r.Len = buf[maxCodeLen]
	r.ID = binary.LittleEndian.Uint32(buf[maxCodeLen+1:])
	return r
}

func (r codeIndexRecord) code() string {
	return string(r.Code[:r.Len])
}

// encodeObject serializes one GeoObject as a variable-length record:
//
//	ID uint32, Type uint32, Latitude float64, Longitude float64, Population uint64,
//	NameLen uint32, Name (NameLen runes, uint32 each),
//	AsciiNameLen uint32, AsciiName bytes,
//	AltHashCount uint32, AltHashes (AltHashCount uint64 each),
//	CountryCodeLen uint8, CountryCode bytes,
//	ProvinceCodeLen uint8, ProvinceCode bytes.
//
// Records are read sequentially from a known offset, so no further framing
// is needed beyond this fixed field order.
func encodeObject(obj GeoObject) []byte {
	size := 4 + 4 + 8 + 8 + 8 +
		4 + len(obj.Name)*4 +
		4 + len(obj.AsciiName) +
		4 + len(obj.AltHashes)*8 +
		1 + len(obj.CountryCode) +
		1 + len(obj.ProvinceCode)
	buf := make([]byte, size)
	pos := 0

	binary.LittleEndian.PutUint32(buf[pos:], obj.ID)
	pos += 4
	binary.LittleEndian.PutUint32(buf[pos:], uint32(obj.Type))
	pos += 4
	binary.LittleEndian.PutUint64(buf[pos:], math.Float64bits(obj.Latitude))
	pos += 8
	binary.LittleEndian.PutUint64(buf[pos:], math.Float64bits(obj.Longitude))
	pos += 8
	binary.LittleEndian.PutUint64(buf[pos:], obj.Population)
	pos += 8

	binary.LittleEndian.PutUint32(buf[pos:], uint32(len(obj.Name)))
	pos += 4
	for _, r := range obj.Name {
		binary.LittleEndian.PutUint32(buf[pos:], uint32(r))
		pos += 4
	}

	binary.LittleEndian.PutUint32(buf[pos:], uint32(len(obj.AsciiName)))
	pos += 4
	pos += copy(buf[pos:], obj.AsciiName)

	binary.LittleEndian.PutUint32(buf[pos:], uint32(len(obj.AltHashes)))
	pos += 4
	for _, h := range obj.AltHashes {
		binary.LittleEndian.PutUint64(buf[pos:], h)
		pos += 8
	}

	buf[pos] = uint8(len(obj.CountryCode))
	pos++
	pos += copy(buf[pos:], obj.CountryCode)

	buf[pos] = uint8(len(obj.ProvinceCode))
	pos++
	pos += copy(buf[pos:], obj.ProvinceCode)

	return buf
}

// decodeObjectAt decodes the GeoObject record starting at offset within
// data, returning ErrBadFile if the offset is out of range or the record
// is truncated.
func decodeObjectAt(data []byte, offset uint64) (GeoObject, error) {
	if offset >= uint64(len(data)) {
		return GeoObject{}, fmt.Errorf("%w: object offset out of range", ErrBadFile)
	}
	buf := data[offset:]
	var obj GeoObject
	pos := 0

	need := func(n int) error {
		if pos+n > len(buf) {
			return fmt.Errorf("%w: object record truncated", ErrBadFile)
		}
		return nil
	}

	if err := need(24); err != nil {
		return GeoObject{}, err
	}
	obj.ID = binary.LittleEndian.Uint32(buf[pos:])
	pos += 4
	obj.Type = GeoType(binary.LittleEndian.Uint32(buf[pos:]))
	pos += 4
	obj.Latitude = math.Float64frombits(binary.LittleEndian.Uint64(buf[pos:]))
	pos += 8
	obj.Longitude = math.Float64frombits(binary.LittleEndian.Uint64(buf[pos:]))
	pos += 8
	obj.Population = binary.LittleEndian.Uint64(buf[pos:])
	pos += 8

	if err := need(4); err != nil {
		return GeoObject{}, err
	}
	nameLen := int(binary.LittleEndian.Uint32(buf[pos:]))
	pos += 4
	if err := need(nameLen * 4); err != nil {
		return GeoObject{}, err
	}
	obj.Name = make([]rune, nameLen)
	for i := 0; i < nameLen; i++ {
		obj.Name[i] = rune(binary.LittleEndian.Uint32(buf[pos:]))
		pos += 4
	}

	if err := need(4); err != nil {
		return GeoObject{}, err
	}
	asciiLen := int(binary.LittleEndian.Uint32(buf[pos:]))
	pos += 4
	if err := need(asciiLen); err != nil {
		return GeoObject{}, err
	}
	obj.AsciiName = string(buf[pos : pos+asciiLen])
	pos += asciiLen

	if err := need(4); err != nil {
		return GeoObject{}, err
	}
	altCount := int(binary.LittleEndian.Uint32(buf[pos:]))
	pos += 4
	if err := need(altCount * 8); err != nil {
		return GeoObject{}, err
	}
	if altCount > 0 {
		obj.AltHashes = make([]uint64, altCount)
		for i := 0; i < altCount; i++ {
			obj.AltHashes[i] = binary.LittleEndian.Uint64(buf[pos:])
			pos += 8
		}
	}

	if err := need(1); err != nil {
		return GeoObject{}, err
	}
	ccLen := int(buf[pos])
	pos++
	if err := need(ccLen); err != nil {
		return GeoObject{}, err
	}
	obj.CountryCode = string(buf[pos : pos+ccLen])
	pos += ccLen

	if err := need(1); err != nil {
		return GeoObject{}, err
	}
	pcLen := int(buf[pos])
	pos++
	if err := need(pcLen); err != nil {
		return GeoObject{}, err
	}
	obj.ProvinceCode = string(buf[pos : pos+pcLen])
	pos += pcLen

	return obj, nil
}
