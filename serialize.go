/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package indolent

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

const serializedVersion = 1

// Serializer persists a Document to a compact on-disk form and reads it
// back, without re-running Compact or Parse. A Serializer can be reused
// across calls but not used concurrently; it keeps its scratch buffers
// between calls specifically to avoid reallocating them.
//
// Both segments of the serialized form -- the compact bytes and the
// node array -- are compressed independently, the same way the teacher
// this package is built from compresses its tape and string segments
// independently. There is no string table here: unlike a materialized
// value tree, this package's Document never extracts string bytes out
// of Compact, so there is nothing to deduplicate.
type Serializer struct {
	compCompact, compNodes uint8
	fasterComp             bool

	compactCompBuf []byte
	nodesBuf       []byte
	nodesCompBuf   []byte

	maxBlockSize uint64
}

// NewSerializer creates a Serializer with CompressDefault applied, then
// any options.
func NewSerializer(opts ...SerializerOption) *Serializer {
	initSerializerOnce.Do(initSerializer)
	s := &Serializer{maxBlockSize: 1 << 31}
	s.CompressMode(CompressDefault)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompressMode is the compression level applied to both segments of the
// serialized form.
type CompressMode uint8

const (
	// CompressNone applies no compression at all.
	CompressNone CompressMode = iota
	// CompressFast applies light, fast s2 compression.
	CompressFast
	// CompressDefault applies s2 compression in its better-ratio mode.
	CompressDefault
	// CompressBest applies zstd compression for the smallest output.
	CompressBest
)

// CompressMode sets the Serializer's compression level. It is also
// reachable through WithCompressMode at construction time.
func (s *Serializer) CompressMode(c CompressMode) {
	s.fasterComp = false
	switch c {
	case CompressNone:
		s.compCompact = blockTypeUncompressed
		s.compNodes = blockTypeUncompressed
	case CompressFast:
		s.compCompact = blockTypeS2
		s.compNodes = blockTypeS2
		s.fasterComp = true
	case CompressDefault:
		s.compCompact = blockTypeS2
		s.compNodes = blockTypeS2
	case CompressBest:
		s.compCompact = blockTypeZstd
		s.compNodes = blockTypeZstd
	default:
		panic("indolent: unknown compression mode")
	}
}

const nodeByteSize = 8

// Serialize appends the serialized form of doc to dst and returns the
// extended slice.
//
// Layout:
//   - version (byte)
//   - total remaining size (varuint)
//   - uncompressed compact length (varuint)
//   - compact block: block size (varuint) + mode byte + compressed data
//   - uncompressed node count (varuint)
//   - node block: block size (varuint) + mode byte + compressed data,
//     each node packed as two little-endian uint32s (Children, LengthInBytes)
//
// Every block is individually length-prefixed so Deserialize can size its
// destination buffer and detect truncation before it starts decompressing,
// rather than relying on the compressor to report EOF at the right place.
func (s *Serializer) Serialize(dst []byte, doc *Document) []byte {
	var wg sync.WaitGroup

	s.nodesBuf = s.nodesBuf[:0]
	var tmp [nodeByteSize]byte
	for _, node := range doc.Nodes {
		binary.LittleEndian.PutUint32(tmp[0:4], node.Children)
		binary.LittleEndian.PutUint32(tmp[4:8], node.LengthInBytes)
		s.nodesBuf = append(s.nodesBuf, tmp[:]...)
	}

	compactWr, compactDone := encBlock(s.compCompact, s.compactCompBuf, s.fasterComp)
	nodesWr, nodesDone := encBlock(s.compNodes, s.nodesCompBuf, s.fasterComp)
	compactWr.Write(doc.Compact)
	nodesWr.Write(s.nodesBuf)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		s.compactCompBuf, err = compactDone()
		if err != nil {
			panic(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		s.nodesCompBuf, err = nodesDone()
		if err != nil {
			panic(err)
		}
	}()
	wg.Wait()

	var body bytes.Buffer
	var varInt [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(varInt[:], uint64(len(doc.Compact)))
	body.Write(varInt[:n])
	n = binary.PutUvarint(varInt[:], uint64(len(s.compactCompBuf)))
	body.Write(varInt[:n])
	body.Write(s.compactCompBuf)

	n = binary.PutUvarint(varInt[:], uint64(len(doc.Nodes)))
	body.Write(varInt[:n])
	n = binary.PutUvarint(varInt[:], uint64(len(s.nodesCompBuf)))
	body.Write(varInt[:n])
	body.Write(s.nodesCompBuf)

	dst = append(dst, serializedVersion)
	n = binary.PutUvarint(varInt[:], uint64(body.Len()))
	dst = append(dst, varInt[:n]...)
	dst = append(dst, body.Bytes()...)

	return dst
}

// Deserialize reads a Document back from src, as written by Serialize.
// No structural re-validation is performed -- reuse.Validate() after
// Deserialize if src may not have come from this package's own
// Serialize.
func (s *Serializer) Deserialize(src []byte, reuse *Document) (*Document, error) {
	doc := reuse
	if doc == nil {
		doc = &Document{}
	}
	br := bytes.NewBuffer(src)

	v, err := br.ReadByte()
	if err != nil {
		return doc, err
	}
	if v != serializedVersion {
		return doc, fmt.Errorf("indolent: unsupported serialized version %d", v)
	}

	total, err := binary.ReadUvarint(br)
	if err != nil {
		return doc, err
	}
	if total > s.maxBlockSize {
		return doc, fmt.Errorf("indolent: serialized block too large: %d", total)
	}
	if uint64(br.Len()) < total {
		return doc, fmt.Errorf("indolent: truncated input, want %d more bytes, have %d", total, br.Len())
	}

	compactLen, err := binary.ReadUvarint(br)
	if err != nil {
		return doc, err
	}
	if cap(doc.Compact) < int(compactLen) {
		doc.Compact = make([]byte, compactLen)
	}
	doc.Compact = doc.Compact[:compactLen]

	var wg sync.WaitGroup
	var compactErr error
	if err := s.decBlock(br, doc.Compact, &wg, &compactErr); err != nil {
		return doc, fmt.Errorf("decompressing compact bytes: %w", err)
	}

	nodeCount, err := binary.ReadUvarint(br)
	if err != nil {
		return doc, err
	}
	nodesByteLen := int(nodeCount) * nodeByteSize
	if cap(s.nodesBuf) < nodesByteLen {
		s.nodesBuf = make([]byte, nodesByteLen)
	}
	s.nodesBuf = s.nodesBuf[:nodesByteLen]

	var nodesErr error
	if err := s.decBlock(br, s.nodesBuf, &wg, &nodesErr); err != nil {
		return doc, fmt.Errorf("decompressing nodes: %w", err)
	}

	wg.Wait()
	if compactErr != nil {
		return doc, fmt.Errorf("decompressing compact bytes: %w", compactErr)
	}
	if nodesErr != nil {
		return doc, fmt.Errorf("decompressing nodes: %w", nodesErr)
	}

	if cap(doc.Nodes) < int(nodeCount) {
		doc.Nodes = make(Nodes, nodeCount)
	}
	doc.Nodes = doc.Nodes[:nodeCount]
	for i := range doc.Nodes {
		b := s.nodesBuf[i*nodeByteSize:]
		doc.Nodes[i] = Node{
			Children:      binary.LittleEndian.Uint32(b[0:4]),
			LengthInBytes: binary.LittleEndian.Uint32(b[4:8]),
		}
	}

	doc.offsets = computeOffsets(doc.offsets[:0], doc.Nodes)
	return doc, nil
}

func (s *Serializer) decBlock(br *bytes.Buffer, dst []byte, wg *sync.WaitGroup, dstErr *error) error {
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return err
	}
	if size > uint64(br.Len()) {
		return fmt.Errorf("block size (%d) extends beyond input %d", size, br.Len())
	}
	if size == 0 && len(dst) == 0 {
		return nil
	}
	if size < 1 {
		return fmt.Errorf("block size (%d) too small", size)
	}

	typ, err := br.ReadByte()
	if err != nil {
		return err
	}
	size--
	compressed := br.Next(int(size))
	if len(compressed) != int(size) {
		return errors.New("short block section")
	}
	switch typ {
	case blockTypeUncompressed:
		if len(compressed) != len(dst) {
			return fmt.Errorf("short uncompressed block: in (%d) != out (%d)", len(compressed), len(dst))
		}
		copy(dst, compressed)
	case blockTypeS2:
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := bytes.NewBuffer(compressed)
			dec := s2Readers.Get().(*s2.Reader)
			dec.Reset(buf)
			_, err := io.ReadFull(dec, dst)
			dec.Reset(nil)
			s2Readers.Put(dec)
			*dstErr = err
		}()
	case blockTypeZstd:
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := len(dst)
			out, err := zDec.DecodeAll(compressed, dst[:0])
			if err == nil && want != len(out) {
				err = errors.New("zstd decompressed size mismatch")
			}
			*dstErr = err
		}()
	default:
		return fmt.Errorf("unknown compression type: %d", typ)
	}
	return nil
}

const (
	blockTypeUncompressed byte = 0
	blockTypeS2           byte = 1
	blockTypeZstd         byte = 2
)

var zDec *zstd.Decoder

// zEncBest backs blockTypeZstd, which only CompressBest selects, so it is
// configured for the smallest output rather than the fastest encode.
var zEncBest = sync.Pool{New: func() interface{} {
	e, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression), zstd.WithEncoderCRC(false))
	return e
}}

var s2FastWriters = sync.Pool{New: func() interface{} {
	return s2.NewWriter(nil)
}}

var s2Writers = sync.Pool{New: func() interface{} {
	return s2.NewWriter(nil, s2.WriterBetterCompression())
}}

var s2Readers = sync.Pool{New: func() interface{} {
	return s2.NewReader(nil)
}}

var initSerializerOnce sync.Once

func initSerializer() {
	zDec, _ = zstd.NewReader(nil)
}

type encodedResult func() ([]byte, error)

// encBlock starts encoding a block of data in the given mode, returning
// a writer to stream data through and a function to finalize it.
func encBlock(mode byte, buf []byte, fast bool) (io.Writer, encodedResult) {
	dst := bytes.NewBuffer(buf[:0])
	dst.WriteByte(mode)
	switch mode {
	case blockTypeUncompressed:
		return dst, func() ([]byte, error) {
			return dst.Bytes(), nil
		}
	case blockTypeS2:
		var enc *s2.Writer
		var put *sync.Pool
		if fast {
			enc = s2FastWriters.Get().(*s2.Writer)
			put = &s2FastWriters
		} else {
			enc = s2Writers.Get().(*s2.Writer)
			put = &s2Writers
		}
		enc.Reset(dst)
		return enc, func() ([]byte, error) {
			err := enc.Close()
			if err != nil {
				return nil, err
			}
			enc.Reset(nil)
			put.Put(enc)
			return dst.Bytes(), nil
		}
	case blockTypeZstd:
		enc := zEncBest.Get().(*zstd.Encoder)
		enc.Reset(dst)
		return enc, func() ([]byte, error) {
			err := enc.Close()
			if err != nil {
				return nil, err
			}
			enc.Reset(nil)
			zEncBest.Put(enc)
			return dst.Bytes(), nil
		}
	}
	panic("indolent: unknown compression mode")
}
