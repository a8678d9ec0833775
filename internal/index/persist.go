package index

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// vectorMagic guards the binary artifact against reading an unrelated file.
const vectorMagic = uint32(0x53485631) // "SHV1"

// Save persists the full entry set as two paired artifacts: a binary vector
// file and a JSON metadata file keyed by the same positional order.
// Saving an uninitialized index is a no-op.
func (ix *Index) Save() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.dim == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(ix.path), 0o750); err != nil {
		return fmt.Errorf("index: create artifact dir: %w", err)
	}

	var buf bytes.Buffer
	header := []uint32{vectorMagic, uint32(ix.dim), uint32(len(ix.vectors))} // #nosec G115 -- dim and entry count are bounded by memory
	for _, h := range header {
		if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
			return fmt.Errorf("index: encode header: %w", err)
		}
	}
	for _, v := range ix.vectors {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("index: encode vectors: %w", err)
		}
	}
	if err := os.WriteFile(ix.vectorPath(), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("index: write vector artifact: %w", err)
	}

	meta, err := json.Marshal(ix.meta)
	if err != nil {
		return fmt.Errorf("index: encode metadata: %w", err)
	}
	if err := os.WriteFile(ix.metaPath(), meta, 0o600); err != nil {
		return fmt.Errorf("index: write metadata artifact: %w", err)
	}

	return nil
}

// Load restores the entry set from the paired artifacts. A missing artifact
// pair, or one that cannot be decoded, re-initializes an empty index at the
// given dimension — durability is best-effort, and a damaged artifact is
// treated as "no data available" rather than a startup failure.
func (ix *Index) Load(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("index: load dimension must be positive, got %d", dimension)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	vectors, meta, err := readArtifacts(ix.vectorPath(), ix.metaPath(), dimension)
	if err != nil {
		slog.Warn("index artifacts unusable, starting empty", "path", ix.path, "error", err)
		vectors, meta = nil, nil
	}

	ix.dim = dimension
	ix.vectors = vectors
	ix.meta = meta
	return nil
}

func (ix *Index) vectorPath() string { return ix.path + ".vec" }
func (ix *Index) metaPath() string   { return ix.path + ".meta" }

func readArtifacts(vecPath, metaPath string, dimension int) ([][]float32, []Meta, error) {
	raw, err := os.ReadFile(filepath.Clean(vecPath))
	if err != nil {
		return nil, nil, err
	}
	rawMeta, err := os.ReadFile(filepath.Clean(metaPath))
	if err != nil {
		return nil, nil, err
	}

	r := bytes.NewReader(raw)
	var magic, dim, count uint32
	for _, dst := range []*uint32{&magic, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return nil, nil, fmt.Errorf("truncated header: %w", err)
		}
	}
	if magic != vectorMagic {
		return nil, nil, fmt.Errorf("bad magic %#x", magic)
	}
	if int(dim) != dimension {
		return nil, nil, fmt.Errorf("artifact dimension %d does not match requested %d", dim, dimension)
	}

	vectors := make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		v := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, nil, fmt.Errorf("truncated vector %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}

	var meta []Meta
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return nil, nil, fmt.Errorf("metadata decode: %w", err)
	}
	if len(meta) != len(vectors) {
		return nil, nil, fmt.Errorf("artifact mismatch: %d vectors, %d metadata entries", len(vectors), len(meta))
	}

	return vectors, meta, nil
}
