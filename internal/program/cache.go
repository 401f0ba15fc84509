package program

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"dyva/internal/diag"
	"dyva/internal/source"
)

// cacheSchemaVersion guards against decoding a record written by a
// different diagnostic shape; bump it whenever cachedDiagnostic changes.
const cacheSchemaVersion uint16 = 1

// DiskCache remembers, per source-file content hash, whether the pipeline
// produced an error and what its diagnostics were, so a CLI invoked
// repeatedly against an unchanged file (a --watch loop, a test runner)
// does not have to re-run lex/parse/scope/lower/analysis just to reprint
// the same diagnostics.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedRecord is the serialized form. Spans are flattened to line/column
// pairs rather than FileIDs, which are only valid within one FileSet.
type cachedRecord struct {
	Schema        uint16
	ContainsError bool
	Diagnostics   []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Line     uint32
	Col      uint32
	EndLine  uint32
	EndCol   uint32
	Notes    []cachedNote
}

type cachedNote struct {
	Message string
	Line    uint32
	Col     uint32
}

// OpenDiskCache opens (creating if necessary) the cache directory under the
// user's cache home, namespaced by app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "modules")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".mp")
}

// Get returns the cached record for hash, if any.
func (c *DiskCache) Get(hash [32]byte) (*cachedRecord, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(hash)) // #nosec G304 -- path is derived from a content hash, not user input
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var rec cachedRecord
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil || rec.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &rec, true
}

// Put serializes and atomically stores a record under hash.
func (c *DiskCache) Put(hash [32]byte, rec *cachedRecord) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(hash)
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := msgpack.NewEncoder(tmp).Encode(rec); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// storeCache serializes result's diagnostics, relative to their own file,
// and writes them under hash. A result with an io error (Module == nil)
// is never cached since there is no content hash to key it by.
func (l *loader) storeCache(hash [32]byte, result *ModuleResult) {
	if l.unit.Cache == nil || result.Module == nil {
		return
	}
	rec := &cachedRecord{Schema: cacheSchemaVersion, ContainsError: result.Bag.ContainsError()}
	for _, d := range result.Bag.Items() {
		rec.Diagnostics = append(rec.Diagnostics, toCachedDiagnostic(l.fs, d))
	}
	_ = l.unit.Cache.Put(hash, rec) // best-effort; a failed write just loses the speedup
}

func toCachedDiagnostic(fs *source.FileSet, d diag.Diagnostic) cachedDiagnostic {
	start, end := fs.Resolve(d.Site)
	cd := cachedDiagnostic{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Line:     start.Line,
		Col:      start.Col,
		EndLine:  end.Line,
		EndCol:   end.Col,
	}
	for _, n := range d.Notes {
		nStart, _ := fs.Resolve(n.Site)
		cd.Notes = append(cd.Notes, cachedNote{Message: n.Message, Line: nStart.Line, Col: nStart.Col})
	}
	return cd
}

// replayCache reconstructs a diagnostics-only ModuleResult from a cached
// record. Module and IR are left nil: a cache hit only helps a caller that
// wants diagnostics (e.g. a `check` subcommand), never one that needs the
// AST or IR themselves.
func (l *loader) replayCache(canonical string, fileID source.FileID, rec *cachedRecord) *ModuleResult {
	bag := diag.NewBag()
	for _, cd := range rec.Diagnostics {
		site := source.Span{File: fileID}
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), site, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(site, n.Message)
		}
		bag.Add(d)
	}
	return &ModuleResult{Path: canonical, FileID: fileID, Bag: bag}
}

// IsSHA256 performs a basic sanity check that the digest looks like a real
// content hash rather than a zero value.
func IsSHA256(h [32]byte) bool {
	var zero [32]byte
	return h != zero
}
