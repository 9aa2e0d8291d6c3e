package charset

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the encoding cache when no size is configured.
const DefaultCacheSize = 1000

// DefaultConfidenceThreshold is the minimum detector confidence trusted by default.
const DefaultConfidenceThreshold = 0.9

// fileSystem is the subset of filesystem operations the Manager needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// Entry is a cached detection result, valid while the file's mtime equals ModTime.
type Entry struct {
	Encoding string
	ModTime  time.Time
	Fallback bool
}

// Resolution is the encoding chosen for a path.
// Fallback is set when the default was used because detection was not trusted.
type Resolution struct {
	Encoding string
	Fallback bool
}

// Options configures a Manager. Zero values select the defaults.
type Options struct {
	DefaultEncoding     string
	ConfidenceThreshold float64
	CacheSize           int
	Logger              *slog.Logger
}

// Manager remembers the detected encoding of each file, keyed by path and
// invalidated by modification time. It never fails outward: anything that
// goes wrong degrades to the default encoding.
type Manager struct {
	fs              fileSystem
	detector        Detector
	cache           *lru.Cache[string, Entry]
	defaultEncoding string
	threshold       float64
	logger          *slog.Logger
}

// NewManager creates a Manager. A threshold of 0 accepts any named detection.
func NewManager(fs fileSystem, detector Detector, opts Options) *Manager {
	if fs == nil {
		panic("fs is required")
	}
	if detector == nil {
		panic("detector is required")
	}

	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Entry](size)
	if err != nil {
		// only possible for a non-positive size
		panic(err)
	}

	defaultEncoding := opts.DefaultEncoding
	if defaultEncoding == "" {
		defaultEncoding = DefaultEncoding
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Manager{
		fs:              fs,
		detector:        detector,
		cache:           cache,
		defaultEncoding: defaultEncoding,
		threshold:       opts.ConfidenceThreshold,
		logger:          logger,
	}
}

// DefaultEncoding returns the fallback encoding.
func (m *Manager) DefaultEncoding() string {
	return m.defaultEncoding
}

// DetectEncoding runs detection for path without consulting or updating the cache.
func (m *Manager) DetectEncoding(path string) string {
	info, err := m.fs.Stat(path)
	if err != nil {
		return m.defaultEncoding
	}
	return m.detect(path, info).Encoding
}

// GetEncoding returns the encoding for path, using the cache when the file is unchanged.
func (m *Manager) GetEncoding(path string) string {
	return m.Resolve(path).Encoding
}

// Resolve is GetEncoding that also reports whether the default was a fallback.
func (m *Manager) Resolve(path string) Resolution {
	info, err := m.fs.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("stat failed, using default encoding", "path", path, "error", err)
			return Resolution{Encoding: m.defaultEncoding, Fallback: true}
		}
		return Resolution{Encoding: m.defaultEncoding}
	}
	if info.IsDir() {
		return Resolution{Encoding: m.defaultEncoding}
	}

	if entry, ok := m.cache.Get(path); ok && entry.ModTime.Equal(info.ModTime()) {
		return Resolution{Encoding: entry.Encoding, Fallback: entry.Fallback}
	}

	res := m.detect(path, info)
	m.cache.Add(path, Entry{Encoding: res.Encoding, ModTime: info.ModTime(), Fallback: res.Fallback})
	return res
}

// Remember records that path now holds content in encoding, stamped with the
// file's current mtime. Used after a write so the next read skips detection.
func (m *Manager) Remember(path string, res Resolution) {
	info, err := m.fs.Stat(path)
	if err != nil || info.IsDir() {
		m.cache.Remove(path)
		return
	}
	m.cache.Add(path, Entry{Encoding: res.Encoding, ModTime: info.ModTime(), Fallback: res.Fallback})
}

// Forget drops any cached entry for path.
func (m *Manager) Forget(path string) {
	m.cache.Remove(path)
}

// Peek returns the cached entry for path without updating recency.
func (m *Manager) Peek(path string) (Entry, bool) {
	return m.cache.Peek(path)
}

// Len returns the number of cached entries.
func (m *Manager) Len() int {
	return m.cache.Len()
}

func (m *Manager) detect(path string, info os.FileInfo) Resolution {
	if info.IsDir() || info.Size() == 0 {
		return Resolution{Encoding: m.defaultEncoding}
	}

	data, err := m.fs.ReadFile(path)
	if err != nil {
		m.logger.Debug("read failed, using default encoding", "path", path, "error", err)
		return Resolution{Encoding: m.defaultEncoding, Fallback: true}
	}
	if len(data) == 0 {
		return Resolution{Encoding: m.defaultEncoding}
	}

	name, confidence := m.detector.Detect(data)
	switch {
	case name == "":
		m.logger.Debug("no encoding detected", "path", path)
	case confidence < m.threshold:
		m.logger.Debug("detection below threshold", "path", path, "encoding", name, "confidence", confidence, "threshold", m.threshold)
	case !Supported(name):
		m.logger.Debug("detected encoding not supported", "path", path, "encoding", name)
	default:
		return Resolution{Encoding: name}
	}

	return Resolution{Encoding: m.defaultEncoding, Fallback: true}
}
