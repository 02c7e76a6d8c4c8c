package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"
)

// ErrNoSnapshots is returned when the base dir holds no snapshot directories.
var ErrNoSnapshots = errors.New("no snapshots found")

// Store reads and writes dated snapshot directories under a base dir.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		baseDir: baseDir,
		logger:  logger,
	}
}

// BaseDir returns the store's base directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Write exports the snapshot's three tables as CSV and returns the
// snapshot directory path. The three files are written in parallel.
func (s *Store) Write(snap *Snapshot) (string, error) {
	dir := filepath.Join(s.baseDir, snap.DirName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error { return writeCSV(filepath.Join(dir, StationsFile), &snap.Stations) })
	g.Go(func() error { return writeCSV(filepath.Join(dir, PricesFile), &snap.Prices) })
	g.Go(func() error { return writeCSV(filepath.Join(dir, CombinedFile), &snap.Combined) })

	if err := g.Wait(); err != nil {
		return "", err
	}

	s.logger.Info("snapshot written",
		"dir", dir,
		"stations", len(snap.Stations),
		"prices", len(snap.Prices),
		"combined", len(snap.Combined),
	)

	return dir, nil
}

// LatestDir returns the path of the lexicographically last backup_*
// directory under the base dir.
func (s *Store) LatestDir() (string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSnapshots
		}
		return "", fmt.Errorf("read snapshot base dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), dirPrefix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", ErrNoSnapshots
	}

	sort.Strings(names)
	return filepath.Join(s.baseDir, names[len(names)-1]), nil
}

// Load reads one snapshot directory back into memory.
func (s *Store) Load(dir string) (*Snapshot, error) {
	date, err := parseDirDate(dir)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Date: date}

	if err := readCSV(filepath.Join(dir, StationsFile), &snap.Stations); err != nil {
		return nil, err
	}
	if err := readCSV(filepath.Join(dir, PricesFile), &snap.Prices); err != nil {
		return nil, err
	}
	if err := readCSV(filepath.Join(dir, CombinedFile), &snap.Combined); err != nil {
		return nil, err
	}

	s.logger.Info("snapshot loaded",
		"dir", dir,
		"stations", len(snap.Stations),
		"prices", len(snap.Prices),
		"combined", len(snap.Combined),
	)

	return snap, nil
}

// LoadLatest loads the most recent snapshot.
func (s *Store) LoadLatest() (*Snapshot, error) {
	dir, err := s.LatestDir()
	if err != nil {
		return nil, err
	}
	return s.Load(dir)
}

func parseDirDate(dir string) (time.Time, error) {
	name := strings.TrimPrefix(filepath.Base(dir), dirPrefix)
	date, err := time.Parse(dateLayout, name)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot date from %q: %w", filepath.Base(dir), err)
	}
	return date, nil
}

func writeCSV(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	if err := gocsv.MarshalFile(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return nil
}
