package dataset

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"
)

//go:embed data
var builtinFS embed.FS

// Registry holds the datasets the server can show: the built-in ones
// plus an optional directory of user CSVs. A directory load replaces
// the previous directory set atomically; built-in datasets never go
// away, but a directory dataset with the same name shadows them.
type Registry struct {
	mu       sync.RWMutex
	builtin  map[string]*Dataset
	external map[string]*Dataset
	log      zerolog.Logger
}

// NewRegistry loads the embedded datasets. A failure here is a defect
// in the shipped data, not a runtime condition.
func NewRegistry(log zerolog.Logger) (*Registry, error) {
	sub, err := fs.Sub(builtinFS, "data")
	if err != nil {
		return nil, err
	}

	builtin := make(map[string]*Dataset)
	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded datasets: %w", err)
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		res, err := loadFile(sub, strings.TrimSuffix(entry.Name(), ".csv"))
		if err != nil {
			return nil, fmt.Errorf("embedded dataset %s: %w", entry.Name(), err)
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("embedded dataset %s: %d rows unreadable", entry.Name(), res.Skipped)
		}
		builtin[res.Dataset.Name] = res.Dataset
	}
	if len(builtin) == 0 {
		return nil, fmt.Errorf("no embedded datasets found")
	}

	return &Registry{
		builtin:  builtin,
		external: make(map[string]*Dataset),
		log:      log,
	}, nil
}

// loadFile loads stem.csv plus its optional stem.yml/.yaml manifest.
func loadFile(fsys fs.FS, stem string) (*LoadResult, error) {
	data, err := fs.ReadFile(fsys, stem+".csv")
	if err != nil {
		return nil, err
	}

	var manifest *Manifest
	for _, ext := range []string{".yml", ".yaml"} {
		raw, err := fs.ReadFile(fsys, stem+ext)
		if err != nil {
			continue
		}
		manifest, err = ParseManifest(raw)
		if err != nil {
			return nil, fmt.Errorf("manifest %s%s: %w", stem, ext, err)
		}
		break
	}

	return Load(stem, bytes.NewReader(data), manifest)
}

// LoadDir loads every CSV in dir and swaps them in as the directory
// set. Unloadable files are logged and skipped so one bad CSV cannot
// take the others down.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read datasets directory: %w", err)
	}

	fsys := os.DirFS(dir)
	next := make(map[string]*Dataset)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".csv")
		res, err := loadFile(fsys, stem)
		if err != nil {
			r.log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping dataset")
			continue
		}
		if res.Skipped > 0 {
			r.log.Warn().
				Str("dataset", res.Dataset.Name).
				Int("skipped", res.Skipped).
				Str("first_error", res.Errors[0]).
				Msg("some rows were skipped")
		}
		if _, dup := next[res.Dataset.Name]; dup {
			r.log.Warn().Str("dataset", res.Dataset.Name).Msg("duplicate dataset name, keeping the first")
			continue
		}
		next[res.Dataset.Name] = res.Dataset
	}

	r.mu.Lock()
	r.external = next
	r.mu.Unlock()

	r.log.Info().Int("count", len(next)).Str("dir", dir).Msg("datasets directory loaded")
	return nil
}

// Get returns a dataset by name, directory datasets first.
func (r *Registry) Get(name string) (*Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ds, ok := r.external[name]; ok {
		return ds, nil
	}
	if ds, ok := r.builtin[name]; ok {
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// List returns all datasets sorted by name.
func (r *Registry) List() []*Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	merged := make(map[string]*Dataset, len(r.builtin)+len(r.external))
	for name, ds := range r.builtin {
		merged[name] = ds
	}
	for name, ds := range r.external {
		merged[name] = ds
	}

	out := make([]*Dataset, 0, len(merged))
	for _, ds := range merged {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns all dataset names, sorted.
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, ds := range list {
		names[i] = ds.Name
	}
	return names
}

// DefaultName is the dataset the dashboard lands on: iris when
// present, otherwise the first name in sorted order.
func (r *Registry) DefaultName() string {
	names := r.Names()
	for _, name := range names {
		if name == "iris" {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// Suggest returns the closest dataset name to miss, or "" when nothing
// is close enough.
func (r *Registry) Suggest(miss string) string {
	best, bestDist := "", suggestMaxDistance+1
	for _, name := range r.Names() {
		dist := levenshtein.ComputeDistance(strings.ToLower(miss), strings.ToLower(name))
		if dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}
