// Package loader discovers legacy Pascal source units on disk and runs the
// extraction engine over them.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/unitscan/pkg/extract"
)

// unitExtensions are the file extensions treated as analyzable units.
var unitExtensions = map[string]bool{
	".pas": true,
	".dpr": true,
	".dpk": true,
}

// DefaultWorkers caps concurrent unit analysis when no explicit worker
// count is configured.
const DefaultWorkers = 4

// Loader reads units and feeds them to an analyzer. Units are independent,
// so analysis fans out across workers; result order stays deterministic
// regardless of scheduling.
type Loader struct {
	log     *slog.Logger
	workers int
}

// New creates a Loader. A nil logger falls back to slog.Default.
func New(log *slog.Logger, workers int) *Loader {
	if log == nil {
		log = slog.Default()
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Loader{log: log, workers: workers}
}

// Discover walks root and returns the paths of all unit files, sorted.
// A root that is itself a unit file yields just that file.
func (l *Loader) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if unitExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// AnalyzePath discovers every unit under root and analyzes them with a.
// Reports come back in discovery (path) order. Unreadable files fail the
// whole run; analysis itself never fails per unit.
func (l *Loader) AnalyzePath(ctx context.Context, a *extract.Analyzer, root string) ([]*extract.UnitReport, error) {
	paths, err := l.Discover(root)
	if err != nil {
		return nil, err
	}

	reports := make([]*extract.UnitReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			unitName := UnitName(path)
			report := a.AnalyzeUnit(unitName, string(data))
			l.log.Debug("analyzed unit",
				"unit", unitName,
				"operations", len(report.Operations),
				"transactions", len(report.Groups))
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// UnitName derives the unit name from a file path: the base name without
// extension.
func UnitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
