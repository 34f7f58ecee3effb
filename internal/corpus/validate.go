package corpus

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/annolint/annolint/internal/cache"
	"github.com/annolint/annolint/internal/record"
)

const defaultJobs = 4

// Options controls a batch validation run.
type Options struct {
	Jobs      int
	Cache     *cache.Cache
	Staleness bool
	Logger    hclog.Logger
}

// FileResult is the outcome of validating one issue file.
type FileResult struct {
	Snapshot string
	Path     string
	Cached   bool
	IssueIDs []string
	Stale    []StalenessFinding
	Err      error
}

// OK reports whether the file validated cleanly with no stale annotations.
func (r FileResult) OK() bool {
	return r.Err == nil && len(r.Stale) == 0
}

// Report aggregates the results of one batch run.
type Report struct {
	Results []FileResult
}

// Clean reports whether every file in the run validated cleanly.
func (r *Report) Clean() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return false
		}
	}
	return true
}

// Counts returns summary totals: files validated, issues validated, files
// that failed record validation, and stale annotations.
func (r *Report) Counts() (files, issues, failures, stale int) {
	for _, res := range r.Results {
		files++
		issues += len(res.IssueIDs)
		if res.Err != nil {
			failures++
		}
		stale += len(res.Stale)
	}
	return files, issues, failures, stale
}

// Validate runs the record pipeline over every issue file of every snapshot,
// in parallel with bounded concurrency. Each file is an independent
// invocation; results come back in deterministic (snapshot, file) order
// regardless of scheduling.
func Validate(snapshots []Snapshot, opts Options) *Report {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = defaultJobs
	}

	type task struct {
		snapshot Snapshot
		path     string
	}
	var tasks []task
	for _, snap := range snapshots {
		for _, path := range snap.IssueFiles {
			tasks = append(tasks, task{snapshot: snap, path: path})
		}
	}

	results := make([]FileResult, len(tasks))
	var wg sync.WaitGroup
	sem := make(chan struct{}, jobs)

	for i, tk := range tasks {
		wg.Add(1)
		go func(i int, tk task) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[i] = validateFile(tk.snapshot, tk.path, opts, logger)
		}(i, tk)
	}
	wg.Wait()

	return &Report{Results: results}
}

func validateFile(snap Snapshot, path string, opts Options, logger hclog.Logger) FileResult {
	res := FileResult{Snapshot: snap.Slug, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	var key string
	if opts.Cache != nil && opts.Cache.Enabled() {
		key = cache.FileKey(data)
		if ids, ok := opts.Cache.Get(key); ok {
			logger.Debug("cache hit", "snapshot", snap.Slug, "file", path)
			res.Cached = true
			res.IssueIDs = ids
			return res
		}
	}

	f, err := record.Parse(path, data)
	if err != nil {
		logger.Warn("record validation failed", "snapshot", snap.Slug, "file", path, "error", err)
		res.Err = err
		return res
	}
	res.IssueIDs = f.IDs

	if opts.Staleness {
		res.Stale = CheckStaleness(snap.CodeDir, f)
		for _, finding := range res.Stale {
			logger.Warn("stale annotation", "snapshot", snap.Slug, "finding", finding.String())
		}
	}

	if res.OK() && key != "" {
		if err := opts.Cache.Put(key, f.IDs); err != nil {
			logger.Debug("cache write failed", "file", path, "error", err)
		}
	}
	logger.Debug("validated", "snapshot", snap.Slug, "file", path, "issues", len(f.IDs))
	return res
}
