package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Snapshot is one frozen code tree with its issue files.
type Snapshot struct {
	Slug       string
	Dir        string
	CodeDir    string
	IssueFiles []string
}

// Discover finds snapshots under a corpus root. A snapshot is any immediate
// subdirectory containing at least one issue file (issues.yaml or
// *.issues.yaml). Results are sorted by slug.
func Discover(root string) ([]Snapshot, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading corpus root: %w", err)
	}

	var snapshots []Snapshot
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		files, err := issueFilesIn(dir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Slug:       e.Name(),
			Dir:        dir,
			CodeDir:    filepath.Join(dir, "code"),
			IssueFiles: files,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Slug < snapshots[j].Slug })
	return snapshots, nil
}

// Resolve turns a CLI target into snapshots. A regular file is treated as a
// single issue file inside its parent snapshot; a directory is treated as a
// corpus root, or as a single snapshot when it holds issue files directly.
func Resolve(path string) ([]Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}

	if !info.IsDir() {
		dir := filepath.Dir(path)
		return []Snapshot{{
			Slug:       filepath.Base(dir),
			Dir:        dir,
			CodeDir:    filepath.Join(dir, "code"),
			IssueFiles: []string{path},
		}}, nil
	}

	snapshots, err := Discover(path)
	if err != nil {
		return nil, err
	}
	if len(snapshots) > 0 {
		return snapshots, nil
	}

	files, err := issueFilesIn(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no issue files found under %s", path)
	}
	return []Snapshot{{
		Slug:       filepath.Base(path),
		Dir:        path,
		CodeDir:    filepath.Join(path, "code"),
		IssueFiles: files,
	}}, nil
}

func issueFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "issues.yaml" || strings.HasSuffix(name, ".issues.yaml") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}
