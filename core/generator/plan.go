package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type FileStatus string

const (
	StatusNew       FileStatus = "new"
	StatusModified  FileStatus = "modified"
	StatusUnchanged FileStatus = "unchanged"
)

// FileChange is what Write would do to one class file.
type FileChange struct {
	Path   string
	Class  string
	Status FileStatus
	// Diff is a line diff against the file on disk, empty when unchanged.
	Diff string
	// Imports and ImportedBy are the batch files on either side of this one.
	Imports    []string
	ImportedBy []string
}

// Plan compares built classes with the files on disk without writing.
func (g *ClassGenerator) Plan(result *Result) ([]FileChange, error) {
	changes := make([]FileChange, 0, len(result.Classes))
	for _, class := range result.Classes {
		change := FileChange{Path: class.Class.FilePath, Class: class.Class.Name}
		if result.Graph != nil {
			change.Imports = result.Graph.GetDependencies(change.Path)
			change.ImportedBy = result.Graph.GetDependents(change.Path)
		}

		existing, err := os.ReadFile(change.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			change.Status = StatusNew
			change.Diff = lineDiff("", class.Content)
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", change.Path, err)
		case string(existing) == class.Content:
			change.Status = StatusUnchanged
		default:
			change.Status = StatusModified
			change.Diff = lineDiff(string(existing), class.Content)
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func lineDiff(before, after string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
		case diffpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
