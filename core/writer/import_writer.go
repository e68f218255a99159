package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gtechsltn/csharp-to-js/core/models"
)

type ImportWriter struct{}

func NewImportWriter() *ImportWriter {
	return &ImportWriter{}
}

// Write renders an ES module import of dependency from owner's file. When both
// records point at the same file the degenerate "./<file>" path is rendered.
func (iw *ImportWriter) Write(owner, dependency *models.ClassRecord) string {
	return fmt.Sprintf("import %s from '%s';", dependency.Name, RelativeImportPath(owner.FilePath, dependency.FilePath))
}

// RelativeImportPath returns the path of target relative to the directory of
// from, with forward slashes and an explicit "./" or "../" prefix.
func RelativeImportPath(from, target string) string {
	from = normalize(from)
	target = normalize(target)

	rel, err := filepath.Rel(filepath.Dir(from), target)
	if err != nil {
		// One side absolute and the other relative; fall back to a sibling import.
		return "./" + filepath.Base(target)
	}

	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

// normalize accepts either separator so records built on another host still
// resolve, and cleans "../" segments.
func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(p))
}
