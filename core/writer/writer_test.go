package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gtechsltn/csharp-to-js/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyWriter(t *testing.T) {
	property := models.ConvertedProperty{
		Value: "value",
		Name:  "name",
	}

	result := NewPropertyWriter().Write(property)

	assert.Equal(t, "this.name = value", result)
}

func TestPropertyWriterStatements(t *testing.T) {
	writer := NewPropertyWriter()
	props := []models.ConvertedProperty{
		{Name: "name", Value: `"Widget"`},
		{Name: "isActive", Value: "true"},
		{Name: "count", Value: "10"},
	}

	var statements []string
	for _, p := range props {
		statements = append(statements, writer.Write(p))
	}

	assert.Equal(t, []string{
		`this.name = "Widget"`,
		"this.isActive = true",
		"this.count = 10",
	}, statements)
}

func TestImportWriter(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	writer := NewImportWriter()
	mainClass := &models.ClassRecord{
		Name:     "Main",
		FilePath: filepath.Join(wd, "Main.js"),
	}
	dependencyNested := &models.ClassRecord{
		Name:     "Dep1",
		FilePath: filepath.Join(wd, "subfolder", "Dep1.js"),
	}
	dependencyAbove := &models.ClassRecord{
		Name:     "Dep2",
		FilePath: filepath.Join(wd, "../", "Dep2.js"),
	}
	dependencySibling := &models.ClassRecord{
		Name:     "Dep3",
		FilePath: filepath.Join(wd, "Dep3.js"),
	}

	assert.Equal(t, "import Dep1 from './subfolder/Dep1.js';", writer.Write(mainClass, dependencyNested))
	assert.Equal(t, "import Dep2 from '../Dep2.js';", writer.Write(mainClass, dependencyAbove))
	assert.Equal(t, "import Dep3 from './Dep3.js';", writer.Write(mainClass, dependencySibling))
}

func TestImportWriterFixedPaths(t *testing.T) {
	writer := NewImportWriter()
	main := &models.ClassRecord{Name: "Main", FilePath: "/root/Main.js"}

	tests := []struct {
		name     string
		dep      *models.ClassRecord
		expected string
	}{
		{"nested", &models.ClassRecord{Name: "Dep1", FilePath: "/root/subfolder/Dep1.js"}, "import Dep1 from './subfolder/Dep1.js';"},
		{"above", &models.ClassRecord{Name: "Dep2", FilePath: "/Dep2.js"}, "import Dep2 from '../Dep2.js';"},
		{"cousin", &models.ClassRecord{Name: "Dep3", FilePath: "/other/deep/Dep3.js"}, "import Dep3 from '../other/deep/Dep3.js';"},
		{"backslashes", &models.ClassRecord{Name: "Dep4", FilePath: `/root\models\Dep4.js`}, "import Dep4 from './models/Dep4.js';"},
		{"same file", &models.ClassRecord{Name: "Main", FilePath: "/root/Main.js"}, "import Main from './Main.js';"},
		{"mixed absolute", &models.ClassRecord{Name: "Dep5", FilePath: "lib/Dep5.js"}, "import Dep5 from './Dep5.js';"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, writer.Write(main, tt.dep))
		})
	}
}

func TestRelativeImportPathWithRelativeRecords(t *testing.T) {
	assert.Equal(t, "./b/B.js", RelativeImportPath("out/A.js", "out/b/B.js"))
	assert.Equal(t, "../A.js", RelativeImportPath("out/b/B.js", "out/A.js"))
	assert.Equal(t, "../../A.js", RelativeImportPath("out/b/c/C.js", "out/A.js"))
}

func TestRelativeImportPathNeverReturnsBareParent(t *testing.T) {
	assert.Equal(t, "./..", RelativeImportPath("out/b/c/C.js", "out/b"))
}
