package template_engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classData struct {
	Name       string
	Imports    []string
	Statements []string
}

func TestRenderClassWithImports(t *testing.T) {
	engine := NewTemplateEngine()

	out, err := engine.Render(TEMPLATES.CLASS.CLASS_JS, classData{
		Name:       "Main",
		Imports:    []string{"import Dep from './Dep.js';"},
		Statements: []string{"this.a = 1", "this.dep = new Dep()"},
	})

	require.NoError(t, err)
	assert.Equal(t, `import Dep from './Dep.js';

export default class Main {
    constructor() {
        this.a = 1;
        this.dep = new Dep();
    }
}
`, out)
}

func TestRenderClassWithoutImports(t *testing.T) {
	out, err := NewTemplateEngine().Render(TEMPLATES.CLASS.CLASS_JS, classData{Name: "Empty"})

	require.NoError(t, err)
	assert.Equal(t, "export default class Empty {\n    constructor() {\n    }\n}\n", out)
}

func TestRenderRejectsDirectory(t *testing.T) {
	_, err := NewTemplateEngine().Render(TEMPLATES.INIT.Ref, nil)
	assert.Error(t, err)
}

func TestGenerateFolder(t *testing.T) {
	dir := t.TempDir()

	err := NewTemplateEngine().GenerateFolder(TEMPLATES.INIT.Ref, dir, map[string]string{
		"ProjectName": "demo",
		"Namespace":   "demo",
	})

	require.NoError(t, err)
	cfg, err := os.ReadFile(filepath.Join(dir, "tojs.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "root_namespace: demo")
	assert.Contains(t, string(cfg), "- demo.models")

	types, err := os.ReadFile(filepath.Join(dir, "types.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "namespace: demo.models")
}

func TestGenerateFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "Main.js")

	require.NoError(t, NewTemplateEngine().GenerateFile(TEMPLATES.CLASS.CLASS_JS, out, classData{Name: "Main"}))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "export default class Main {")
}

func TestValidateAndListTemplates(t *testing.T) {
	engine := NewTemplateEngine()

	assert.NoError(t, engine.ValidateTemplate(TEMPLATES.CLASS.CLASS_JS))
	assert.NoError(t, engine.ValidateTemplate(TEMPLATES.INIT.Ref))
	assert.Error(t, engine.ValidateTemplate(TemplateRef{Path: "class", IsDir: false}))
	assert.Error(t, engine.ValidateTemplate(TemplateRef{Path: "missing.tmpl"}))

	templates, err := engine.ListTemplates(TEMPLATES.INIT.Ref)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"init/tojs.yaml.tmpl", "init/types.yaml.tmpl"}, templates)
}

func TestCustomFuncs(t *testing.T) {
	engine := NewTemplateEngine()
	engine.AddFunc("shout", func(s string) string { return s + "!" })

	assert.Contains(t, engine.funcMap, "shout")
	assert.Contains(t, engine.funcMap, "lowerFirst")
}
