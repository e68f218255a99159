package template_engine

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"text/template"

	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/gtechsltn/csharp-to-js/core/shared"
)

const templatesRoot = "templates"

type TemplateRef struct {
	Path  string
	IsDir bool
}

func (tr TemplateRef) IsFile() bool {
	return !tr.IsDir
}

func (tr TemplateRef) IsDirectory() bool {
	return tr.IsDir
}

type TemplateEngine struct {
	funcMap template.FuncMap
}

var GlobalFuncMap = template.FuncMap{}

func RegisterGlobalFunc(name string, fn interface{}) {
	GlobalFuncMap[name] = fn
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"title":      shared.ToTitle,
		"lowerFirst": shared.LowerFirst,
		"snake":      shared.ToSnake,
		"trim":       strings.TrimSpace,
		"replace":    strings.ReplaceAll,
		"join":       strings.Join,

		"default": func(def, val interface{}) interface{} {
			if val == nil || val == "" {
				return def
			}
			return val
		},
		"len": func(v interface{}) int { return reflect.ValueOf(v).Len() },
		"not": func(b bool) bool { return !b },
	}
}

func NewTemplateEngine() *TemplateEngine {
	funcMap := template.FuncMap{}

	for name, fn := range getDefaultFuncMap() {
		funcMap[name] = fn
	}

	for name, fn := range GlobalFuncMap {
		funcMap[name] = fn
	}

	return &TemplateEngine{
		funcMap: funcMap,
	}
}

func (te *TemplateEngine) AddFunc(name string, fn interface{}) {
	te.funcMap[name] = fn
}

// Render executes a file template and returns the output.
func (te *TemplateEngine) Render(templateRef TemplateRef, data interface{}) (string, error) {
	if templateRef.IsDirectory() {
		return "", fmt.Errorf("cannot render directory reference: %s", templateRef.Path)
	}

	templatePath := path.Join(templatesRoot, templateRef.Path)
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(path.Base(templateRef.Path)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateRef.Path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateRef.Path, err)
	}
	return buf.String(), nil
}

func (te *TemplateEngine) GenerateFile(templateRef TemplateRef, outputPath string, data interface{}) error {
	content, err := te.Render(templateRef, data)
	if err != nil {
		return err
	}
	return WriteFile(outputPath, content)
}

func (te *TemplateEngine) GenerateFolder(templateRef TemplateRef, outputDir string, data interface{}) error {
	if templateRef.IsFile() {
		return fmt.Errorf("cannot generate folder from file reference: %s", templateRef.Path)
	}

	templateDir := path.Join(templatesRoot, templateRef.Path)
	logger.Debug("Generating folder from template reference: %s", templateDir)

	return fs.WalkDir(TemplateFS, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if p == templateDir {
			return nil
		}

		relPath := strings.TrimPrefix(p, templateDir+"/")
		outputPath := filepath.Join(outputDir, filepath.FromSlash(relPath))

		if d.IsDir() {
			return os.MkdirAll(outputPath, os.ModePerm)
		}

		logger.Debug("Generating file from path: %s", p)
		return te.generateFileFromPath(p, outputPath, data)
	})
}

func (te *TemplateEngine) generateFileFromPath(templatePath, outputPath string, data interface{}) error {
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	if !strings.HasSuffix(templatePath, ".tmpl") {
		return WriteFile(outputPath, string(content))
	}

	tmpl, err := template.New(path.Base(templatePath)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}

	return WriteFile(strings.TrimSuffix(outputPath, ".tmpl"), buf.String())
}

func (te *TemplateEngine) ListTemplates(templateRef TemplateRef) ([]string, error) {
	if templateRef.IsFile() {
		return []string{templateRef.Path}, nil
	}

	var templates []string
	templateDir := path.Join(templatesRoot, templateRef.Path)

	err := fs.WalkDir(TemplateFS, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			templates = append(templates, strings.TrimPrefix(p, templatesRoot+"/"))
		}
		return nil
	})

	return templates, err
}

func (te *TemplateEngine) ValidateTemplate(templateRef TemplateRef) error {
	templatePath := path.Join(templatesRoot, templateRef.Path)

	info, err := fs.Stat(TemplateFS, templatePath)
	if err != nil {
		return fmt.Errorf("template not found: %s", templateRef.Path)
	}

	if info.IsDir() != templateRef.IsDirectory() {
		return fmt.Errorf("template reference type mismatch for %s: expected dir=%t, got dir=%t",
			templateRef.Path, templateRef.IsDirectory(), info.IsDir())
	}

	return nil
}

// WriteFile creates parent directories and writes content to outputPath.
func WriteFile(outputPath, content string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	return nil
}
