package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/gtechsltn/csharp-to-js/core/cache"
	"github.com/gtechsltn/csharp-to-js/core/config"
	"github.com/gtechsltn/csharp-to-js/core/converter"
	"github.com/gtechsltn/csharp-to-js/core/graph"
	"github.com/gtechsltn/csharp-to-js/core/introspect"
	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/gtechsltn/csharp-to-js/core/models"
	"github.com/gtechsltn/csharp-to-js/core/naming"
	"github.com/gtechsltn/csharp-to-js/core/resolver"
	"github.com/gtechsltn/csharp-to-js/core/shared"
	"github.com/gtechsltn/csharp-to-js/core/template_engine"
	"github.com/gtechsltn/csharp-to-js/core/writer"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingType    = errors.New("source has no type")
	ErrAnonymousType  = errors.New("anonymous types cannot be emitted as classes")
	ErrDuplicateClass = errors.New("duplicate class file")
	ErrInvalidName    = errors.New("type name is not a valid JavaScript identifier")
)

// GeneratedClass is one rendered class file.
type GeneratedClass struct {
	Class      *models.ClassRecord
	Properties []models.ConvertedProperty
	Imports    []string
	Statements []string
	Content    string
}

type classTemplateData struct {
	Name       string
	Imports    []string
	Statements []string
}

type Result struct {
	// Classes are in emission order: dependencies before dependents.
	Classes []*GeneratedClass
	// Cycles lists import cycles by file path. They are emitted as is.
	Cycles  [][]string
	Written []string
	Skipped []string
	// Graph relates the batch's class files through their imports.
	Graph *graph.ClassGraph
}

// Class finds a generated class by name.
func (r *Result) Class(name string) *GeneratedClass {
	for _, c := range r.Classes {
		if c.Class.Name == name {
			return c
		}
	}
	return nil
}

type ClassGenerator struct {
	cfg            *config.Config
	properties     *resolver.PropertyResolver
	converter      *converter.PropertyConverter
	propertyWriter *writer.PropertyWriter
	importWriter   *writer.ImportWriter
	engine         *template_engine.TemplateEngine
	cache          *cache.GenerationCache
}

type Option func(*ClassGenerator)

// WithCache shares a generation cache between runs.
func WithCache(c *cache.GenerationCache) Option {
	return func(g *ClassGenerator) {
		g.cache = c
	}
}

func WithConverter(pc *converter.PropertyConverter) Option {
	return func(g *ClassGenerator) {
		g.converter = pc
	}
}

func NewClassGenerator(cfg *config.Config, opts ...Option) (*ClassGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nameConverter, err := naming.ForStyle(cfg.NameStyle)
	if err != nil {
		return nil, err
	}
	keyStyle, err := naming.ForStyle(cfg.Serializer.KeyStyle)
	if err != nil {
		return nil, err
	}
	serializer := converter.NewJSONSerializer(converter.SerializerSettings{
		KeyStyle: keyStyle,
		OmitNil:  cfg.Serializer.OmitNil,
	})

	g := &ClassGenerator{
		cfg:        cfg,
		properties: resolver.NewPropertyResolver(),
		converter: converter.NewPropertyConverter(
			converter.WithNameConverter(nameConverter),
			converter.WithSerializer(serializer),
		),
		propertyWriter: writer.NewPropertyWriter(),
		importWriter:   writer.NewImportWriter(),
		engine:         template_engine.NewTemplateEngine(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cache == nil {
		g.cache = cache.NewGenerationCache()
	}
	return g, nil
}

// Build converts and renders a batch of sources without touching the disk.
func (g *ClassGenerator) Build(sources []models.Source) (*Result, error) {
	classes := make([]*GeneratedClass, len(sources))

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, source := range sources {
		eg.Go(func() error {
			class, err := g.convertClass(source)
			if err != nil {
				return err
			}
			classes[i] = class
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	records := make([]*models.ClassRecord, 0, len(classes))
	byRecord := make(map[*models.ClassRecord]*GeneratedClass, len(classes))
	seen := make(map[string]bool, len(classes))
	for _, class := range classes {
		if seen[class.Class.FilePath] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, class.Class.FilePath)
		}
		seen[class.Class.FilePath] = true
		records = append(records, class.Class)
		byRecord[class.Class] = class
	}

	dependencies := resolver.NewClassDependencyResolver(records)
	for _, class := range classes {
		if err := g.render(class, dependencies.Resolve(class.Class)); err != nil {
			return nil, err
		}
	}

	classGraph := graph.NewClassGraph()
	classGraph.BuildGraph(records, dependencies)

	result := &Result{Cycles: classGraph.DetectCycles(), Graph: classGraph}
	for _, cycle := range result.Cycles {
		logger.Warn("Import cycle: %s", strings.Join(cycle, " -> "))
	}
	for _, record := range classGraph.EmissionOrder() {
		result.Classes = append(result.Classes, byRecord[record])
	}

	logger.Debug("Built %d classes", len(result.Classes))
	return result, nil
}

// Write writes rendered classes in emission order, skipping unchanged files.
func (g *ClassGenerator) Write(result *Result) error {
	for _, class := range result.Classes {
		path := class.Class.FilePath
		needs, reason := g.cache.NeedsWrite(path, class.Content)
		if !needs {
			result.Skipped = append(result.Skipped, path)
			continue
		}

		if err := template_engine.WriteFile(path, class.Content); err != nil {
			return fmt.Errorf("failed to write class %s: %w", class.Class.Name, err)
		}
		if err := g.cache.MarkGenerated(path, class.Class.Name, class.Content); err != nil {
			return err
		}
		result.Written = append(result.Written, path)
		logger.Info("Generated %s for %s (%s)", g.relativeOutput(path), class.Class.Name, reason)
	}

	g.cache.LogStats()
	return nil
}

func (g *ClassGenerator) Generate(sources []models.Source) (*Result, error) {
	result, err := g.Build(sources)
	if err != nil {
		return nil, err
	}
	if err := g.Write(result); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateSchema loads the configured schema and generates every type in it.
func (g *ClassGenerator) GenerateSchema() (*Result, error) {
	schema, err := introspect.LoadSchema(g.cfg.SchemaPath())
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded %d types from %s", len(schema.Types), g.cfg.SchemaPath())
	return g.Generate(schema.Sources())
}

// Cache exposes the generation cache, e.g. for invalidation on config change.
func (g *ClassGenerator) Cache() *cache.GenerationCache {
	return g.cache
}

func (g *ClassGenerator) convertClass(source models.Source) (*GeneratedClass, error) {
	if source.Type == nil {
		return nil, ErrMissingType
	}
	name := source.Type.Name()
	if name == "" {
		return nil, fmt.Errorf("%w: %v", ErrAnonymousType, source.Type)
	}
	if !shared.IsIdentifier(name) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	record := &models.ClassRecord{
		OriginalType: source.Type,
		Name:         name,
		FilePath:     g.ClassFilePath(source.Type),
	}
	class := &GeneratedClass{Class: record}

	for _, prop := range g.properties.GetProperties(source.Type) {
		value, err := prop.Value(source.Instance)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		converted, err := g.converter.Convert(models.ConversionRequest{
			Property:           prop,
			OriginalValue:      value,
			IncludedNamespaces: g.cfg.IncludedNamespaces,
			ExcludedNamespaces: g.cfg.ExcludedNamespaces,
		})
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		if converted.Kind == models.PropertyInstance {
			record.AddDependency(prop.Type())
		}
		class.Properties = append(class.Properties, converted)
	}

	return class, nil
}

func (g *ClassGenerator) render(class *GeneratedClass, dependencies []*models.ClassRecord) error {
	sort.SliceStable(dependencies, func(i, j int) bool {
		return dependencies[i].FilePath < dependencies[j].FilePath
	})
	for _, dep := range dependencies {
		class.Imports = append(class.Imports, g.importWriter.Write(class.Class, dep))
	}
	for _, prop := range class.Properties {
		class.Statements = append(class.Statements, g.propertyWriter.Write(prop))
	}

	content, err := g.engine.Render(template_engine.TEMPLATES.CLASS.CLASS_JS, classTemplateData{
		Name:       class.Class.Name,
		Imports:    class.Imports,
		Statements: class.Statements,
	})
	if err != nil {
		return fmt.Errorf("failed to render class %s: %w", class.Class.Name, err)
	}
	class.Content = content
	return nil
}

// ClassFilePath maps a type to <output>/<namespace dirs>/<Name>.js, with the
// configured root namespace trimmed. Dotted namespaces split on dots, package
// paths on slashes.
func (g *ClassGenerator) ClassFilePath(t models.TypeDescriptor) string {
	namespace := t.Namespace()
	if root := g.cfg.RootNamespace; root != "" {
		if namespace == root {
			namespace = ""
		} else if strings.HasPrefix(namespace, root+".") || strings.HasPrefix(namespace, root+"/") {
			namespace = namespace[len(root)+1:]
		}
	}

	separator := "."
	if strings.Contains(namespace, "/") {
		separator = "/"
	}

	parts := []string{g.cfg.OutputDir()}
	for _, segment := range strings.Split(namespace, separator) {
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	parts = append(parts, t.Name()+".js")
	return filepath.Join(parts...)
}

func (g *ClassGenerator) relativeOutput(path string) string {
	rel, err := filepath.Rel(g.cfg.OutputDir(), path)
	if err != nil {
		return path
	}
	return rel
}
