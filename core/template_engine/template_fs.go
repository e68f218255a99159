package template_engine

import "embed"

//go:embed all:templates
var TemplateFS embed.FS

type classTemplates struct {
	Ref      TemplateRef
	CLASS_JS TemplateRef
}

type initTemplates struct {
	Ref        TemplateRef
	TOJS_YAML  TemplateRef
	TYPES_YAML TemplateRef
}

var TEMPLATES = struct {
	CLASS classTemplates
	INIT  initTemplates
}{
	CLASS: classTemplates{
		Ref:      TemplateRef{Path: "class", IsDir: true},
		CLASS_JS: TemplateRef{Path: "class/class.js.tmpl"},
	},
	INIT: initTemplates{
		Ref:        TemplateRef{Path: "init", IsDir: true},
		TOJS_YAML:  TemplateRef{Path: "init/tojs.yaml.tmpl"},
		TYPES_YAML: TemplateRef{Path: "init/types.yaml.tmpl"},
	},
}
