package encore

import "html/template"

// FuncMap exposes the directives to html/template and text/template.
// The tag directives, including the legacy Encore names, return
// template.HTML so the markup is not escaped. asset returns a plain string
// because it is used inside attributes, where html/template escapes by context:
//
//	tmpl := template.New("page").Funcs(resolver.FuncMap())
//	// {{ link_tags "app" }} {{ script_tags "app" "admin" }} {{ asset "images/logo.png" }}
func (r *Resolver) FuncMap() template.FuncMap {
	linkTags := func(entryNames ...string) template.HTML {
		return r.LinkTags(nil, entryNames...).HTML()
	}
	scriptTags := func(entryNames ...string) template.HTML {
		return r.ScriptTags(nil, entryNames...).HTML()
	}

	return template.FuncMap{
		DirectiveLinkTags:         linkTags,
		DirectiveScriptTags:       scriptTags,
		LegacyDirectiveLinkTags:   linkTags,
		LegacyDirectiveScriptTags: scriptTags,
		DirectiveAsset: func(assetPath ...string) string {
			return r.Asset(nil, assetPath...).Val
		},
	}
}
