// Package encore resolves Webpack Encore build documents into HTML for
// server-rendered templates.
//
// # Quick Start
//
// Point a Resolver at the files Encore writes to the output directory and
// register its functions with html/template:
//
//	resolver := encore.New(
//	    encore.WithEntrypointsFile("public/build/entrypoints.json"),
//	    encore.WithManifestFile("public/build/manifest.json"),
//	)
//
//	tmpl := template.Must(template.New("layout").Funcs(resolver.FuncMap()).Parse(`
//	<head>{{ link_tags "app" }}</head>
//	<body>
//	  <img src="{{ asset "build/images/logo.png" }}">
//	  {{ script_tags "app" }}
//	</body>`))
//
// # Directives
//
//   - link_tags: one <link rel="stylesheet"> per CSS file of the named entrypoints
//   - script_tags: one <script> per JS file of the named entrypoints
//   - asset: the physical path recorded in manifest.json for a logical path
//
// Files shared by several entrypoints are emitted once. Output is sorted by
// file path, so it does not depend on argument order. When entrypoints.json
// carries an "integrity" map, matching tags get an integrity attribute.
// The names encore_entry_link_tags and encore_entry_script_tags are
// accepted as aliases.
//
// # Caching and Failures
//
// Each document is read on first use and kept for the lifetime of the
// Resolver. A missing or malformed document never surfaces as an error from
// the directives: they render nothing, and the next call retries the read.
// Use Resolver.Entrypoints and Resolver.Manifest to inspect load failures.
//
// # Other Template Engines
//
// Engines with a parse-time extension protocol can use Resolver.Parse with
// an adapter implementing Parser, then CallNode.Render at render time.
// Engines that call functions directly can use Resolver.Call.
//
// # Pages
//
// Renderer renders whole pages: optional Markdown content, tag injection
// for a list of entrypoints, and rewriting of asset references through the
// manifest.
package encore
