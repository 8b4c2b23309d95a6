// Package pipeline implements the HTML stages of page rendering.
//
// The stages run after the page template has been executed:
//   - Markdown to HTML fragment conversion via Goldmark (GFM, footnotes,
//     Chroma syntax highlighting with CSS classes)
//   - Tag injection: stylesheet links before </head>, scripts before </body>
//   - Asset path rewriting through the build manifest (img, link, script,
//     source elements)
//
// Entrypoint and manifest resolution is handled by the root encore package;
// this package only receives already rendered tags and a lookup function,
// which keeps it independent of the document formats.
package pipeline
