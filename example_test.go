package encore_test

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/alnah/go-encore"
)

var exampleFS = fstest.MapFS{
	"build/entrypoints.json": {Data: []byte(`{
  "entrypoints": {
    "app": {
      "js": ["/build/runtime.js", "/build/app.js"],
      "css": ["/build/app.css"]
    },
    "admin": {
      "js": ["/build/runtime.js", "/build/admin.js"]
    }
  }
}`)},
	"build/manifest.json": {Data: []byte(`{
  "build/app.js": "/build/app.3f2a1c.js",
  "build/images/logo.png": "/build/images/logo.8b7d.png"
}`)},
}

func newExampleResolver() *encore.Resolver {
	return encore.New(
		encore.WithFS(exampleFS),
		encore.WithEntrypointsFile("build/entrypoints.json"),
		encore.WithManifestFile("build/manifest.json"),
	)
}

// Example demonstrates the directives registered with html/template.
func Example() {
	resolver := newExampleResolver()

	tmpl := template.Must(template.New("layout").Funcs(resolver.FuncMap()).Parse(
		`{{ link_tags "app" }}{{ script_tags "app" "admin" }}<img src="{{ asset "build/images/logo.png" }}">`,
	))

	if err := tmpl.Execute(os.Stdout, nil); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// <link rel="stylesheet" href="/build/app.css">
	// <script src="/build/admin.js"></script>
	// <script src="/build/app.js"></script>
	// <script src="/build/runtime.js"></script>
	// <img src="/build/images/logo.8b7d.png">
}

// ExampleResolver_Asset shows that unknown paths resolve to nothing.
func ExampleResolver_Asset() {
	resolver := newExampleResolver()

	fmt.Printf("%q\n", resolver.Asset(nil, "build/app.js").Val)
	fmt.Printf("%q\n", resolver.Asset(nil, "build/missing.js").Val)
	// Output:
	// "/build/app.3f2a1c.js"
	// ""
}

// ExampleNew_files reads the documents from an Encore output directory.
func ExampleNew_files() {
	dir, err := os.MkdirTemp("", "encore-example-*")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	entrypoints := filepath.Join(dir, "entrypoints.json")
	data := `{"entrypoints":{"app":{"css":["/build/app.css"]}}}`
	if err := os.WriteFile(entrypoints, []byte(data), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	resolver := encore.New(encore.WithEntrypointsFile(entrypoints))
	tags := resolver.LinkTags(nil, "app")
	fmt.Print(tags.Val)
	fmt.Println(tags.Length)
	// Output:
	// <link rel="stylesheet" href="/build/app.css">
	// 46
}

// ExampleRenderer_Render renders a page with injected tags.
func ExampleRenderer_Render() {
	renderer := encore.NewRenderer(newExampleResolver())

	result, err := renderer.Render(context.Background(), encore.Page{
		Template: "<html><head></head><body></body></html>",
		Entries:  []string{"app"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.HTML)
	// Output:
	// <html><head><link rel="stylesheet" href="/build/app.css">
	// </head><body><script src="/build/app.js"></script>
	// <script src="/build/runtime.js"></script>
	// </body></html>
}

// ExampleComputeIntegrity computes the value written into integrity attributes.
func ExampleComputeIntegrity() {
	value, err := encore.ComputeIntegrity(encore.AlgorithmSHA384, []byte("alert('Hello, world.');"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(value)
	// Output: sha384-H8BRh8j48O9oYatfu5AZzq6A9RINhZO5H16dQZngK7T62em8MUt1FLm52t+eX6xO
}
