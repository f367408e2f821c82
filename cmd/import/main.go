package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/milk9111/seasons/importer"
	"github.com/milk9111/seasons/materials"
)

// import runs the import pass over a level without opening a window and
// prints which material each layer ended up with.
func main() {
	levelName := flag.String("level", "meadow", "level name in levels/ (basename; .json or .tmx)")
	materialsDir := flag.String("materials", "materials", "directory of material specs overriding the embedded ones")
	scripts := flag.String("scripts", "", "comma-separated tengo post-processors to run before binding")
	listScripts := flag.Bool("list-scripts", false, "list the embedded post-processor scripts and exit")
	flag.Parse()

	if *listScripts {
		for _, name := range importer.EmbeddedScripts() {
			fmt.Println(name)
		}
		return
	}

	code, err := run(os.Stdout, *levelName, *materialsDir, splitList(*scripts))
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

// run returns exit code 2 when any layer names a material that does not
// exist, so the pass can gate a build.
func run(out io.Writer, levelName, materialsDir string, scripts []string) (int, error) {
	store, err := materials.LoadStore(materials.Sources(materialsDir)...)
	if err != nil {
		return 1, err
	}

	pipeline := importer.NewPipeline()
	for _, path := range scripts {
		sp, err := importer.LoadScriptProcessor(path)
		if err != nil {
			return 1, err
		}
		pipeline.Register(sp)
	}
	binder := importer.NewMaterialBinder(store)
	pipeline.Register(binder)

	if _, err := pipeline.Import(levelName); err != nil {
		return 1, err
	}

	writeReport(out, levelName, binder.Report())
	if len(binder.Report().Missing) > 0 {
		return 2, nil
	}
	return 0, nil
}

func writeReport(out io.Writer, levelName string, r importer.Report) {
	fmt.Fprintf(out, "%s: %d bound, %d missing, %d skipped\n", levelName, len(r.Bound), len(r.Missing), len(r.Skipped))
	for _, b := range r.Bound {
		fmt.Fprintf(out, "  bound   %-16s %s\n", b.Layer, b.Material)
	}
	for _, b := range r.Missing {
		fmt.Fprintf(out, "  missing %-16s %s\n", b.Layer, b.Material)
	}
	for _, name := range r.Skipped {
		fmt.Fprintf(out, "  skipped %s\n", name)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
