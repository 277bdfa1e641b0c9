// Command validate checks world files and reports every record the loader
// would skip.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixil98/go-adventure/internal/loader"
)

func main() {
	strict := flag.Bool("strict", false, "treat skipped records as failures")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-strict] <map.json|dir>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Warnings are printed by run; keep the loader's own logging quiet.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	os.Exit(run(flag.Args(), *strict, os.Stdout))
}

// run validates every path and returns the process exit code.
func run(paths []string, strict bool, w io.Writer) int {
	files, err := expand(paths)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return 1
	}

	code := 0
	for _, f := range files {
		res, err := loader.InspectFile(f)
		if err != nil {
			fmt.Fprintf(w, "%s: FAIL %v\n", f, err)
			code = 1
			continue
		}

		fmt.Fprintf(w, "%s: ok, %q with %d rooms\n", f, res.World.Name, res.World.Len())
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  warning: %v\n", warn)
		}
		if strict && len(res.Warnings) > 0 {
			code = 1
		}
	}

	return code
}

// expand replaces directories with the .json files directly inside them.
func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			files = append(files, p)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(p, "*.json"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}
