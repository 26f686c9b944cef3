// Command sofind is the thin CLI wrapper spec.md §1 excludes from core
// scope but every teacher command still needs: it reads a paramstore
// text file, loads a raw voxel buffer, runs the pipeline, and emits
// the resulting catalogue.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime"

	"github.com/banshee-data/sofind/internal/catalog"
	"github.com/banshee-data/sofind/internal/catalog/sqlcat"
	"github.com/banshee-data/sofind/internal/ingest"
	"github.com/banshee-data/sofind/internal/paramstore"
	"github.com/banshee-data/sofind/internal/pipeline"
)

var (
	paramFile     = flag.String("param", "", "path to a paramstore parameter file (key = value)")
	dataFile      = flag.String("data", "", "path to a raw little-endian float64 voxel buffer")
	nx            = flag.Int("nx", 0, "cube x-axis size")
	ny            = flag.Int("ny", 0, "cube y-axis size")
	nz            = flag.Int("nz", 0, "cube z-axis size")
	workers       = flag.Int("workers", 0, "worker pool size (0: auto-detect processor count)")
	verbosity     = flag.Int("v", 0, "log verbosity")
	catalogPath   = flag.String("catalog", "", "path to write the output catalogue (empty: skip)")
	catalogFormat = flag.String("catalog-format", "ascii", "catalogue format: ascii or votable")
	dbPath        = flag.String("db", "", "path to a sqlite catalogue database (empty: skip)")
)

func main() {
	flag.Parse()

	if *dataFile == "" || *nx <= 0 || *ny <= 0 || *nz <= 0 {
		log.Fatal("sofind: -data, -nx, -ny, and -nz are required")
	}

	store := paramstore.New()
	if *paramFile != "" {
		f, err := os.Open(*paramFile)
		if err != nil {
			log.Fatalf("sofind: failed to open parameter file: %v", err)
		}
		err = store.Parse(f)
		f.Close()
		if err != nil {
			exitWith(err)
		}
	}

	opts, err := store.Options()
	if err != nil {
		exitWith(err)
	}

	buf, err := readFloat64Buffer(*dataFile, (*nx)*(*ny)*(*nz))
	if err != nil {
		log.Fatalf("sofind: failed to read data file: %v", err)
	}

	var src ingest.Source = ingest.MemorySource{}
	data, err := src.LoadMemory(buf, *nx, *ny, *nz, opts.Region)
	if err != nil {
		log.Fatalf("sofind: failed to load cube: %v", err)
	}

	poolSize := *workers
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	ctx := pipeline.NewContext(*verbosity, poolSize)

	result, err := pipeline.Run(ctx, data, opts)
	if err != nil {
		exitWith(err)
	}

	rows := catalog.Project(result.Objects)
	fmt.Fprintf(os.Stderr, "sofind: run %s retained %d object(s)\n", ctx.RunID, len(rows))

	if *catalogPath != "" {
		if err := writeCatalogue(*catalogPath, *catalogFormat, rows); err != nil {
			log.Fatalf("sofind: failed to write catalogue: %v", err)
		}
	}

	if *dbPath != "" {
		db, err := sqlcat.Open(*dbPath)
		if err != nil {
			log.Fatalf("sofind: failed to open catalogue database: %v", err)
		}
		defer db.Close()
		if err := db.InsertRun(ctx.RunID, rows); err != nil {
			log.Fatalf("sofind: failed to persist catalogue: %v", err)
		}
	}
}

// exitWith maps a pipeline.Error to spec.md §6's process exit codes;
// any other error is treated as generic (exit code 1).
func exitWith(err error) {
	fmt.Fprintln(os.Stderr, "sofind: "+describeError(err))
	os.Exit(exitCodeFor(err))
}

func describeError(err error) string {
	if perr, ok := err.(*pipeline.Error); ok {
		return fmt.Sprintf("%s: %v", perr.Kind(), perr)
	}
	return err.Error()
}

func exitCodeFor(err error) int {
	if perr, ok := err.(*pipeline.Error); ok {
		return perr.ExitCode()
	}
	return pipeline.KindGeneric.ExitCode()
}

func readFloat64Buffer(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	buf := make([]float64, n)
	for i := range buf {
		var bits uint64
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("expected %d float64 values, file was shorter", n)
			}
			return nil, err
		}
		buf[i] = math.Float64frombits(bits)
	}
	return buf, nil
}

func writeCatalogue(path, format string, rows []catalog.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "votable":
		return catalog.WriteVOTable(f, rows)
	default:
		return catalog.WriteASCII(f, rows)
	}
}
