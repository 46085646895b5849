package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"parsefile/internal/config"
	"parsefile/internal/db"
	"parsefile/internal/iox"
	"parsefile/internal/manifest"
	"parsefile/internal/output"
	"parsefile/internal/pipeline"
	"parsefile/internal/sink"
)

var version = "v1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	inPath := flag.String("in", "", "Input file path (.gz is decompressed)")
	outPath := flag.String("out", "", "Output file path (default: stdout, .gz is compressed)")
	mode := flag.String("mode", cfg.Mode, "Mode: lines | fields | records")
	sep := flag.String("sep", cfg.Separator, "Field separator (literal string)")
	format := flag.String("format", cfg.Format, "Output format: text | json | yaml | csv")
	manifestPath := flag.String("manifest", "", "Job manifest (.yaml or .json)")
	strict := flag.Bool("strict-titles", false, "Reject repeated titles in records mode")
	mysqlTable := flag.String("mysql-table", "", "Also load records into this MySQL table")
	mysqlCreate := flag.Bool("mysql-create", false, "CREATE TABLE IF NOT EXISTS before loading")
	showPlan := flag.Bool("plan", false, "Show plan and exit")
	flag.Parse()

	m, err := pipeline.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	f, err := output.ParseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}

	jobs, err := planJobs(*inPath, *manifestPath, m, *sep, *strict)
	if err != nil {
		log.Fatal(err)
	}

	if *showPlan {
		fmt.Printf("==== parsefile %s Execution Plan ====\n", version)
		fmt.Printf("Output             : %s (%s)\n", outName(*outPath), f)
		fmt.Printf("MySQL table        : %s\n", *mysqlTable)
		for i, j := range jobs {
			fmt.Printf("Job %-3d            : %s mode=%s sep=%q strict=%v\n", i+1, j.Path, j.Mode, j.Separator, j.StrictTitles)
		}
		return
	}

	start := time.Now()
	err = run(cfg, jobs, *outPath, f, *mysqlTable, *mysqlCreate)
	log.Printf("⏱️ completed in %v", time.Since(start))
	if err != nil {
		log.Printf("[FAIL] %v", err)
		os.Exit(1)
	}
}

func planJobs(inPath, manifestPath string, mode pipeline.Mode, sep string, strict bool) ([]pipeline.Job, error) {
	switch {
	case inPath != "" && manifestPath != "":
		return nil, fmt.Errorf("use -in or -manifest, not both")
	case manifestPath != "":
		return manifest.Load(manifestPath, manifest.Defaults{Mode: mode, Separator: sep, Strict: strict})
	case inPath != "":
		return []pipeline.Job{{Path: inPath, Mode: mode, Separator: sep, StrictTitles: strict}}, nil
	}
	jobs := pipeline.Defaults(sep)
	for i := range jobs {
		jobs[i].StrictTitles = strict
	}
	return jobs, nil
}

// run writes every job to outPath. On failure a file output is removed, so a
// partial result is never left behind.
func run(cfg *config.Config, jobs []pipeline.Job, outPath string, f output.Format, table string, create bool) (err error) {
	var loader *sink.MySQL
	if table != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("[WARN] db close failed: %v", cerr)
			}
		}()
		loader = &sink.MySQL{DB: conn, Table: table, Chunk: cfg.SinkChunk, Create: create, LockTimeout: 10}
	}

	out, err := iox.CreateAuto(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		_ = out.Close()
		if outPath != "" && outPath != iox.Stdio {
			if rerr := os.Remove(outPath); rerr != nil && !os.IsNotExist(rerr) {
				log.Printf("[WARN] remove partial output %s: %v", outPath, rerr)
			}
		}
	}()

	w := output.New(out, output.Options{Format: f})

	for _, j := range jobs {
		log.Printf("[RUN] %s mode=%s", j.Path, j.Mode)
		res, err := pipeline.Run(j)
		if err != nil {
			return err
		}
		if err := res.Write(w); err != nil {
			return fmt.Errorf("write %s: %w", j.Path, err)
		}

		if loader != nil && j.Mode == pipeline.Records {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
			n, err := loader.Load(ctx, res.Titles, res.Records)
			cancel()
			if err != nil {
				return fmt.Errorf("load %s: %w", j.Path, err)
			}
			log.Printf("[OK ] %s: %d rows into %s", j.Path, n, table)
		}
		log.Printf("[OK ] %s: %d %s", j.Path, res.Count(), j.Mode)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return out.Close()
}

func outName(p string) string {
	if p == "" || p == iox.Stdio {
		return "stdout"
	}
	return p
}
