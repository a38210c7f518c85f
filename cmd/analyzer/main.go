package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"smv_analyzer/pkg/core/extract"
	"smv_analyzer/pkg/core/pipeline"
	"smv_analyzer/pkg/core/taxonomy"
	"smv_analyzer/pkg/export"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults and flags.")
	}

	company := flag.String("empresa", envOr("SMV_COMPANY", "EMPRESA"), "company label stamped on the report")
	out := flag.String("out", envOr("SMV_OUTPUT", "analisis.xlsx"), "output spreadsheet path")
	taxonomyPath := flag.String("taxonomy", os.Getenv("SMV_TAXONOMY"), "optional taxonomy YAML overriding the embedded one")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("usage: analyzer [-empresa NAME] [-out FILE] statement1.xls [statement2.xls ...]")
	}

	cfg := taxonomy.Default()
	if *taxonomyPath != "" {
		var err error
		if cfg, err = taxonomy.Load(*taxonomyPath); err != nil {
			log.Fatalf("Error loading taxonomy: %v", err)
		}
	}

	// The merge is order-sensitive; documents are folded in argument order.
	docs := make([]extract.Document, 0, len(files))
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Error reading %s: %v", path, err)
		}
		docs = append(docs, extract.Document{Name: path, Raw: raw})
	}

	fmt.Printf("📂 Consolidating %d statement file(s) for %s...\n", len(docs), *company)
	o := pipeline.NewOrchestrator(cfg, extract.TableIDs{})
	res := o.Run(docs, *company)
	for _, w := range res.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}

	f, err := export.Render(res)
	if err != nil {
		log.Fatalf("Error rendering report: %v", err)
	}
	if err := f.SaveAs(*out); err != nil {
		log.Fatalf("Error writing %s: %v", *out, err)
	}

	fmt.Printf("✅ Report written to %s (%d balance years, %d common years, run %s)\n",
		*out, len(res.Balance.Years()), len(res.CommonYears), res.RunID)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
