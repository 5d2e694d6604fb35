package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/repository/sqlite"
	"github.com/nattawatp/ai-tools-navigator/pkg/config"
	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
)

// catalogDump is the export envelope. Categories come first so an
// import can restore them before the tools that reference them.
type catalogDump struct {
	Categories []domain.Category `json:"categories"`
	Tools      []domain.Tool     `json:"tools"`
}

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")

	if len(os.Args) < 2 {
		fmt.Println("expected 'export' or 'import' subcommands")
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		doExport(repo)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		doImport(repo, *importFile)
	default:
		fmt.Println("expected 'export' or 'import' subcommands")
		os.Exit(1)
	}
}

func doExport(repo *sqlite.SQLiteRepository) {
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	tools, err := repo.ListTools(ctx, "")
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(catalogDump{Categories: categories, Tools: tools}); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doImport(repo *sqlite.SQLiteRepository, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	var dump catalogDump
	if err := json.NewDecoder(file).Decode(&dump); err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	ctx := context.Background()

	imported := 0
	for _, c := range dump.Categories {
		existing, _ := repo.GetCategory(ctx, c.ID)
		if existing != nil {
			log.Printf("Skipping existing category: %s", c.Name)
			continue
		}
		if err := repo.CreateCategory(ctx, &c); err != nil {
			log.Printf("Failed to import category %s: %v", c.Name, err)
		} else {
			imported++
		}
	}
	log.Printf("Imported %d categories", imported)

	imported = 0
	for _, t := range dump.Tools {
		existing, _ := repo.GetTool(ctx, t.ID)
		if existing != nil {
			log.Printf("Skipping existing tool: %s", t.Name)
			continue
		}
		if err := repo.CreateTool(ctx, &t); err != nil {
			log.Printf("Failed to import tool %s: %v", t.Name, err)
		} else {
			imported++
		}
	}
	log.Printf("Imported %d tools", imported)
}
