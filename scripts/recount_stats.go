package main

import (
	"fmt"
	"os"

	"github.com/scriptvault/backend/internal/config"
	"github.com/scriptvault/backend/internal/models"
)

// Audits the derived scripts_count column against the live script rows and
// reports any project that has drifted. Run with --fix to rewrite the
// drifted counters.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	db := models.GetDB()

	var projects []models.Project
	if err := db.Order("id").Find(&projects).Error; err != nil {
		fmt.Printf("Failed to read projects: %v\n", err)
		os.Exit(1)
	}

	fix := len(os.Args) > 1 && os.Args[1] == "--fix"
	drifted := 0

	for _, p := range projects {
		var actual int64
		if err := db.Model(&models.Script{}).Where("project_id = ?", p.ID).Count(&actual).Error; err != nil {
			fmt.Printf("Failed to count scripts for project %d: %v\n", p.ID, err)
			os.Exit(1)
		}

		if actual == p.ScriptsCount {
			continue
		}
		drifted++
		fmt.Printf("Project %d (%s): scripts_count=%d, actual=%d\n", p.ID, p.Name, p.ScriptsCount, actual)

		if fix {
			err := db.Model(&models.Project{}).Where("id = ?", p.ID).
				Update("scripts_count", actual).Error
			if err != nil {
				fmt.Printf("  failed to fix: %v\n", err)
			} else {
				fmt.Println("  fixed")
			}
		}
	}

	if drifted == 0 {
		fmt.Printf("Checked %d projects, all counters consistent\n", len(projects))
		return
	}
	if !fix {
		fmt.Printf("\n%d drifted counters found; rerun with --fix to repair\n", drifted)
	}
}
