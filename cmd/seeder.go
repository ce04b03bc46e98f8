package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample employees for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM pto_requests").Error; err != nil {
				log.Fatalf("failed to clear pto_requests: %v", err)
			}
			if err := db.Exec("DELETE FROM backups").Error; err != nil {
				log.Fatalf("failed to clear backups: %v", err)
			}
			if err := db.Exec("DELETE FROM employees").Error; err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		employees := []struct {
			ID        int64
			FirstName string
			LastName  string
			Email     string
		}{
			{1001, "Alice", "Johnson", "alice.johnson@example.com"},
			{1002, "Bob", "Smith", "bob.smith@example.com"},
			{1003, "Carol", "Williams", "carol.williams@example.com"},
			{1004, "David", "Brown", "david.brown@example.com"},
		}

		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE employee_id = ?", e.ID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO employees (employee_id, first_name, last_name, email) VALUES (?, ?, ?, ?)",
				e.ID, e.FirstName, e.LastName, e.Email).Error; err != nil {
				log.Fatalf("failed to insert employee %d: %v", e.ID, err)
			}
			fmt.Printf("Seeded employee: %d %s %s\n", e.ID, e.FirstName, e.LastName)
		}

		fmt.Println("Employees seeded successfully")
	},
}
