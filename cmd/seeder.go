package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample accounts and permission grants for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM user_permissions"); err != nil {
				log.Fatalf("failed to clear user_permissions: %v", err)
			}
			if _, err := db.Exec("DELETE FROM account"); err != nil {
				log.Fatalf("failed to clear account: %v", err)
			}
			fmt.Println("cleared existing data")
		}

		accounts := []struct {
			NetworkID string
			Username  string
			About     string
			Enabled   bool
		}{
			{"@alice-dev-key.ed25519", "alice", "Sample active account", true},
			{"@bob-dev-key.ed25519", "bob", "Sample active account", true},
			{"@carol-dev-key.ed25519", "carol", "Sample disabled account", false},
		}

		for _, a := range accounts {
			var exists int
			err := db.QueryRow("SELECT 1 FROM account WHERE network_id = $1", a.NetworkID).Scan(&exists)
			if err == nil {
				fmt.Printf("account %s already exists; skipping\n", a.Username)
				continue
			}

			if _, err := db.Exec(
				"INSERT INTO account (network_id, username, about, enabled, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
				a.NetworkID, a.Username, a.About, a.Enabled,
			); err != nil {
				log.Fatalf("failed to insert account %s: %v", a.Username, err)
			}
			fmt.Println("seeded account:", a.Username)
		}

		// alice grants bob write access to the docs module
		var exists int
		err = db.QueryRow(
			"SELECT 1 FROM user_permissions WHERE assignee_external_id = $1 AND assigner_external_id = $2",
			"@bob-dev-key.ed25519", "@alice-dev-key.ed25519",
		).Scan(&exists)
		if err != nil {
			if _, err := db.Exec(
				"INSERT INTO user_permissions (assignee_external_id, assigner_external_id, permissions, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
				"@bob-dev-key.ed25519", "@alice-dev-key.ed25519", "docs:write",
			); err != nil {
				log.Fatalf("failed to insert sample grant: %v", err)
			}
			fmt.Println("seeded sample grant: alice -> bob docs:write")
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
