package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Long:  `Create the users, products, and orders tables if they do not already exist.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := newDBForMigrateCommand()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		for _, stmt := range schemaStatements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema migration failed: %w", err)
			}
		}

		fmt.Println("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		account VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uniq_users_account (account),
		UNIQUE KEY uniq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		price DOUBLE NOT NULL,
		description TEXT NOT NULL,
		seller_id BIGINT UNSIGNED NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_products_seller (seller_id),
		CONSTRAINT fk_products_seller FOREIGN KEY (seller_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		product_id BIGINT UNSIGNED NOT NULL,
		buyer_id BIGINT UNSIGNED NOT NULL,
		ordered_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_orders_product (product_id),
		KEY idx_orders_buyer (buyer_id),
		CONSTRAINT fk_orders_product FOREIGN KEY (product_id) REFERENCES products (id),
		CONSTRAINT fk_orders_buyer FOREIGN KEY (buyer_id) REFERENCES users (id)
	) ENGINE=InnoDB`,
}

func newDBForMigrateCommand() (*sql.DB, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
