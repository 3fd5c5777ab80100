// quotareset zeroes the usage counters for one tenant, or for every tenant,
// at the start of a billing period. It is meant to run from cron on the
// first of the month.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

func main() {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set")
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	query := "UPDATE tenant_quotas SET used_count = 0"
	args := []any{}
	if len(os.Args) > 1 {
		query += " WHERE tenant_id = $1"
		args = append(args, os.Args[1])
	}

	tag, err := conn.Exec(context.Background(), query, args...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Quota reset failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Reset %d quota rows.\n", tag.RowsAffected())
}
