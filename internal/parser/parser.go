package parser //nolint:revive // intentional: does not conflict with go/parser in internal package

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// Validate parses a PostgreSQL script and returns how many statements it
// contains. Empty or whitespace-only input has zero statements.
func Validate(sql string) (int, error) {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return 0, nil
	}

	tree, err := pg_query.Parse(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parsing SQL: %w", err)
	}

	return len(tree.Stmts), nil
}
