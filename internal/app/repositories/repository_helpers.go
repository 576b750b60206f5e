package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// resolveSort maps the API sortBy/sortOrder filter values to a database
// column and direction. Only whitelisted fields sort; anything else falls
// back to the default, which also keeps user input out of the ORDER BY.
func resolveSort(filters map[string]interface{}, columns map[string]string, defaultColumn, defaultOrder string) (string, string) {
	sortColumn := defaultColumn
	if val, ok := filters["sortBy"]; ok {
		if field, ok := val.(string); ok {
			if column, ok := columns[field]; ok {
				sortColumn = column
			}
		}
	}

	sortOrder := defaultOrder
	if val, ok := filters["sortOrder"]; ok {
		if order, ok := val.(string); ok {
			switch strings.ToUpper(order) {
			case "ASC", "DESC":
				sortOrder = strings.ToUpper(order)
			}
		}
	}

	return sortColumn, sortOrder
}

// listOrphanIDs returns the IDs of rows in table whose student_id does not
// reference an existing user. student_id is a soft reference, so deleted
// users can leave rows behind between reconciliation sweeps.
func listOrphanIDs(ctx context.Context, pool *pgxpool.Pool, table string) ([]int64, error) {
	// table comes from a fixed call site, never user input
	query := fmt.Sprintf(
		"SELECT t.id FROM %s t WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = t.student_id)",
		table,
	)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orphan rows in %s: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan orphan id in %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// deleteOrphans removes rows in table whose student_id no longer references
// an existing user and reports how many were removed.
func deleteOrphans(ctx context.Context, pool *pgxpool.Pool, table string) (int64, error) {
	// table comes from a fixed call site, never user input
	query := fmt.Sprintf(
		"DELETE FROM %s t WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = t.student_id)",
		table,
	)

	tag, err := pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphan rows in %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}
