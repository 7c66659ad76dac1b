package repository

import (
	"errors"
	"fmt"
	"strings"

	"job-portal/internal/database"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func isNoRows(err error) bool {
	return errors.Is(err, database.ErrNoRows)
}

// likePattern turns user input into a literal, case-insensitive substring
// pattern for ILIKE.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func collect[T any](rows database.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func invalidRow(table string, err error) error {
	return fmt.Errorf("%s: %w", table, err)
}
