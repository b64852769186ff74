package postgres

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullString convierte "" en NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// timeRange arma el filtro opcional [from, to) sobre la columna col a partir del argumento n.
func timeRange(col string, from, to *time.Time, n int) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, col+" >= $"+strconv.Itoa(n+len(args)-1))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, col+" < $"+strconv.Itoa(n+len(args)-1))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}
