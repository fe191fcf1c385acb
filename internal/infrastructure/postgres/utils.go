package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation indica si err proviene de una violación de llave única
// (SQLSTATE 23505), p.ej. registrar dos veces el mismo código de terminal.
// pgx envuelve todo error del servidor en *pgconn.PgError, así que basta
// inspeccionar el código.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
