package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicateEntry reports a unique-key violation (MySQL 1062).
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrReferenceNotFound reports a foreign-key violation (MySQL 1452).
	ErrReferenceNotFound = errors.New("referenced row does not exist")
)

func translateMySQLError(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}
	switch mysqlErr.Number {
	case 1062:
		return ErrDuplicateEntry
	case 1452:
		return ErrReferenceNotFound
	}
	return err
}
