package core

import (
	"database/sql"
)

type RepoError interface {
	GetError() error
	Type() string
	Error() string
}

type Repo struct {
	DB *sql.DB
}
