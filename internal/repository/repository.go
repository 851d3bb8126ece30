package repository

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrExecutionNotFound is returned when no execution exists by the given id.
var ErrExecutionNotFound = errors.New("execution not found")

type Client struct {
	DB *gorm.DB
}

func NewRepository(connectionURL string) (Repository, error) {
	db, err := gorm.Open(postgres.Open(connectionURL), &gorm.Config{})

	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := db.AutoMigrate(&Execution{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate executions")
	}

	return Client{DB: db}, nil
}

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks remote-execution-client/internal/repository Repository

type Repository interface {
	InsertExecution(execution *Execution) error
	UpdateExecution(id string, columns Execution) (bool, error)
	GetExecution(id string) (*Execution, error)
}
