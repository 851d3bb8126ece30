package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Execution struct {
	ID string `gorm:"primarykey"`

	Platform string
	Language string
	Status   Status `gorm:"index"`

	// The HTTP status code of the platform response, zero when no response
	// was received.
	HTTPStatus int
	// The status reported by the platform in its response body.
	UpstreamStatus string
	Error          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Client) InsertExecution(execution *Execution) error {
	result := c.DB.Create(execution)
	return errors.Wrapf(result.Error, "failed to insert execution %s", execution.ID)
}

// UpdateExecution updates the non-zero columns of the execution by id and
// reports whether a record was changed.
func (c Client) UpdateExecution(id string, columns Execution) (bool, error) {
	result := c.DB.Model(&Execution{ID: id}).Updates(columns)
	return result.RowsAffected > 0, errors.Wrapf(result.Error, "failed to update execution %s", id)
}

func (c Client) GetExecution(id string) (*Execution, error) {
	var execution Execution

	if err := c.DB.First(&execution, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExecutionNotFound
		}

		return nil, errors.Wrapf(err, "failed to get execution %s", id)
	}

	return &execution, nil
}
