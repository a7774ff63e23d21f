package raids

import "errors"

// ErrRaidNotFound is returned when a raid ID does not exist in the store.
var ErrRaidNotFound = errors.New("raid not found")

// Storage persists the raid log. List returns raids newest first.
type Storage interface {
	// Save persists a new raid.
	Save(raid *Raid) error

	// List retrieves all raids sorted by date descending.
	List() ([]*Raid, error)

	// Delete removes a raid by ID. Returns ErrRaidNotFound when absent.
	Delete(raidID string) error

	// Close cleans up any resources.
	Close() error
}
