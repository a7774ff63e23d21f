package raids

import "time"

// Raid statuses, matching what the screenshot parser emits.
const (
	StatusSurvived = "survived"
	StatusKIA      = "kia"
	StatusExtract  = "extract"
)

// RaidItem is one piece of loot extracted from a raid.
type RaidItem struct {
	ID       string `json:"id,omitempty"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Value    int    `json:"value"`
	FIR      bool   `json:"fir"` // found in raid
}

// Raid is one logged ARC Raiders run.
type Raid struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"`
	Map        string     `json:"map"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	TotalValue int        `json:"total_value"`
	Items      []RaidItem `json:"items"`
}

// NewRaidRequest is the POST /api/raids body.
type NewRaidRequest struct {
	Date   *time.Time `json:"date,omitempty"`
	Map    string     `json:"map"`
	Status string     `json:"status"`
	Notes  string     `json:"notes,omitempty"`
	Items  []RaidItem `json:"items,omitempty"`
}

// TotalValue sums quantity*value across the request's items.
func (r *NewRaidRequest) TotalValue() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity * item.Value
	}
	return total
}
