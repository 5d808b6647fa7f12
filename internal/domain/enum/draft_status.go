package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DraftStatus represents the lifecycle state of a draft
type DraftStatus int

const (
	DraftStatusPending   DraftStatus = 0
	DraftStatusCompleted DraftStatus = 1
)

func (s DraftStatus) String() string {
	names := [...]string{"Pending", "Completed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// IsTerminal reports whether no further transitions are allowed from this status
func (s DraftStatus) IsTerminal() bool {
	return s == DraftStatusCompleted
}

func (s DraftStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DraftStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DraftStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = DraftStatusPending
	case "Completed":
		*s = DraftStatusCompleted
	}
	return nil
}

func (s DraftStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DraftStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DraftStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DraftStatus(v)
	case int:
		*s = DraftStatus(v)
	}
	return nil
}
