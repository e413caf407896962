package compare

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ChangeKind classifies a non-equal alignment block.
type ChangeKind string

const (
	Replace ChangeKind = "replace"
	Delete  ChangeKind = "delete"
	Insert  ChangeKind = "insert"
)

// ChangeRecord is one human-readable difference between two plans.
type ChangeRecord struct {
	Position int
	Kind     ChangeKind
	Message  string
}

// String renders the record as "<position>|<kind>|<message>".
func (c ChangeRecord) String() string {
	return strconv.Itoa(c.Position) + "|" + string(c.Kind) + "|" + c.Message
}

// MarshalJSON writes the record as a single JSON string.
func (c ChangeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ChangeRecord) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parts := strings.SplitN(s, "|", 3)
	if len(parts) != 3 {
		return fmt.Errorf("change record %q is not <position>|<kind>|<message>", s)
	}
	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("change record %q: bad position: %w", s, err)
	}
	switch kind := ChangeKind(parts[1]); kind {
	case Replace, Delete, Insert:
		c.Kind = kind
	default:
		return fmt.Errorf("change record %q: unknown kind %q", s, parts[1])
	}
	c.Position = pos
	c.Message = parts[2]
	return nil
}
