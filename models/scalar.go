package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Flag is a boolean that also decodes from the quoted "true" and "false"
// found in XML replies.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "", "null":
		*f = false
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid flag %s", data)
	}
	*f = Flag(b)
	return nil
}

// Count is an integer that also decodes from a quoted number.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	var n int
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return fmt.Errorf("invalid count %s: %w", data, err)
	}
	*c = Count(n)
	return nil
}
