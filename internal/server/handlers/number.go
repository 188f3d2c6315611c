package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is an integer request field that also accepts a numeric string,
// e.g. 5 or "5". Fractions, empty strings and anything else are rejected.
type Number int

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}

	v, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("%q is not an integer", string(data))
	}
	*n = Number(v)
	return nil
}

// Int returns the plain value.
func (n Number) Int() int {
	return int(n)
}

// optionalInt turns an omitted field into nil.
func optionalInt(n *Number) *int {
	if n == nil {
		return nil
	}
	v := n.Int()
	return &v
}
