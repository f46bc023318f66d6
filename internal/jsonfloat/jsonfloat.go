// Package jsonfloat encodes float64 values so that whole numbers keep a
// fractional part ("0.0" rather than "0") in the JSON reports.
package jsonfloat

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes v like encoding/json and appends ".0" when the result
// has neither a fraction nor an exponent. NaN and infinities are rejected.
func Marshal(v float64) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !bytes.ContainsAny(data, ".eE") {
		data = append(data, '.', '0')
	}
	return data, nil
}
