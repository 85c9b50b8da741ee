package output

import (
	"encoding/json"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// ToJSON renders records as an indented JSON array. Zero records still
// produce a valid empty array, and owners always marshal as a list,
// never null. encoding/json escapes quotes, backslashes and control
// characters in owner names.
func ToJSON(records []model.SocketRecord) (string, error) {
	out := make([]model.SocketRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].Owners == nil {
			out[i].Owners = []model.Owner{}
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
