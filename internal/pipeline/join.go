package pipeline

import (
	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// AttachOwners joins the fd-scan index onto the socket records in place.
// Owners are appended in the index's discovery order, without dedup.
// A record whose socket id is 0 never joins: the id was unavailable, and
// two unknowns must not match each other.
func AttachOwners(records []model.SocketRecord, index map[uint64][]model.Owner) {
	for i := range records {
		id := records[i].SocketID
		if id == 0 {
			continue
		}
		if owners, ok := index[id]; ok {
			records[i].Owners = append(records[i].Owners, owners...)
		}
	}
}
