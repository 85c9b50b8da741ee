package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// SortKey selects the ordering of the presented records.
type SortKey string

const (
	SortByPort  SortKey = "port"
	SortByPID   SortKey = "pid"
	SortByProto SortKey = "proto"
)

// ParseSortKey validates a user-supplied sort key. Anything but
// port/pid/proto is a usage error.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(s); key {
	case SortByPort, SortByPID, SortByProto:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q (valid: port, pid, proto)", s)
}

// Query is the presentation selection, built once from parsed flags and
// passed by value; nothing reads filter or sort settings from ambient
// state.
type Query struct {
	Port    int    // exact port match when positive
	Name    string // case-insensitive owner-name substring when non-empty
	Sort    SortKey
	Reverse bool
}

// Select filters and orders a snapshot without mutating it. Filtering is
// applied per view; the underlying record set stays intact.
func Select(records []model.SocketRecord, q Query) []model.SocketRecord {
	out := make([]model.SocketRecord, 0, len(records))
	for _, r := range records {
		if q.Port > 0 && r.Port != q.Port {
			continue
		}
		if q.Name != "" && !ownerNameMatches(r, q.Name) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], q.Sort)
		if q.Reverse {
			return c > 0 // negate the whole chain, tie-breaks included
		}
		return c < 0
	})
	return out
}

// ownerNameMatches reports whether any owner's name contains sub,
// case-insensitively. Records without owners never match.
func ownerNameMatches(r model.SocketRecord, sub string) bool {
	sub = strings.ToLower(sub)
	for _, o := range r.Owners {
		if strings.Contains(strings.ToLower(o.Name), sub) {
			return true
		}
	}
	return false
}

// compare orders two records by the selected key, with a fixed tie-break
// per key: port and pid fall back to protocol, proto falls back to port.
func compare(a, b model.SocketRecord, key SortKey) int {
	switch key {
	case SortByPID:
		if c := a.MinOwnerPID() - b.MinOwnerPID(); c != 0 {
			return c
		}
		return strings.Compare(a.Protocol, b.Protocol)
	case SortByProto:
		if c := strings.Compare(a.Protocol, b.Protocol); c != 0 {
			return c
		}
		return a.Port - b.Port
	default:
		if c := a.Port - b.Port; c != 0 {
			return c
		}
		return strings.Compare(a.Protocol, b.Protocol)
	}
}
