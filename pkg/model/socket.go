package model

// Protocol tags, matching the kernel's per-protocol table names under
// /proc/net.
const (
	ProtoTCP  = "tcp"
	ProtoTCP6 = "tcp6"
	ProtoUDP  = "udp"
	ProtoUDP6 = "udp6"
)

// Owner is one process observed holding an open descriptor for a socket.
type Owner struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
}

// SocketRecord is one row of a /proc/net socket table, with the owning
// processes attached after the fd scan. SocketID is the socket inode; it
// is a join key only, and 0 means the table did not report one.
type SocketRecord struct {
	Protocol  string  `json:"proto"`
	LocalAddr string  `json:"address"`
	Port      int     `json:"port"`
	State     string  `json:"state"` // two-hex-digit kernel state code
	SocketID  uint64  `json:"inode"`
	Owners    []Owner `json:"owners"`
}

// MinOwnerPID returns the smallest owning pid, or 0 when no owner was
// found. Used as the sort value for pid ordering, so ownerless records
// group first in an ascending sort.
func (r SocketRecord) MinOwnerPID() int {
	min := 0
	for i, o := range r.Owners {
		if i == 0 || o.PID < min {
			min = o.PID
		}
	}
	return min
}
