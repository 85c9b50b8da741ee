//go:build linux

package pipeline

import (
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/juliomoralesp/port-scanner/internal/proc"
	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// Config selects what a snapshot reads. ProcRoot defaults to /proc and
// is overridable for tests.
type Config struct {
	ProcRoot  string
	AllStates bool // include non-listening states
}

var tables = []struct {
	file  string
	proto string
}{
	{"net/tcp", model.ProtoTCP},
	{"net/tcp6", model.ProtoTCP6},
	{"net/udp", model.ProtoUDP},
	{"net/udp6", model.ProtoUDP6},
}

// Snapshot takes a single point-in-time reading: the four protocol
// tables are parsed and the fd tables scanned concurrently, then owners
// are joined onto the records. Record order is unspecified here; callers
// order the result with Select.
func Snapshot(cfg Config) ([]model.SocketRecord, error) {
	root := cfg.ProcRoot
	if root == "" {
		root = "/proc"
	}

	parsed := make([][]model.SocketRecord, len(tables))
	var index map[uint64][]model.Owner

	var g errgroup.Group
	for i, t := range tables {
		g.Go(func() error {
			parsed[i] = proc.ParseSocketTable(filepath.Join(root, t.file), t.proto, !cfg.AllStates)
			return nil
		})
	}
	g.Go(func() error {
		var err error
		index, err = proc.ScanOwners(root)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []model.SocketRecord
	for _, batch := range parsed {
		records = append(records, batch...)
	}
	AttachOwners(records, index)
	return records, nil
}
