//go:build linux

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

const netHeader = "  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode\n"

// fakeProcRoot lays out a minimal /proc: one tcp table and one process
// holding the listening socket. The other three tables are deliberately
// absent; a missing table degrades to zero records, never an error.
func fakeProcRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "net"), 0o755))
	tcp := netHeader +
		"   0: 0100007F:0016 00000000:0000 0A 00000000:00000000 00:00000000 00000000     0        0 999 1 ffff888000000000 100 0 0 10 0\n" +
		"   1: 0100007F:1F90 0100007F:A3B2 01 00000000:00000000 00:00000000 00000000     0        0 998 1 ffff888000000000 100 0 0 10 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "net", "tcp"), []byte(tcp), 0o644))

	pidDir := filepath.Join(root, "123")
	require.NoError(t, os.MkdirAll(filepath.Join(pidDir, "fd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pidDir, "comm"), []byte("sshd\n"), 0o644))
	require.NoError(t, os.Symlink("socket:[999]", filepath.Join(pidDir, "fd", "3")))

	return root
}

func TestSnapshotJoinsOwners(t *testing.T) {
	root := fakeProcRoot(t)

	records, err := Snapshot(Config{ProcRoot: root})
	require.NoError(t, err)
	require.Len(t, records, 1, "only the listening socket survives the default state filter")

	r := records[0]
	assert.Equal(t, model.ProtoTCP, r.Protocol)
	assert.Equal(t, 22, r.Port)
	assert.Equal(t, uint64(999), r.SocketID)
	require.Len(t, r.Owners, 1)
	assert.Equal(t, model.Owner{PID: 123, Name: "sshd"}, r.Owners[0])
}

func TestSnapshotAllStates(t *testing.T) {
	root := fakeProcRoot(t)

	records, err := Snapshot(Config{ProcRoot: root, AllStates: true})
	require.NoError(t, err)
	require.Len(t, records, 2)

	var established *model.SocketRecord
	for i := range records {
		if records[i].State == "01" {
			established = &records[i]
		}
	}
	require.NotNil(t, established)
	assert.Equal(t, 8080, established.Port)
	assert.Empty(t, established.Owners, "no process holds inode 998")
}

func TestSnapshotMissingRoot(t *testing.T) {
	_, err := Snapshot(Config{ProcRoot: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}
