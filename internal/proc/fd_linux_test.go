//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// fakeProc builds a /proc-shaped tree: numeric process dirs with fd
// symlinks and optional comm/cmdline files. Symlink targets are dangling
// on purpose; only the link text matters, as it does for real socket fds.
func fakeProc(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	addPid := func(pid string, comm, cmdline string, fds map[string]string) {
		dir := filepath.Join(root, pid)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "fd"), 0o755))
		if comm != "" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte(comm), 0o644))
		}
		if cmdline != "" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0o644))
		}
		for name, target := range fds {
			require.NoError(t, os.Symlink(target, filepath.Join(dir, "fd", name)))
		}
	}

	addPid("123", "sshd\n", "", map[string]string{
		"3": "socket:[999]",
		"4": "/etc/hosts",
		"5": "pipe:[77]",
		"6": "socket:[999]", // second descriptor to the same socket
		"7": "anon_inode:[eventpoll]",
	})
	addPid("456", "", "nginx\x00-g\x00daemon off;\x00", map[string]string{
		"1": "socket:[1000]",
	})
	addPid("555", "", "", map[string]string{
		"2": "socket:[2000]",
	})
	addPid("789", "idle\n", "", map[string]string{
		"8": "socket:[0]", // no usable identifier, never a join key
	})

	// Non-process entries are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "self", "fd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "version"), []byte("test"), 0o644))

	return root
}

func TestScanOwners(t *testing.T) {
	root := fakeProc(t)

	owners, err := ScanOwners(root)
	require.NoError(t, err)

	// Two descriptors to the same socket stay as two observations.
	require.Len(t, owners[999], 2)
	assert.Equal(t, model.Owner{PID: 123, Name: "sshd"}, owners[999][0])
	assert.Equal(t, model.Owner{PID: 123, Name: "sshd"}, owners[999][1])

	// comm missing: fall back to cmdline with NULs as spaces.
	require.Len(t, owners[1000], 1)
	assert.Equal(t, model.Owner{PID: 456, Name: "nginx -g daemon off;"}, owners[1000][0])

	// Neither comm nor cmdline readable.
	require.Len(t, owners[2000], 1)
	assert.Equal(t, model.Owner{PID: 555, Name: "?"}, owners[2000][0])

	// socket:[0] must not enter the index.
	assert.NotContains(t, owners, uint64(0))
}

func TestScanOwnersMissingRoot(t *testing.T) {
	_, err := ScanOwners(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSocketInode(t *testing.T) {
	tests := []struct {
		link string
		want uint64
		ok   bool
	}{
		{"socket:[4242]", 4242, true},
		{"socket:[0]", 0, true},
		{"pipe:[4242]", 0, false},
		{"socket:[oops]", 0, false},
		{"socket:[4242", 0, false},
		{"/usr/lib/locale/locale-archive", 0, false},
	}
	for _, tt := range tests {
		got, ok := socketInode(tt.link)
		assert.Equal(t, tt.ok, ok, tt.link)
		assert.Equal(t, tt.want, got, tt.link)
	}
}
