//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// ScanOwners walks every numeric entry under procRoot, resolves each open
// file descriptor, and maps socket inode -> processes observed holding
// it, in discovery order. The scan is best effort: processes that exit
// mid-scan, unreadable fd tables and permission failures are skipped
// silently. Only a failure to enumerate procRoot itself is an error.
func ScanOwners(procRoot string) (map[uint64][]model.Owner, error) {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", procRoot, err)
	}

	owners := make(map[uint64][]model.Owner)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue // not a process directory
		}

		fdDir := filepath.Join(procRoot, entry.Name(), "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue
		}

		name := ""
		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil {
				continue
			}
			inode, ok := socketInode(link)
			if !ok || inode == 0 {
				continue
			}
			if name == "" {
				name = processName(procRoot, pid)
			}
			owners[inode] = append(owners[inode], model.Owner{PID: pid, Name: name})
		}
	}
	return owners, nil
}

// socketInode extracts N from a "socket:[N]" descriptor target. Pipes,
// anonymous inodes and regular files report false.
func socketInode(link string) (uint64, bool) {
	rest, ok := strings.CutPrefix(link, "socket:[")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, "]")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// processName resolves a display name for a pid: comm with its single
// trailing newline trimmed, else cmdline with NUL separators replaced by
// spaces, else "?".
func processName(procRoot string, pid int) string {
	dir := filepath.Join(procRoot, strconv.Itoa(pid))

	if b, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
		name := strings.TrimSuffix(string(b), "\n")
		if name != "" {
			return name
		}
	}

	if b, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil {
		name := strings.TrimSpace(strings.ReplaceAll(string(b), "\x00", " "))
		if name != "" {
			return name
		}
	}

	return "?"
}
