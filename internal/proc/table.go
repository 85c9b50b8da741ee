package proc

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// ParseSocketTable reads one /proc/net socket table and returns a record
// per data line. An unopenable table (protocol compiled out, or
// unreadable) yields no records and no error; completeness degrades,
// the run does not.
//
// Line format, whitespace-tokenized after a single header line:
// field 1 is local_address:port (hex), field 3 is the state code,
// field 9 is the socket inode in decimal. Lines with fewer than four
// fields, or a local field without a colon, are skipped.
func ParseSocketTable(path, proto string, onlyListening bool) []model.SocketRecord {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	ipv6 := strings.Contains(proto, "6")

	scanner := bufio.NewScanner(f)
	scanner.Scan() // skip header

	var records []model.SocketRecord
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}

		state := fields[3]
		if onlyListening && state != model.StateListen {
			continue
		}

		local := strings.SplitN(fields[1], ":", 2)
		if len(local) < 2 {
			continue
		}

		var inode uint64
		if len(fields) > 9 {
			inode, _ = strconv.ParseUint(fields[9], 10, 64)
		}

		records = append(records, model.SocketRecord{
			Protocol:  proto,
			LocalAddr: DecodeAddr(local[0], ipv6),
			Port:      decodePort(local[1]),
			State:     state,
			SocketID:  inode,
		})
	}
	return records
}
