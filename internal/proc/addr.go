package proc

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DecodeAddr converts the hex address encoding used by /proc/net tables
// into a printable IP string. IPv4 addresses are 8 hex digits holding a
// little-endian packed value (0100007F is 127.0.0.1). IPv6 addresses are
// 32 hex digits, two per byte; shorter input is left-padded with zeros.
// Empty or undecodable input yields "-", never an error.
func DecodeAddr(raw string, ipv6 bool) string {
	if raw == "" {
		return "-"
	}

	if !ipv6 {
		val, err := strconv.ParseUint(raw, 16, 32)
		if err != nil {
			return "-"
		}
		return fmt.Sprintf("%d.%d.%d.%d",
			byte(val), byte(val>>8), byte(val>>16), byte(val>>24))
	}

	if len(raw) < 32 {
		raw = strings.Repeat("0", 32-len(raw)) + raw
	}
	b, err := hex.DecodeString(raw[:32])
	if err != nil {
		return "-"
	}
	// net.IP.String handles zero compression (:: forms).
	return net.IP(b).String()
}

// decodePort parses the hex port field. Kernel input is trusted, so no
// range check; garbage parses to 0 like strtoul would.
func decodePort(raw string) int {
	p, _ := strconv.ParseUint(raw, 16, 32)
	return int(p)
}
