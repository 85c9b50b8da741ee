package model

// StateListen is the kernel state code for a listening socket.
const StateListen = "0A"

var stateNames = map[string]string{
	"01": "ESTABLISHED",
	"02": "SYN_SENT",
	"03": "SYN_RECV",
	"04": "FIN_WAIT1",
	"05": "FIN_WAIT2",
	"06": "TIME_WAIT",
	"07": "CLOSE",
	"08": "CLOSE_WAIT",
	"09": "LAST_ACK",
	"0A": "LISTEN",
	"0B": "CLOSING",
}

// StateName maps a two-hex-digit kernel state code to its conventional
// name, or "UNKNOWN" for codes outside the table.
func StateName(code string) string {
	if name, ok := stateNames[code]; ok {
		return name
	}
	return "UNKNOWN"
}
