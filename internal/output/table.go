package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/juliomoralesp/port-scanner/pkg/model"
)

// NoOwnerMarker is rendered in place of the owner list when the fd scan
// found no process referencing the socket. That is a degraded result,
// not an error.
const NoOwnerMarker = "no owner found"

var (
	colorResetTable = "\033[0m"
	colorBoldTable  = "\033[1m"
	colorDimTable   = "\033[2m"
	colorGreenTable = "\033[32m"
)

// RenderTable writes the fixed-column table form. Owner names print
// literally, control characters included; escaping is the JSON form's
// concern. The STATE column appears only when non-listening states are
// in play.
func RenderTable(w io.Writer, records []model.SocketRecord, showState, colorEnabled bool) {
	colorReset := ""
	colorBold := ""
	colorDim := ""
	colorGreen := ""
	if colorEnabled {
		colorReset = colorResetTable
		colorBold = colorBoldTable
		colorDim = colorDimTable
		colorGreen = colorGreenTable
	}

	if showState {
		fmt.Fprintf(w, "%s%-6s %6s  %-26s %-12s %s%s\n",
			colorBold, "PROTO", "PORT", "ADDRESS", "STATE", "OWNER", colorReset)
	} else {
		fmt.Fprintf(w, "%s%-6s %6s  %-26s %s%s\n",
			colorBold, "PROTO", "PORT", "ADDRESS", "OWNER", colorReset)
	}

	for _, r := range records {
		owner := FormatOwners(r.Owners)
		if len(r.Owners) == 0 {
			owner = colorDim + owner + colorReset
		}
		if showState {
			fmt.Fprintf(w, "%-6s %s%6d%s  %-26s %-12s %s\n",
				r.Protocol, colorGreen, r.Port, colorReset,
				r.LocalAddr, model.StateName(r.State), owner)
		} else {
			fmt.Fprintf(w, "%-6s %s%6d%s  %-26s %s\n",
				r.Protocol, colorGreen, r.Port, colorReset, r.LocalAddr, owner)
		}
	}
}

// FormatOwners renders a record's owner list, or the no-owner marker.
// Every observed owner is shown, duplicates included.
func FormatOwners(owners []model.Owner) string {
	if len(owners) == 0 {
		return NoOwnerMarker
	}
	parts := make([]string, 0, len(owners))
	for _, o := range owners {
		parts = append(parts, fmt.Sprintf("%s (pid %d)", o.Name, o.PID))
	}
	return strings.Join(parts, ", ")
}
