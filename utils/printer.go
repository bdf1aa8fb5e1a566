package utils

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/AgnopraxLab/modvar/mutation"
)

// PrintVariables prints every field of h to stdout.
func PrintVariables(h mutation.Holder) {
	FprintFields(os.Stdout, h)
}

// FprintFields writes one line per field: name, type, metadata and the
// original value with its transform chain. Values are not read, so pending
// randomizations and access filters are left untouched.
func FprintFields(w io.Writer, h mutation.Holder) {
	for _, f := range h.Fields() {
		meta := f.Meta()
		fmt.Fprintf(w, "  %-12s %-10s %-10s %s", f.Name(), f.Type(), meta.Purpose, f.String())
		if f.Randomizing() {
			fmt.Fprint(w, " (randomize)")
		}
		fmt.Fprintln(w)
	}
}

// PrintPacket prints a packet header line and a hex dump of its bytes.
func PrintPacket(w io.Writer, index int, packet []byte) {
	fmt.Fprintf(w, "--- Packet %d (%d bytes) ---\n", index, len(packet))
	fmt.Fprint(w, hex.Dump(packet))
}

// PrintSummary prints a formatted run summary with sorted keys
func PrintSummary(w io.Writer, title string, stats map[string]interface{}) {
	fmt.Fprintf(w, "\n=== %s Summary ===\n", title)
	keys := maps.Keys(stats)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s: %v\n", key, stats[key])
	}
	fmt.Fprintln(w, strings.Repeat("=", 30))
}
