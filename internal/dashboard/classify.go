package dashboard

import (
	"strings"

	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

type Fragments struct {
	Connected  []string
	Connecting []string
}

// Classify maps a status text to exactly one connection class. Connected
// fragments win over connecting ones.
func Classify(status string, f Fragments) view.ConnClass {
	if containsAny(status, f.Connected) {
		return view.ClassConnected
	}
	if containsAny(status, f.Connecting) {
		return view.ClassConnecting
	}
	return view.ClassNone
}

func containsAny(s string, fragments []string) bool {
	for _, frag := range fragments {
		if frag != "" && strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
