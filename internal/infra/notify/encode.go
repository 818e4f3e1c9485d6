package notify

import (
	"encoding/json"
	"fmt"

	"github.com/BruksfildServices01/mester-scheduler/internal/events"
)

func encode(ev events.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", ev.Type, err)
	}
	return b, nil
}

// subject: prefixo + tipo, ex. "mester.events.proposal.accepted".
func subject(prefix string, ev events.Event) string {
	if prefix == "" {
		return ev.Type
	}
	return prefix + "." + ev.Type
}
