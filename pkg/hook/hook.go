// Package hook adapts guardrail to agent and editor hook protocols: a JSON
// event describing a file edit arrives on stdin, and a decision goes back.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"guardrail/pkg/report"
	"guardrail/pkg/rules"
)

// Decision verdicts.
const (
	Allow = "allow"
	Block = "block"
)

// ToolInput carries the edited file. Agents send more fields than this;
// only file_path matters here.
type ToolInput struct {
	FilePath string `json:"file_path"`
}

// Event is the payload an agent pipes in around an edit.
type Event struct {
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
	Cwd           string    `json:"cwd"`
}

// Path returns the edited file, or "" when the event carries none.
func (e Event) Path() string {
	return strings.TrimSpace(e.ToolInput.FilePath)
}

// ParseEvent reads one event from r. Empty input parses to a zero event
// rather than an error: an event without a file path means there is nothing
// to check, and the adapter allows the edit.
func ParseEvent(r io.Reader) (Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Event{}, fmt.Errorf("reading hook event: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Event{}, nil
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("parsing hook event: %w", err)
	}
	return ev, nil
}

// Decision is the verdict sent back to the agent. A block carries the error
// findings as its reason; an allow carries nothing.
type Decision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// Blocks reports whether the edit should be refused.
func (d Decision) Blocks() bool {
	return d.Decision == Block
}

// Decide converts a report into a hook decision. Only error findings block;
// warnings and infos never stop an edit.
func Decide(rep report.Report) Decision {
	if rep.Passed() {
		return Decision{Decision: Allow}
	}

	var lines []string
	for _, f := range rep.Findings {
		if f.Severity != rules.Error {
			continue
		}
		lines = append(lines, reasonLine(f))
	}
	return Decision{Decision: Block, Reason: strings.Join(lines, "\n")}
}

func reasonLine(f rules.Finding) string {
	loc := f.File
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.File, f.Line)
	}
	return fmt.Sprintf("%s: %s (%s)", loc, f.Message, f.Rule)
}
