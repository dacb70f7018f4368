package jenkins

// Build represents the subset of a Jenkins build's api/json document the
// tools surface.
type Build struct {
	Number    int      `json:"number"`
	Result    string   `json:"result"`
	Building  bool     `json:"building"`
	Duration  int64    `json:"duration"` // milliseconds
	Timestamp int64    `json:"timestamp"`
	URL       string   `json:"url"`
	Actions   []Action `json:"actions"`
}

// Action is one entry of the build's actions array; only causes are used.
type Action struct {
	Causes []Cause `json:"causes"`
}

// Cause describes what triggered a build.
type Cause struct {
	ShortDescription string `json:"shortDescription"`
}

// TriggerDescriptions collects the shortDescription of every cause, in order.
func (b *Build) TriggerDescriptions() []string {
	var out []string
	for _, action := range b.Actions {
		for _, cause := range action.Causes {
			if cause.ShortDescription != "" {
				out = append(out, cause.ShortDescription)
			}
		}
	}
	return out
}
