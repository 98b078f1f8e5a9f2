package llm

// DeltaKind discriminates the increments a stream chunk can carry.
type DeltaKind int

const (
	// DeltaContent is a fragment of assistant text.
	DeltaContent DeltaKind = iota
	// DeltaToolCall is a fragment of a tool call (id, name and/or argument text).
	DeltaToolCall
	// DeltaFinish is a terminal reason for the current stream segment.
	DeltaFinish
)

// Delta is one normalized increment from a streaming chat completion.
// Exactly the fields for its Kind are set.
type Delta struct {
	Kind         DeltaKind
	Content      string
	ToolCall     ToolCall
	FinishReason string
}

// Deltas flattens a chunk into ordered increments: content first, then
// tool-call fragments, then the finish reason if present. Providers may pack
// any combination into one chunk.
func (c *StreamChunk) Deltas() []Delta {
	if len(c.Choices) == 0 {
		return nil
	}

	choice := c.Choices[0]
	var out []Delta

	if choice.Delta != nil {
		if choice.Delta.Content != "" {
			out = append(out, Delta{Kind: DeltaContent, Content: choice.Delta.Content})
		}
		for _, tc := range choice.Delta.ToolCalls {
			out = append(out, Delta{Kind: DeltaToolCall, ToolCall: tc})
		}
	}

	if choice.FinishReason != "" {
		out = append(out, Delta{Kind: DeltaFinish, FinishReason: choice.FinishReason})
	}

	return out
}

// ToolCallAccumulator assembles complete tool calls from streamed fragments.
// A fragment with an id introduces (or re-selects) a call; a fragment without
// one continues the most recently introduced call. Argument text is
// concatenated in arrival order and must only be parsed once the upstream
// signals the calls are ready.
type ToolCallAccumulator struct {
	order   []string
	calls   map[string]*ToolCall
	current string
}

// NewToolCallAccumulator creates an empty accumulator for one streaming round.
func NewToolCallAccumulator() *ToolCallAccumulator {
	return &ToolCallAccumulator{calls: make(map[string]*ToolCall)}
}

// Add folds one tool-call fragment into the accumulator.
func (a *ToolCallAccumulator) Add(tc ToolCall) {
	id := tc.ID
	if id == "" {
		id = a.current
	}
	if id == "" {
		// Continuation fragment before any call was introduced; nothing to
		// attach it to.
		return
	}

	if _, ok := a.calls[id]; !ok {
		a.calls[id] = &ToolCall{ID: id, Type: "function"}
		a.order = append(a.order, id)
	}
	if tc.ID != "" {
		a.current = tc.ID
	}

	call := a.calls[id]
	if tc.Function.Name != "" {
		call.Function.Name = tc.Function.Name
	}
	call.Function.Arguments += tc.Function.Arguments
}

// Calls returns the accumulated calls in the order they were introduced.
func (a *ToolCallAccumulator) Calls() []ToolCall {
	out := make([]ToolCall, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.calls[id])
	}
	return out
}
