// Package blockdata loads the static block-ID dictionary ("blocks.json" in
// the vanilla data-generator report shape: {block_name: {states: [{id,
// properties}, ...]}}) and flattens it into an immutable state_id lookup
// table used for display purposes (logging which block a BLOCK_UPDATE or
// chunk section touched).
package blockdata

import (
	"encoding/json"
	"fmt"
	"io"
)

// StateInfo is what a Dictionary lookup returns for a given block-state id.
type StateInfo struct {
	Name       string
	StateIndex int
}

// Dictionary is an immutable state_id -> StateInfo table, built once and
// attached to a Session with SetBlockDictionary rather than held as a
// package-level global (spec.md §9's explicit call-out against mutable
// singletons). The chunk decoder does not consult it.
type Dictionary struct {
	states map[uint32]StateInfo
}

type rawState struct {
	ID         uint32 `json:"id"`
	Default    bool   `json:"default,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

type rawBlock struct {
	States []rawState `json:"states"`
}

// Load parses the block-ID dictionary JSON document from r.
func Load(r io.Reader) (*Dictionary, error) {
	var doc map[string]rawBlock
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode block dictionary: %w", err)
	}

	d := &Dictionary{states: make(map[uint32]StateInfo)}
	for name, block := range doc {
		for i, state := range block.States {
			d.states[state.ID] = StateInfo{Name: name, StateIndex: i}
		}
	}
	return d, nil
}

// Lookup returns the block name and state index for a given block-state id.
func (d *Dictionary) Lookup(stateID uint32) (StateInfo, bool) {
	if d == nil {
		return StateInfo{}, false
	}
	info, ok := d.states[stateID]
	return info, ok
}

// Len reports how many block states the dictionary holds.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.states)
}
