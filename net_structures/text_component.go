package net_structures

import (
	"encoding/json"

	"github.com/brackenfield/mcclient/nbt"
)

// TextComponent is a Minecraft chat/text component — a tree of content nodes
// (plain text, a translation key, a keybind, a scoreboard score, an entity
// selector, or raw NBT) each carrying its own style and optional click/hover
// events, with Extra appending sibling nodes that inherit nothing from their
// parent automatically.
//
// Wire format since 1.20.3 is NBT (network format, nameless root); before
// that it was JSON, which UnmarshalJSON still supports for any caller
// building components from config files or command input.
type TextComponent struct {
	// Exactly one of these identifies the node's content; Go's zero values
	// make "none set" distinguishable from "set to empty" only for Score
	// (a nil pointer) and the strings (empty means absent, per nbt/json
	// `omitempty`).
	Text       string `nbt:"text,omitempty" json:"text,omitempty"`
	Translate  string `nbt:"translate,omitempty" json:"translate,omitempty"`
	Keybind    string `nbt:"keybind,omitempty" json:"keybind,omitempty"`
	Score      *Score `nbt:"score,omitempty" json:"score,omitempty"`
	Selector   string `nbt:"selector,omitempty" json:"selector,omitempty"`
	NBT        string `nbt:"nbt,omitempty" json:"nbt,omitempty"`
	NBTBlock   string `nbt:"block,omitempty" json:"block,omitempty"`
	NBTEntity  string `nbt:"entity,omitempty" json:"entity,omitempty"`
	NBTStorage string `nbt:"storage,omitempty" json:"storage,omitempty"`
	Interpret  *bool  `nbt:"interpret,omitempty" json:"interpret,omitempty"`

	// With supplies the translation arguments when Translate is set.
	With []TextComponent `nbt:"with,omitempty" json:"with,omitempty"`

	Color         string `nbt:"color,omitempty" json:"color,omitempty"`
	Bold          *bool  `nbt:"bold,omitempty" json:"bold,omitempty"`
	Italic        *bool  `nbt:"italic,omitempty" json:"italic,omitempty"`
	Underlined    *bool  `nbt:"underlined,omitempty" json:"underlined,omitempty"`
	Strikethrough *bool  `nbt:"strikethrough,omitempty" json:"strikethrough,omitempty"`
	Obfuscated    *bool  `nbt:"obfuscated,omitempty" json:"obfuscated,omitempty"`
	Font          string `nbt:"font,omitempty" json:"font,omitempty"`
	Insertion     string `nbt:"insertion,omitempty" json:"insertion,omitempty"`

	ClickEvent *ClickEvent `nbt:"click_event,omitempty" json:"clickEvent,omitempty"`
	HoverEvent *HoverEvent `nbt:"hover_event,omitempty" json:"hoverEvent,omitempty"`

	Extra []TextComponent `nbt:"extra,omitempty" json:"extra,omitempty"`
}

// Score is score-component content: the name of a scoreboard entry and the
// objective it's read from, resolved by the client's own scoreboard state
// rather than carried on the wire.
type Score struct {
	Name      string `nbt:"name"`
	Objective string `nbt:"objective"`
}

// ClickEvent is a text component's click behavior (1.21.5+ shape). Action
// selects which of the remaining fields is meaningful; the rest are left
// zero.
type ClickEvent struct {
	Action  string `nbt:"action"`
	URL     string `nbt:"url,omitempty"`     // open_url
	Path    string `nbt:"path,omitempty"`    // open_file
	Command string `nbt:"command,omitempty"` // run_command, suggest_command
	Page    int32  `nbt:"page,omitempty"`    // change_page
	Value   string `nbt:"value,omitempty"`   // copy_to_clipboard
	Dialog  any    `nbt:"dialog,omitempty"`  // show_dialog
	ID      string `nbt:"id,omitempty"`      // custom
	Payload any    `nbt:"payload,omitempty"` // custom
}

// HoverEvent is a text component's hover behavior (1.21.5+ shape), same
// one-Action-many-fields layout as ClickEvent.
type HoverEvent struct {
	Action     string `nbt:"action"`
	Value      any    `nbt:"value,omitempty"`      // show_text: nested component
	ID         string `nbt:"id,omitempty"`         // show_entity, show_item: type/item id
	EntityUUID any    `nbt:"uuid,omitempty"`       // show_entity: IntArray
	Name       any    `nbt:"name,omitempty"`       // show_entity: optional component
	Count      int32  `nbt:"count,omitempty"`      // show_item
	Components any    `nbt:"components,omitempty"` // show_item: item component compound
}

// NewTextComponent wraps text as a content-only component.
func NewTextComponent(text string) TextComponent {
	return TextComponent{Text: text}
}

// NewTranslateComponent builds a translatable component from a translation
// key and its positional arguments.
func NewTranslateComponent(key string, args ...TextComponent) TextComponent {
	return TextComponent{Translate: key, With: args}
}

// hasContentBeyondText reports whether any content field other than Text is
// populated.
func (tc *TextComponent) hasContentBeyondText() bool {
	return tc.Translate != "" || tc.Keybind != "" || tc.Score != nil ||
		tc.Selector != "" || tc.NBT != "" || tc.NBTBlock != "" ||
		tc.NBTEntity != "" || tc.NBTStorage != "" || tc.Interpret != nil ||
		len(tc.With) != 0
}

// hasStyleOrEvents reports whether any style field, click/hover event, or
// child node is populated.
func (tc *TextComponent) hasStyleOrEvents() bool {
	return tc.Color != "" || tc.Bold != nil || tc.Italic != nil ||
		tc.Underlined != nil || tc.Strikethrough != nil || tc.Obfuscated != nil ||
		tc.Font != "" || tc.Insertion != "" ||
		tc.ClickEvent != nil || tc.HoverEvent != nil || len(tc.Extra) != 0
}

// isPlainText reports whether this node carries nothing but Text, letting
// Encode fall back to a bare NBT String tag instead of a full compound.
func (tc *TextComponent) isPlainText() bool {
	return tc.Text != "" && !tc.hasContentBeyondText() && !tc.hasStyleOrEvents()
}

// Encode writes the component as NBT. Plain-text-only nodes collapse to an
// NBT String tag; everything else becomes a Compound.
func (tc *TextComponent) Encode(buf *PacketBuffer) error {
	var data []byte
	var err error

	if tc.isPlainText() {
		data, err = nbt.Encode(nbt.String(tc.Text), "", true)
	} else {
		data, err = nbt.MarshalNetwork(tc)
	}
	if err != nil {
		return err
	}
	_, err = buf.Write(data)
	return err
}

// UnmarshalJSON accepts either a bare JSON string (shorthand for {"text":...})
// or a full component object.
func (tc *TextComponent) UnmarshalJSON(data []byte) error {
	var shorthand string
	if json.Unmarshal(data, &shorthand) == nil {
		*tc = TextComponent{Text: shorthand}
		return nil
	}
	type withoutUnmarshaler TextComponent
	return json.Unmarshal(data, (*withoutUnmarshaler)(tc))
}

// UnmarshalNBT implements nbt.TagUnmarshaler so TextComponent decodes
// correctly whether the tag is a bare String (plain-text shorthand) or a
// Compound.
func (tc *TextComponent) UnmarshalNBT(tag nbt.Tag) error {
	if s, ok := tag.(nbt.String); ok {
		*tc = TextComponent{Text: string(s)}
		return nil
	}
	type withoutUnmarshaler TextComponent
	return nbt.UnmarshalTag(tag, (*withoutUnmarshaler)(tc))
}

// Decode reads a component from its NBT encoding.
func (tc *TextComponent) Decode(buf *PacketBuffer) error {
	tag, _, err := nbt.NewReaderFrom(buf.Reader()).ReadTag(true)
	if err != nil {
		return err
	}
	return tc.UnmarshalNBT(tag)
}

func (pb *PacketBuffer) ReadTextComponent() (TextComponent, error) {
	var tc TextComponent
	err := tc.Decode(pb)
	return tc, err
}

func (pb *PacketBuffer) WriteTextComponent(tc TextComponent) error { return tc.Encode(pb) }
