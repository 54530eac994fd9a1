// internal/service/reference/suggest.go
package reference

// BoxState is the suggestion box lifecycle state.
type BoxState int

const (
	// BoxIdle: no suggestion list showing.
	BoxIdle BoxState = iota
	// BoxSuggesting: list visible, arrow keys move the highlight.
	BoxSuggesting
	// BoxCommitting: a value has been chosen and its ID lookup is pending.
	BoxCommitting
)

// SuggestBox is the keyboard-driven typeahead state machine shared by every
// cascade stage. One instance per stage per session; the stage only differs
// in where its candidates come from, so the machine itself is parameterized
// by nothing.
type SuggestBox struct {
	state     BoxState
	value     string
	items     []string
	highlight int
}

func NewSuggestBox() *SuggestBox {
	return &SuggestBox{state: BoxIdle, highlight: -1}
}

func (b *SuggestBox) State() BoxState { return b.state }
func (b *SuggestBox) Value() string   { return b.value }
func (b *SuggestBox) Items() []string { return b.items }

// Highlight returns the highlighted index, -1 when nothing is highlighted.
func (b *SuggestBox) Highlight() int { return b.highlight }

// SetInput records the typed text and the suggestions computed for it. A
// non-empty list opens the box; an empty list closes it. Typing always
// resets the highlight.
func (b *SuggestBox) SetInput(text string, suggestions []string) {
	b.value = text
	b.items = suggestions
	b.highlight = -1
	if len(suggestions) > 0 {
		b.state = BoxSuggesting
	} else {
		b.state = BoxIdle
	}
}

// MoveDown advances the highlight, wrapping past the end back to the top.
func (b *SuggestBox) MoveDown() {
	if b.state != BoxSuggesting || len(b.items) == 0 {
		return
	}
	b.highlight = (b.highlight + 1) % len(b.items)
}

// MoveUp retreats the highlight, wrapping past the top to the bottom. From
// the no-highlight position it lands on the last item.
func (b *SuggestBox) MoveUp() {
	if b.state != BoxSuggesting || len(b.items) == 0 {
		return
	}
	if b.highlight <= 0 {
		b.highlight = len(b.items) - 1
		return
	}
	b.highlight--
}

// Enter commits: the highlighted item when one is highlighted, otherwise
// the raw typed text. The box moves to committing until Settle is called.
// Returns the committed value and whether it came from the list.
func (b *SuggestBox) Enter() (value string, fromList bool) {
	if b.state == BoxSuggesting && b.highlight >= 0 && b.highlight < len(b.items) {
		b.value = b.items[b.highlight]
		fromList = true
	}
	b.items = nil
	b.highlight = -1
	b.state = BoxCommitting
	return b.value, fromList
}

// Settle completes a pending commit once the ID lookup has returned.
func (b *SuggestBox) Settle() {
	if b.state == BoxCommitting {
		b.state = BoxIdle
	}
}

// Escape dismisses the list without changing the typed value.
func (b *SuggestBox) Escape() {
	b.items = nil
	b.highlight = -1
	b.state = BoxIdle
}
