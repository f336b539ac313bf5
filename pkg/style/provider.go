package style

// Target names the widget a style is requested for.
type Target struct {
	ID   uint64
	Kind string
}

// Provider turns a replayed stack snapshot into a fully cascaded record.
// The engine calls it once at declaration (to size the widget) and once per
// render replay; both calls must see the same snapshot.
type Provider interface {
	Style(t Target, snap Snapshot, state State) Style
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(t Target, snap Snapshot, state State) Style

// Style implements Provider.
func (f ProviderFunc) Style(t Target, snap Snapshot, state State) Style {
	return f(t, snap, state)
}

// TextScale maps a text type to a font size multiplier and family.
type TextScale struct {
	Scale float64
	Font  string
	Bold  bool
}

// DefaultTextScales is used by Cascade when none are configured.
var DefaultTextScales = map[TextType]TextScale{
	TextBody:    {Scale: 1},
	TextHeading: {Scale: 1.5, Bold: true},
	TextCaption: {Scale: 0.85},
	TextMono:    {Scale: 1, Font: "mono"},
}

// Cascade merges the snapshot's entries over a base record in push order,
// skipping entries whose state does not match, then applies the text type.
type Cascade struct {
	Base   Style
	Scales map[TextType]TextScale
}

// NewCascade returns a Cascade over Default().
func NewCascade() *Cascade {
	return &Cascade{Base: Default(), Scales: DefaultTextScales}
}

// Style implements Provider.
func (c *Cascade) Style(_ Target, snap Snapshot, state State) Style {
	out := c.Base
	if !snap.Ignored {
		for _, e := range snap.Entries {
			if e.State.Matches(state) {
				out.Merge(e.Style)
			}
		}
	}
	scales := c.Scales
	if scales == nil {
		scales = DefaultTextScales
	}
	if ts, ok := scales[snap.TextType]; ok {
		if ts.Scale > 0 {
			out.FontSize *= ts.Scale
		}
		if ts.Font != "" {
			out.Font = ts.Font
		}
		if ts.Bold {
			out.Bold = true
		}
	}
	return out
}
