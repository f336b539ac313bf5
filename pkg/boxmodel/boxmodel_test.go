package boxmodel

import (
	"testing"

	"weft/pkg/geom"
	"weft/pkg/style"
)

func TestResolve_AutoSize(t *testing.T) {
	st := style.Default().
		WithMargin(geom.EdgeAll(2)).
		WithBorder(geom.EdgeAll(1)).
		WithPadding(geom.EdgeSymmetric(3, 4))

	bm := Resolve(&st, Request{
		Avail:   geom.R(10, 20, 200, 100),
		Content: geom.Size{Width: 50, Height: 10},
	})

	if bm.Margin != geom.R(10, 20, 64, 22) {
		t.Errorf("Margin = %+v", bm.Margin)
	}
	if bm.Border != geom.R(12, 22, 60, 18) {
		t.Errorf("Border = %+v", bm.Border)
	}
	if bm.Content != geom.R(17, 26, 50, 10) {
		t.Errorf("Content = %+v", bm.Content)
	}
}

func TestResolve_FixedClampsMinWins(t *testing.T) {
	tests := []struct {
		name  string
		st    style.Style
		width float64
	}{
		{"fixed", style.Default().WithWidth(style.Px(80)), 80},
		{"clamped to max", style.Default().WithWidth(style.Px(80)).WithMaxSize(60, 0), 60},
		{"clamped to min", style.Default().WithWidth(style.Px(10)).WithMinSize(30, 0), 30},
		{"min beats max", style.Default().WithWidth(style.Px(50)).WithMinSize(40, 0).WithMaxSize(20, 0), 40},
		{"percent of avail", style.Default().WithWidth(style.Percent(50)), 100},
		{"fill", style.Default().WithWidth(style.Fill()).WithMargin(geom.EdgeAll(5)), 190},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm := Resolve(&tt.st, Request{Avail: geom.R(0, 0, 200, 50), Content: geom.Size{Width: 5}})
			if bm.Border.Width != tt.width {
				t.Errorf("border width = %v, want %v", bm.Border.Width, tt.width)
			}
		})
	}
}

func TestResolve_TrailingAnchor(t *testing.T) {
	st := style.Default().WithMargin(geom.Edges{Right: 4})
	bm := Resolve(&st, Request{
		Avail:   geom.R(0, 0, 100, 40),
		Content: geom.Size{Width: 20, Height: 10},
		AnchorX: Trailing,
		AnchorY: Trailing,
	})
	if bm.Margin.Right() != 100 || bm.Margin.Bottom() != 40 {
		t.Errorf("Margin = %+v, want pinned to bottom-right", bm.Margin)
	}
	if bm.Border.Right() != 96 {
		t.Errorf("Border right = %v", bm.Border.Right())
	}
}

func TestResolve_ContainmentHolds(t *testing.T) {
	styles := []style.Style{
		style.Default(),
		style.Default().WithPadding(geom.EdgeAll(30)).WithWidth(style.Px(10)),
		style.Default().WithBorder(geom.EdgeAll(50)).WithHeight(style.Px(4)),
		style.Default().WithMargin(geom.Edges{Left: -5, Top: 3}),
		style.Default().WithMaxSize(1, 1).WithPadding(geom.EdgeAll(2)),
	}
	for i := range styles {
		bm := Resolve(&styles[i], Request{
			Avail:   geom.R(0, 0, 40, 40),
			Content: geom.Size{Width: 12, Height: 7},
			FillX:   i%2 == 0,
		})
		if !bm.Nested() {
			t.Errorf("style %d: rectangles not nested: %+v", i, bm)
		}
		if bm.Content.Width < 0 || bm.Content.Height < 0 {
			t.Errorf("style %d: negative content %+v", i, bm.Content)
		}
	}
}

func TestResolve_PrefixSuffix(t *testing.T) {
	st := style.Default()
	bm := Resolve(&st, Request{
		Avail:   geom.R(0, 0, 100, 20),
		Content: geom.Size{Width: 60, Height: 20},
		Prefix:  16,
		Suffix:  8,
	})
	if bm.Prefix != geom.R(0, 0, 16, 20) || bm.Suffix != geom.R(52, 0, 8, 20) || bm.Text != geom.R(16, 0, 36, 20) {
		t.Errorf("prefix %+v suffix %+v text %+v", bm.Prefix, bm.Suffix, bm.Text)
	}
}

func TestFromBorderBox_MatchesResolve(t *testing.T) {
	st := style.Default().WithMargin(geom.EdgeAll(3)).WithPadding(geom.EdgeAll(2))
	want := Resolve(&st, Request{Avail: geom.R(5, 5, 100, 100), Content: geom.Size{Width: 10, Height: 10}})
	got := FromBorderBox(&st, want.Border)
	if got.Margin != want.Margin || got.Content != want.Content {
		t.Errorf("FromBorderBox = %+v, want %+v", got, want)
	}
}

func TestOuter(t *testing.T) {
	st := style.Default().WithMargin(geom.EdgeAll(1)).WithBorder(geom.EdgeAll(1)).WithPadding(geom.EdgeAll(1))
	base := geom.Size{Width: 200, Height: 100}
	tests := []struct {
		name string
		st   style.Style
		want geom.Size
	}{
		{"auto", st, geom.Size{Width: 16, Height: 10}},
		{"fixed", st.WithWidth(style.Px(30)), geom.Size{Width: 32, Height: 10}},
		{"percent of base minus margin", st.WithWidth(style.Percent(50)).WithHeight(style.Percent(25)), geom.Size{Width: 101, Height: 26.5}},
		{"percent clamped by max", st.WithWidth(style.Percent(50)).WithMaxSize(40, 0), geom.Size{Width: 42, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outer(&tt.st, geom.Size{Width: 10, Height: 4}, base); got != tt.want {
				t.Errorf("Outer = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolve_PercentUsesBase(t *testing.T) {
	st := style.Default().WithWidth(style.Percent(50))
	bm := Resolve(&st, Request{
		Avail: geom.R(0, 0, 30, 10),
		Base:  geom.Size{Width: 200},
	})
	if bm.Border.Width != 100 {
		t.Errorf("border width = %v, want 100", bm.Border.Width)
	}
	if bm.Border.Height != 0 {
		t.Errorf("border height = %v, want 0", bm.Border.Height)
	}
}
