package geom

import "testing"

func TestRect_InsetClampsToContainer(t *testing.T) {
	tests := []struct {
		name  string
		rect  Rect
		edges Edges
		want  Rect
	}{
		{"zero insets", R(10, 10, 50, 20), Edges{}, R(10, 10, 50, 20)},
		{"uniform", R(0, 0, 100, 40), EdgeAll(5), R(5, 5, 90, 30)},
		{"left exceeds width", R(0, 0, 10, 10), Edges{Left: 30, Right: 4}, R(10, 0, 0, 10)},
		{"right eats remainder", R(0, 0, 10, 10), Edges{Left: 6, Right: 6}, R(6, 0, 0, 10)},
		{"negative ignored", R(0, 0, 10, 10), Edges{Top: -3, Bottom: 2}, R(0, 0, 10, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Inset(tt.edges)
			if got != tt.want {
				t.Errorf("Inset() = %+v, want %+v", got, tt.want)
			}
			if !tt.rect.ContainsRect(got) {
				t.Errorf("inset rect %+v escapes %+v", got, tt.rect)
			}
		})
	}
}

func TestRect_UnionAndIntersect(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(5, 5, 10, 10)

	if got := a.Union(b); got != R(0, 0, 15, 15) {
		t.Errorf("Union = %+v", got)
	}
	if got := a.Intersect(b); got != R(5, 5, 5, 5) {
		t.Errorf("Intersect = %+v", got)
	}
	if got := a.Intersect(R(20, 20, 1, 1)); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty Union = %+v, want %+v", got, b)
	}
}

func TestRect_OutsetInverseOfInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	e := Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}
	if got := r.Inset(e).Outset(e); got != r {
		t.Errorf("Outset(Inset(r)) = %+v, want %+v", got, r)
	}
}
