package tape

import (
	"errors"
	"strings"
	"testing"

	"weft/pkg/style"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ops     []Op
		wantErr string
		index   int
	}{
		{
			name: "balanced",
			ops: []Op{
				AddLayout(0),
				PushStyle(0, style.StateHover),
				PushRegion(1),
				AddWidget(0),
				PopRegion(),
				PopStyle(),
				PushText(style.TextHeading),
				IgnoreStyles(),
				AddWidget(1),
				RestoreStyles(),
				PopText(),
				EndLayout(0),
			},
		},
		{"empty", nil, "", 0},
		{"pop with nothing open", []Op{AddWidget(0), PopStyle()}, "nothing open", 1},
		{"crossed pops", []Op{PushStyle(0, 0), PushRegion(1), PopStyle(), PopRegion()}, "want PopRegion", 2},
		{"never closed", []Op{AddLayout(0), PushText(style.TextMono)}, "never closed", 1},
		{"end names wrong container", []Op{AddLayout(0), AddLayout(1), EndLayout(0)}, "closes AddLayout{1}", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ops)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var be *BalanceError
			if !errors.As(err, &be) {
				t.Fatalf("Validate() = %v, want *BalanceError", err)
			}
			if be.Index != tt.index || !strings.Contains(be.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q at %d, want %q at %d", be.Error(), be.Index, tt.wantErr, tt.index)
			}
		})
	}
}

func TestTape_AppendSliceReset(t *testing.T) {
	tp := New(4)
	if i := tp.Append(AddLayout(3)); i != 0 {
		t.Fatalf("Append index = %d", i)
	}
	tp.Append(PushStyle(7, style.StateFocus))
	tp.Append(PopStyle())
	tp.Append(EndLayout(3))

	inner := tp.Slice(1, 3)
	if len(inner) != 2 || inner[0].Kind != OpPushStyle || inner[0].Entry != 7 || inner[0].State != style.StateFocus {
		t.Errorf("Slice(1, 3) = %v", inner)
	}
	if err := Validate(tp.Slice(0, tp.Len())); err != nil {
		t.Errorf("Validate(whole tape) = %v", err)
	}
	if err := Validate(tp.Slice(0, 2)); err == nil {
		t.Error("Validate(open prefix) = nil, want an error")
	}

	tp.Reset()
	if tp.Len() != 0 || len(tp.Ops()) != 0 {
		t.Errorf("after Reset len=%d", tp.Len())
	}
}

func TestKind_OpensCloses(t *testing.T) {
	for k := OpAddWidget; k <= OpRestoreStyleStack; k++ {
		if k.Opens() && k.Closes() {
			t.Errorf("%s both opens and closes", k)
		}
		if k.Opens() && !closers[k].Closes() {
			t.Errorf("%s closer %s does not close", k, closers[k])
		}
	}
	if OpAddWidget.Opens() || OpAddWidget.Closes() {
		t.Error("AddWidget is not a scope")
	}
}
