package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/romly/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPreprocess(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{in: `(part "box" :size 2)`, want: `(part "box" "__kw_size" 2)`},
		{in: `(part "x" :set-screw-size "m3")`, want: `(part "x" "__kw_set_screw_size" "m3")`},
		{in: `(part "x" :spec.radius 1)`, want: `(part "x" "__kw_spec.radius" 1)`},
		{in: `"a :b ; c"`, want: `"a :b ; c"`},
		{in: "(emit p) ; done", want: "(emit p) // done"},
		{in: ";; header\n(emit p)", want: "// header\n(emit p)"},
	} {
		if got := preprocess(test.in); got != test.want {
			t.Errorf("preprocess(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestRunEmit(t *testing.T) {
	src := `
; a drilled plate
(def plate (part "box" :size (vec3 40 20 3)))
(cut plate (cylinder :radius 1.5 :height 10))
(repeat plate 3 (vec3 100 0 0))
(rename plate "Plate")
(emit plate)
(emit (part "nut" :size "m3"))
`
	parts, err := New(nil).Run(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 2 {
		t.Fatalf("want 2 parts, got %d", len(parts))
	}
	p := parts[0]
	if p.Name != "Plate" {
		t.Errorf("name %q", p.Name)
	}
	if len(p.Booleans) != 1 || p.Booleans[0].Op != pmesh.Difference {
		t.Errorf("booleans %+v", p.Booleans)
	}
	if len(p.Arrays) != 1 || p.Arrays[0].Count != 3 || p.Arrays[0].Offset.X != 50 {
		t.Errorf("arrays %+v", p.Arrays)
	}
	b, ok := p.Base.(pmesh.BoxSolid)
	if !ok || b.Size != (r3.Vec{X: 40, Y: 20, Z: 3}) {
		t.Errorf("base %+v", p.Base)
	}
}

func TestRunLastValue(t *testing.T) {
	parts, err := New(nil).Run(context.Background(), `(part "box" :size (vec3 1 2 3))`)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 || parts[0].Name != "Cuboid" {
		t.Fatalf("got %v", parts)
	}
	parts, err = New(nil).Run(context.Background(), "  \n")
	if err != nil || len(parts) != 0 {
		t.Errorf("empty recipe: %v %v", parts, err)
	}
}

func TestRunPlacement(t *testing.T) {
	src := `
(def body (part "box" :size (vec3 10 10 10)))
(join body (rotate (move (box :size (vec3 2 2 2)) (vec3 5 0 0)) 90 "z"))
(keep body (group (sphere :radius 8) (sphere :radius 1 :center (vec3 20 0 0))))
body
`
	parts, err := New(nil).Run(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	bs := parts[0].Booleans
	if len(bs) != 2 || bs[0].Op != pmesh.Union || bs[1].Op != pmesh.Intersect {
		t.Fatalf("booleans %+v", bs)
	}
	pl, ok := bs[0].Tool.(pmesh.Placed)
	if !ok || pl.Axis != pmesh.AxisZ || pl.Angle != pmesh.DtoR(90) {
		t.Errorf("rotated tool %+v", bs[0].Tool)
	}
	g, ok := bs[1].Tool.(pmesh.GroupSolid)
	if !ok || len(g.Members) != 2 {
		t.Errorf("group tool %+v", bs[1].Tool)
	}
}

func TestRunErrors(t *testing.T) {
	for _, test := range []struct {
		src     string
		wantMsg string
	}{
		{src: `(part "teapot")`, wantMsg: "unknown part"},
		{src: `(box :size (vec3 0 1 1))`, wantMsg: "positive"},
		{src: `(box :radius 1)`, wantMsg: "unknown keyword"},
		{src: `(emit (box :size (vec3 1 1 1)))`, wantMsg: "expected part"},
		{src: `(rotate (sphere :radius 1) 10 "w")`, wantMsg: "unknown axis"},
		{src: `(def p (part "box")) (cut p p)`, wantMsg: "own tool"},
	} {
		_, err := New(nil).Run(context.Background(), test.src)
		if err == nil {
			t.Errorf("%s: want error", test.src)
			continue
		}
		var serr *Error
		if !errors.As(err, &serr) {
			t.Errorf("%s: want *Error, got %T", test.src, err)
		}
		if !strings.Contains(err.Error(), test.wantMsg) {
			t.Errorf("%s: error %q does not mention %q", test.src, err, test.wantMsg)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(nil).Run(ctx, `(def i 0) (for [(def i 0) true (def i (+ i 1))] i)`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want deadline exceeded, got %v", err)
	}
}

func TestParamsNode(t *testing.T) {
	a := parseArgs([]zygo.Sexp{
		&zygo.SexpStr{S: kwPrefix + "spec.radius"}, &zygo.SexpFloat{Val: 2.5},
		&zygo.SexpStr{S: kwPrefix + "spec.n"}, &zygo.SexpInt{Val: 5},
		&zygo.SexpStr{S: kwPrefix + "name"}, &zygo.SexpStr{S: "x"},
	})
	n, err := paramsNode(a.kw)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Spec struct {
			Radius float64 `yaml:"radius"`
			N      int     `yaml:"n"`
		} `yaml:"spec"`
		Name string `yaml:"name"`
	}
	if err := n.Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Spec.Radius != 2.5 || got.Spec.N != 5 || got.Name != "x" {
		t.Errorf("decoded %+v", got)
	}
}
