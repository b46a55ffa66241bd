package script

import (
	"fmt"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/romly/pmesh"
	"github.com/romly/pmesh/form3/obj3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// sexpPart wraps a part so it can be passed between builtins.
type sexpPart struct{ p *pmesh.Part }

func (s *sexpPart) SexpString(*zygo.PrintState) string {
	return fmt.Sprintf("(part %q)", s.p.Name)
}
func (s *sexpPart) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a primitive or placed solid.
type sexpSolid struct{ s pmesh.Solid }

func (s *sexpSolid) SexpString(*zygo.PrintState) string { return fmt.Sprintf("(solid %T)", s.s) }
func (s *sexpSolid) Type() *zygo.RegisteredType         { return nil }

type sexpVec3 struct{ v r3.Vec }

func (v *sexpVec3) SexpString(*zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.v.X, v.v.Y, v.v.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type state struct {
	log     *zap.Logger
	emitted []*pmesh.Part
}

type builtin func(args []zygo.Sexp) (zygo.Sexp, error)

func (st *state) register(env *zygo.Zlisp) {
	for name, f := range map[string]builtin{
		"vec3":     st.vec3,
		"part":     st.part,
		"box":      st.box,
		"cylinder": st.cylinder,
		"sphere":   st.sphere,
		"move":     st.move,
		"rotate":   st.rotate,
		"group":    st.group,
		"cut":      st.boolean(pmesh.Difference),
		"join":     st.boolean(pmesh.Union),
		"keep":     st.boolean(pmesh.Intersect),
		"repeat":   st.array,
		"rename":   st.rename,
		"emit":     st.emit,
	} {
		f, name := f, name
		env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
			v, err := f(args)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return v, nil
		})
	}
}

// (vec3 x y z)
func (st *state) vec3(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("want 3 arguments, got %d", len(args))
	}
	var c [3]float64
	for i := range c {
		f, err := toFloat64(args[i])
		if err != nil {
			return nil, err
		}
		c[i] = f
	}
	return &sexpVec3{v: r3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
}

// (part "screw" :size "m3" :length 10)
func (st *state) part(args []zygo.Sexp) (zygo.Sexp, error) {
	a := parseArgs(args)
	if len(a.positional) != 1 {
		return nil, fmt.Errorf("want a part name")
	}
	name, err := toString(a.positional[0])
	if err != nil {
		return nil, err
	}
	params, err := paramsNode(a.kw)
	if err != nil {
		return nil, err
	}
	p, err := obj3.Build(name, params)
	if err != nil {
		return nil, err
	}
	st.log.Debug("part built", zap.String("part", p.Name), zap.Int("booleans", len(p.Booleans)))
	return &sexpPart{p: p}, nil
}

// (box :size (vec3 1 2 3) :center (vec3 0 0 0) :round 0)
func (st *state) box(args []zygo.Sexp) (zygo.Sexp, error) {
	a := parseArgs(args)
	var b pmesh.BoxSolid
	err := a.each(map[string]func(zygo.Sexp) error{
		"size":   vecInto(&b.Size),
		"center": vecInto(&b.Center),
		"round":  floatInto(&b.Round),
	})
	if err != nil {
		return nil, err
	}
	if b.Size.X <= 0 || b.Size.Y <= 0 || b.Size.Z <= 0 {
		return nil, fmt.Errorf("size must be positive")
	}
	return &sexpSolid{s: b}, nil
}

// (cylinder :radius 1 :height 2 :axis "x" :center (vec3 0 0 0))
func (st *state) cylinder(args []zygo.Sexp) (zygo.Sexp, error) {
	a := parseArgs(args)
	c := pmesh.CylinderSolid{Axis: pmesh.AxisZ}
	err := a.each(map[string]func(zygo.Sexp) error{
		"radius": floatInto(&c.Radius),
		"height": floatInto(&c.Height),
		"round":  floatInto(&c.Round),
		"center": vecInto(&c.Center),
		"axis":   axisInto(&c.Axis),
	})
	if err != nil {
		return nil, err
	}
	if c.Radius <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("radius and height must be positive")
	}
	return &sexpSolid{s: c}, nil
}

// (sphere :radius 1 :center (vec3 0 0 0))
func (st *state) sphere(args []zygo.Sexp) (zygo.Sexp, error) {
	a := parseArgs(args)
	var s pmesh.SphereSolid
	err := a.each(map[string]func(zygo.Sexp) error{
		"radius": floatInto(&s.Radius),
		"center": vecInto(&s.Center),
	})
	if err != nil {
		return nil, err
	}
	if s.Radius <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}
	return &sexpSolid{s: s}, nil
}

// (move solid (vec3 x y z))
func (st *state) move(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("want a solid and an offset")
	}
	s, err := toSolid(args[0])
	if err != nil {
		return nil, err
	}
	v, err := toVec3(args[1])
	if err != nil {
		return nil, err
	}
	return &sexpSolid{s: pmesh.Move(s, v)}, nil
}

// (rotate solid degrees "z")
func (st *state) rotate(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("want a solid, an angle and an axis")
	}
	s, err := toSolid(args[0])
	if err != nil {
		return nil, err
	}
	deg, err := toFloat64(args[1])
	if err != nil {
		return nil, err
	}
	var axis pmesh.Axis
	if err := axisInto(&axis)(args[2]); err != nil {
		return nil, err
	}
	return &sexpSolid{s: pmesh.Placed{S: s, Angle: pmesh.DtoR(deg), Axis: axis}}, nil
}

// (group solid...)
func (st *state) group(args []zygo.Sexp) (zygo.Sexp, error) {
	var g pmesh.GroupSolid
	for _, arg := range args {
		s, err := toSolid(arg)
		if err != nil {
			return nil, err
		}
		g.Members = append(g.Members, s)
	}
	if len(g.Members) == 0 {
		return nil, fmt.Errorf("empty group")
	}
	return &sexpSolid{s: g}, nil
}

// (cut part tool...) adds one boolean modifier per tool and returns part.
func (st *state) boolean(op pmesh.BoolOp) builtin {
	return func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("want a part and at least one tool")
		}
		p, ok := args[0].(*sexpPart)
		if !ok {
			return nil, fmt.Errorf("expected part, got %s", args[0].SexpString(nil))
		}
		for _, arg := range args[1:] {
			tool, err := toSolid(arg)
			if err != nil {
				return nil, err
			}
			if tool == pmesh.Solid(p.p) {
				return nil, fmt.Errorf("part %q used as its own tool", p.p.Name)
			}
			p.p.Booleans = append(p.p.Booleans, pmesh.Boolean{Op: op, Tool: tool})
		}
		return p, nil
	}
}

// (repeat part count (vec3 span))
func (st *state) array(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("want a part, a count and a span")
	}
	p, ok := args[0].(*sexpPart)
	if !ok {
		return nil, fmt.Errorf("expected part, got %s", args[0].SexpString(nil))
	}
	n, err := toFloat64(args[1])
	if err != nil {
		return nil, err
	}
	span, err := toVec3(args[2])
	if err != nil {
		return nil, err
	}
	p.p.Arrays = append(p.p.Arrays, pmesh.FixedCountArray(int(n), span))
	return p, nil
}

// (rename part "name")
func (st *state) rename(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("want a part and a name")
	}
	p, ok := args[0].(*sexpPart)
	if !ok {
		return nil, fmt.Errorf("expected part, got %s", args[0].SexpString(nil))
	}
	name, err := toString(args[1])
	if err != nil {
		return nil, err
	}
	p.p.Name = name
	return p, nil
}

// (emit part...) marks parts for export.
func (st *state) emit(args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("nothing to emit")
	}
	for _, arg := range args {
		p, ok := arg.(*sexpPart)
		if !ok {
			return nil, fmt.Errorf("expected part, got %s", arg.SexpString(nil))
		}
		st.emitted = append(st.emitted, p.p)
	}
	return args[len(args)-1], nil
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	a := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			a.positional = append(a.positional, args[i])
			continue
		}
		if _, seen := a.kw[name]; !seen {
			a.order = append(a.order, name)
		}
		if i+1 < len(args) {
			a.kw[name] = args[i+1]
			i++
		} else {
			a.kw[name] = zygo.SexpNull
		}
	}
	return a
}

// each calls the setter of every keyword. Unknown keywords are errors.
func (a kwArgs) each(setters map[string]func(zygo.Sexp) error) error {
	if len(a.positional) > 0 {
		return fmt.Errorf("unexpected positional argument %s", a.positional[0].SexpString(nil))
	}
	for _, k := range a.order {
		set, ok := setters[k]
		if !ok {
			return fmt.Errorf("unknown keyword :%s", k)
		}
		if err := set(a.kw[k]); err != nil {
			return fmt.Errorf(":%s: %w", k, err)
		}
	}
	return nil
}

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func floatInto(f *float64) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*f, err = toFloat64(s)
		return err
	}
}

func vecInto(v *r3.Vec) func(zygo.Sexp) error {
	return func(s zygo.Sexp) (err error) {
		*v, err = toVec3(s)
		return err
	}
}

func axisInto(a *pmesh.Axis) func(zygo.Sexp) error {
	return func(s zygo.Sexp) error {
		name, ok := isKW(s)
		if !ok {
			var err error
			if name, err = toString(s); err != nil {
				return err
			}
		}
		switch strings.ToLower(name) {
		case "x":
			*a = pmesh.AxisX
		case "y":
			*a = pmesh.AxisY
		case "z":
			*a = pmesh.AxisZ
		default:
			return fmt.Errorf("unknown axis %q", name)
		}
		return nil
	}
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.v, nil
	}
	return r3.Vec{}, fmt.Errorf("expected vec3, got %s", s.SexpString(nil))
}

func toSolid(s zygo.Sexp) (pmesh.Solid, error) {
	switch v := s.(type) {
	case *sexpPart:
		return v.p, nil
	case *sexpSolid:
		return v.s, nil
	}
	return nil, fmt.Errorf("expected part or solid, got %s", s.SexpString(nil))
}

// paramsNode turns keyword arguments into the YAML mapping part builders
// decode. A dotted keyword such as :spec.radius sets a nested field.
func paramsNode(kw map[string]zygo.Sexp) (*yaml.Node, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range kw {
		val, err := valueNode(v)
		if err != nil {
			return nil, fmt.Errorf(":%s: %w", k, err)
		}
		path := strings.Split(k, ".")
		m := root
		for _, key := range path[:len(path)-1] {
			m = child(m, key)
		}
		setKey(m, path[len(path)-1], val)
	}
	return root, nil
}

func child(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key && m.Content[i+1].Kind == yaml.MappingNode {
			return m.Content[i+1]
		}
	}
	c := &yaml.Node{Kind: yaml.MappingNode}
	setKey(m, key, c)
	return c
}

func setKey(m *yaml.Node, key string, val *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, val)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func valueNode(s zygo.Sexp) (*yaml.Node, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return scalar("!!int", strconv.FormatInt(v.Val, 10)), nil
	case *zygo.SexpFloat:
		return scalar("!!float", strconv.FormatFloat(v.Val, 'g', -1, 64)), nil
	case *zygo.SexpBool:
		return scalar("!!bool", strconv.FormatBool(v.Val)), nil
	case *zygo.SexpStr:
		if name, ok := isKW(v); ok {
			return scalar("!!str", name), nil
		}
		return scalar("!!str", v.S), nil
	case *sexpVec3:
		m := &yaml.Node{Kind: yaml.MappingNode}
		setKey(m, "x", scalar("!!float", strconv.FormatFloat(v.v.X, 'g', -1, 64)))
		setKey(m, "y", scalar("!!float", strconv.FormatFloat(v.v.Y, 'g', -1, 64)))
		setKey(m, "z", scalar("!!float", strconv.FormatFloat(v.v.Z, 'g', -1, 64)))
		return m, nil
	case *zygo.SexpArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range v.Val {
			n, err := valueNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	return nil, fmt.Errorf("unsupported value %s", s.SexpString(nil))
}
