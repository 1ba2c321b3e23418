// Package wiring rewrites constructors so that logger parameters disappear
// from their signatures and are filled, on every call, with a logger created
// for the type the constructor builds. Container adapters built on reflection
// (dig, fx) provide the rewritten function instead of the original.
package wiring

import (
	"fmt"
	"reflect"

	"go.uber.org/dig"

	"github.com/trickstertwo/loginject"
	"github.com/trickstertwo/loginject/typeset"
)

var errorType = reflect.TypeFor[error]()

// Matcher reports whether a parameter of the given type receives the logger.
type Matcher func(reflect.Type) bool

// MatcherFor returns the parameter matcher of s. A Declared spec matches its
// logger type exactly. A Concrete spec matches every type in the binding set
// of its logger type; the parameter type itself is the only interface
// candidate considered.
func MatcherFor(s *loginject.Spec) Matcher {
	lt := s.LoggerType()
	if s.Classification() == loginject.Declared {
		return func(t reflect.Type) bool { return t == lt }
	}
	return func(t reflect.Type) bool {
		return t == lt || typeset.Contains(typeset.BindingSet(lt, t), t)
	}
}

// Constructor is the outcome of Rewrite.
type Constructor struct {
	Func     any          // the function to hand to the container
	Target   reflect.Type // injection context, pointer levels removed
	Injected int          // logger slots removed from the signature
}

// slot describes how one parameter of the original function is produced.
type slot struct {
	kind   slotKind
	in     int          // index into the rewritten parameters
	typ    reflect.Type // original parameter type
	fields []fieldSlot  // slotStruct only
}

type slotKind uint8

const (
	slotPass slotKind = iota
	slotLogger
	slotStruct
)

type fieldSlot struct {
	logger bool
	name   string
	typ    reflect.Type
}

// Rewrite returns ctor with every parameter accepted by m removed. Parameter
// objects embedding dig.In are rewritten field by field; fields carrying a
// name or group tag are left to the container. When nothing matches, Func is
// ctor itself.
//
// The injection context is the first result type. A result object embedding
// dig.Out contributes its first exported field instead.
//
// Logger creation failures are returned through a trailing error result when
// ctor has one and panic otherwise.
func Rewrite(s *loginject.Spec, ctor any, m Matcher) (Constructor, error) {
	fv := reflect.ValueOf(ctor)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return Constructor{}, fmt.Errorf("wiring: constructor must be a non-nil function, got %T", ctor)
	}
	ft := fv.Type()
	target, err := Context(ft)
	if err != nil {
		return Constructor{}, err
	}

	slots := make([]slot, ft.NumIn())
	var ins []reflect.Type
	injected := 0
	for i := range slots {
		pt := ft.In(i)
		variadicSlot := ft.IsVariadic() && i == ft.NumIn()-1
		switch {
		case !variadicSlot && m(pt):
			slots[i] = slot{kind: slotLogger, typ: pt}
			injected++
			continue
		case !variadicSlot && dig.IsIn(pt):
			if st, fields, n := rewriteIn(pt, m); n > 0 {
				slots[i] = slot{kind: slotStruct, in: len(ins), typ: pt, fields: fields}
				ins = append(ins, st)
				injected += n
				continue
			}
		}
		slots[i] = slot{kind: slotPass, in: len(ins), typ: pt}
		ins = append(ins, pt)
	}
	if injected == 0 {
		return Constructor{Func: ctor, Target: target}, nil
	}

	outs := make([]reflect.Type, ft.NumOut())
	for i := range outs {
		outs[i] = ft.Out(i)
	}
	returnsErr := outs[len(outs)-1] == errorType

	nt := reflect.FuncOf(ins, outs, ft.IsVariadic())
	fn := reflect.MakeFunc(nt, func(args []reflect.Value) []reflect.Value {
		l, err := s.CreateLogger(target)
		if err != nil {
			return fail(outs, returnsErr, err)
		}
		call := make([]reflect.Value, len(slots))
		for i, sl := range slots {
			switch sl.kind {
			case slotPass:
				call[i] = args[sl.in]
			case slotLogger:
				v, err := loggerValue(l, sl.typ)
				if err != nil {
					return fail(outs, returnsErr, err)
				}
				call[i] = v
			case slotStruct:
				v, err := buildIn(args[sl.in], sl, l)
				if err != nil {
					return fail(outs, returnsErr, err)
				}
				call[i] = v
			}
		}
		if ft.IsVariadic() {
			return fv.CallSlice(call)
		}
		return fv.Call(call)
	})
	return Constructor{Func: fn.Interface(), Target: target, Injected: injected}, nil
}

// Context returns the injection context of a constructor type: its first
// result, or the first exported field of a dig.Out result object, with
// pointer levels removed.
func Context(ft reflect.Type) (reflect.Type, error) {
	if ft.NumOut() == 0 || ft.Out(0) == errorType {
		return nil, fmt.Errorf("wiring: constructor %s returns nothing to inject into", ft)
	}
	out := ft.Out(0)
	if dig.IsOut(out) {
		for i := 0; i < out.NumField(); i++ {
			f := out.Field(i)
			if f.IsExported() && !f.Anonymous {
				return loginject.Indirect(f.Type), nil
			}
		}
		return nil, fmt.Errorf("wiring: result object %s has no exported field", out)
	}
	return loginject.Indirect(out), nil
}

// rewriteIn returns a copy of the parameter object type without the fields
// accepted by m. Objects with unexported fields are left alone since
// reflect.StructOf cannot declare them.
func rewriteIn(pt reflect.Type, m Matcher) (reflect.Type, []fieldSlot, int) {
	fields := make([]fieldSlot, pt.NumField())
	var kept []reflect.StructField
	n := 0
	for i := range fields {
		f := pt.Field(i)
		if !f.IsExported() {
			return pt, nil, 0
		}
		fields[i] = fieldSlot{name: f.Name, typ: f.Type}
		_, named := f.Tag.Lookup("name")
		_, grouped := f.Tag.Lookup("group")
		if !f.Anonymous && !named && !grouped && m(f.Type) {
			fields[i].logger = true
			n++
			continue
		}
		kept = append(kept, reflect.StructField{
			Name:      f.Name,
			Type:      f.Type,
			Tag:       f.Tag,
			Anonymous: f.Anonymous,
		})
	}
	if n == 0 {
		return pt, nil, 0
	}
	return reflect.StructOf(kept), fields, n
}

func buildIn(arg reflect.Value, sl slot, l any) (reflect.Value, error) {
	out := reflect.New(sl.typ).Elem()
	for i, f := range sl.fields {
		if f.logger {
			v, err := loggerValue(l, f.typ)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(v)
			continue
		}
		out.Field(i).Set(arg.FieldByName(f.name))
	}
	return out, nil
}

func loggerValue(l any, t reflect.Type) (reflect.Value, error) {
	if l == nil {
		return reflect.Zero(t), nil
	}
	v, ok := typeset.Upcast(reflect.ValueOf(l), t)
	if !ok {
		return reflect.Value{}, fmt.Errorf("wiring: logger of type %T cannot be bound as %s", l, t)
	}
	return v, nil
}

func fail(outs []reflect.Type, returnsErr bool, err error) []reflect.Value {
	if !returnsErr {
		panic(err)
	}
	res := make([]reflect.Value, len(outs))
	for i, t := range outs {
		res[i] = reflect.Zero(t)
	}
	res[len(res)-1] = reflect.ValueOf(&err).Elem()
	return res
}
