package direct

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/trickstertwo/loginject"
)

// Table records which functions construct which types. A logger resolved
// through the direct adapter belongs to the nearest caller on the stack that
// the table recognizes:
//
//   - a function registered with RegisterInjector, or a closure inside one;
//   - a method of a registered type, value or pointer receiver;
//   - a constructor of a registered type declared in the same package and
//     named New<T>, Initialize<T> or Provide<T> (lower-case variants too).
//
// Closures count as their enclosing function, including closures of a
// function the compiler inlined into its caller.
//
// google/wire generates plain calls to such providers, so registering the
// provided types is usually enough.
type Table struct {
	mu        sync.RWMutex
	injectors map[string]reflect.Type // function name -> injection context
	types     map[string]reflect.Type // package path + "." + type name
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		injectors: make(map[string]reflect.Type),
		types:     make(map[string]reflect.Type),
	}
}

var constructorPrefixes = []string{"New", "new", "Initialize", "initialize", "Provide", "provide"}

// RegisterInjector records fn, a function or method value, as constructing
// target.
func (t *Table) RegisterInjector(fn any, target reflect.Type) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("direct: injector must be a non-nil function, got %T", fn)
	}
	if target == nil {
		return fmt.Errorf("direct: injector %T has no target type", fn)
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return fmt.Errorf("direct: cannot name injector %T", fn)
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	t.mu.Lock()
	defer t.mu.Unlock()
	t.injectors[name] = loginject.Indirect(target)
	return nil
}

// RegisterType records types whose methods and constructors are injection
// sites. Unnamed types are ignored.
func (t *Table) RegisterType(types ...reflect.Type) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, typ := range types {
		typ = loginject.Indirect(typ)
		if typ == nil || typ.Name() == "" {
			continue
		}
		t.types[typ.PkgPath()+"."+typ.Name()] = typ
	}
}

// Context returns the injection context of the nearest recognized caller,
// skipping frames of loginject itself, of this package and of the runtime.
// It fails with loginject.ErrNoInjectionContext when no frame matches.
func (t *Table) Context() (reflect.Type, error) {
	frames := runtime.CallersFrames(callers(3))

	t.mu.RLock()
	defer t.mu.RUnlock()
	for {
		fr, more := frames.Next()
		if fr.Function != "" && !skipped(packageOf(fr.Function)) {
			if typ, ok := t.match(fr.Function); ok {
				return typ, nil
			}
		}
		if !more {
			break
		}
	}
	return nil, fmt.Errorf("%w: no registered injector or type on the call stack", loginject.ErrNoInjectionContext)
}

// callers returns the whole stack above skip, growing the buffer until it
// holds every frame.
func callers(skip int) []uintptr {
	pcs := make([]uintptr, 64)
	for {
		n := runtime.Callers(skip, pcs)
		if n < len(pcs) {
			return pcs[:n]
		}
		pcs = make([]uintptr, 2*len(pcs))
	}
}

// match maps a runtime function name to the type it constructs. A closure
// whose enclosing function was inlined is named after the whole inline chain
// (pkg.Caller.NewT.func1), so every segment is tried, innermost first. The
// outermost function must belong to the package of the type or injector;
// inlined segments may come from any package, matched by name when exactly
// one registration carries it.
func (t *Table) match(fn string) (reflect.Type, bool) {
	pkg := packageOf(fn)
	segs := segments(strings.TrimPrefix(fn[len(pkg):], "."))
	if len(segs) == 0 {
		return nil, false
	}
	outer := 1
	if len(segs) > 1 && (isReceiver(segs[0]) || t.has(pkg, segs[0])) {
		outer = 2
	}

	for i := len(segs) - 1; i >= 0; i-- {
		seg := segs[i]
		if isClosure(seg) {
			continue
		}
		local := i < outer
		method := i > 0 && (isReceiver(segs[i-1]) || t.has(pkg, segs[i-1]))

		// Injectors: plain functions and method values.
		if method {
			if typ, ok := t.injector(pkg, segs[i-1]+"."+seg, local); ok {
				return typ, true
			}
		}
		if typ, ok := t.injector(pkg, seg, local); ok {
			return typ, true
		}
		// Receiver of the method that follows.
		if i+1 < len(segs) {
			if typ, ok := t.typeNamed(pkg, receiverName(seg), local); ok {
				return typ, true
			}
		}
		// Constructors.
		if method {
			continue
		}
		for _, p := range constructorPrefixes {
			if name, ok := strings.CutPrefix(seg, p); ok && name != "" {
				if typ, ok := t.typeNamed(pkg, name, local); ok {
					return typ, true
				}
			}
		}
	}
	return nil, false
}

func (t *Table) has(pkg, seg string) bool {
	_, ok := t.types[pkg+"."+receiverName(seg)]
	return ok
}

func (t *Table) injector(pkg, name string, local bool) (reflect.Type, bool) {
	if typ, ok := t.injectors[pkg+"."+name]; ok {
		return typ, true
	}
	if local {
		return nil, false
	}
	return unique(t.injectors, name)
}

func (t *Table) typeNamed(pkg, name string, local bool) (reflect.Type, bool) {
	if typ, ok := t.lookup(pkg, name); ok {
		return typ, true
	}
	if local {
		return nil, false
	}
	return unique(t.types, name)
}

// unique returns the entry of m whose key is some package path followed by
// "." and name, provided there is exactly one.
func unique(m map[string]reflect.Type, name string) (reflect.Type, bool) {
	var found reflect.Type
	for key, typ := range m {
		pkg, ok := strings.CutSuffix(key, "."+name)
		if !ok || packageOf(key) != pkg {
			continue
		}
		if found != nil && found != typ {
			return nil, false
		}
		found = typ
	}
	return found, found != nil
}

// segments splits the part of a function name after its package at dots
// outside parentheses and brackets, dropping type argument lists.
//
//	(*T).Run.func1      -> (*T) Run func1
//	Caller.NewT[...].1  -> Caller NewT 1
func segments(rest string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i <= len(rest); i++ {
		if i < len(rest) {
			switch rest[i] {
			case '(', '[':
				depth++
				continue
			case ')', ']':
				depth--
				continue
			case '.':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		if seg := rest[start:i]; seg != "" {
			if j := strings.Index(seg, "["); j > 0 {
				seg = seg[:j]
			}
			out = append(out, seg)
		}
		start = i + 1
	}
	return out
}

// isClosure reports whether seg names an anonymous function: func1, or the
// bare index of a nested one.
func isClosure(seg string) bool {
	seg = strings.TrimPrefix(seg, "func")
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isReceiver(seg string) bool { return strings.HasPrefix(seg, "(") }

// receiverName strips pointer and package qualification: (*pkg.T) -> T.
func receiverName(seg string) string {
	seg = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(seg, "("), "*"), ")")
	if i := strings.LastIndex(seg, "."); i >= 0 {
		seg = seg[i+1:]
	}
	return seg
}

func (t *Table) lookup(pkg, name string) (reflect.Type, bool) {
	typ, ok := t.types[pkg+"."+name]
	return typ, ok
}

// packageOf returns the import path part of a fully-qualified function name
// as reported by the runtime.
func packageOf(fn string) string {
	slash := strings.LastIndex(fn, "/")
	if dot := strings.Index(fn[slash+1:], "."); dot >= 0 {
		return fn[:slash+1+dot]
	}
	return fn
}

var (
	corePkg   = reflect.TypeFor[loginject.Spec]().PkgPath()
	directPkg = reflect.TypeFor[Table]().PkgPath()
)

func skipped(pkg string) bool {
	switch pkg {
	case corePkg, directPkg, "runtime", "reflect":
		return true
	}
	return false
}
