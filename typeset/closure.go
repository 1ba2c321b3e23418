// Package typeset expands a logger implementation type into every type a
// logger of that type can be bound as.
//
// Go has no class hierarchy. The closure of a type is the type itself, the
// types of its exported embedded fields (recursively), those candidate
// interfaces it implements and the universal interface any. Interfaces a type
// satisfies cannot be enumerated through reflection, so callers name the
// candidates.
package typeset

import (
	"reflect"
	"strings"
)

var anyType = reflect.TypeFor[any]()

// Any returns the type of the universal interface.
func Any() reflect.Type { return anyType }

// Closure returns t, the closure of its exported embedded field types, every
// interface in candidates that t implements and any, without duplicates.
// Order: t first, embedded types depth first, candidates in the given order,
// any last. Non-interface candidates are ignored.
func Closure(t reflect.Type, candidates ...reflect.Type) []reflect.Type {
	if t == nil {
		return nil
	}
	seen := make(map[reflect.Type]struct{})
	var out []reflect.Type
	add := func(x reflect.Type) {
		if _, ok := seen[x]; ok {
			return
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}

	var walk func(x reflect.Type)
	walk = func(x reflect.Type) {
		if _, ok := seen[x]; ok {
			return
		}
		add(x)
		s := x
		for s.Kind() == reflect.Pointer {
			s = s.Elem()
		}
		if s.Kind() != reflect.Struct {
			return
		}
		for i := 0; i < s.NumField(); i++ {
			if f := s.Field(i); f.Anonymous && f.IsExported() {
				walk(f.Type)
			}
		}
	}
	walk(t)

	for _, c := range candidates {
		if c != nil && c.Kind() == reflect.Interface && t.Implements(c) {
			add(c)
		}
	}
	add(anyType)
	return out
}

// Platform reports whether t belongs to the language platform: predeclared
// and unnamed types, and named types of standard library packages. A package
// is taken to be part of the standard library when the first element of its
// import path has no dot; "main" is not.
func Platform(t reflect.Type) bool {
	pkg := pkgPath(t)
	if pkg == "" {
		return true
	}
	first, _, _ := strings.Cut(pkg, "/")
	return first != "main" && !strings.Contains(first, ".")
}

// LoggingDomain reports whether t is declared in the standard logging
// packages: log and everything below it.
func LoggingDomain(t reflect.Type) bool {
	pkg := pkgPath(t)
	return pkg == "log" || strings.HasPrefix(pkg, "log/")
}

// Bindable is the default binding filter: everything outside the platform,
// plus the platform's own logging types.
func Bindable(t reflect.Type) bool {
	return !Platform(t) || LoggingDomain(t)
}

// Filter returns the types for which keep reports true, in order.
func Filter(types []reflect.Type, keep func(reflect.Type) bool) []reflect.Type {
	out := make([]reflect.Type, 0, len(types))
	for _, t := range types {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// BindingSet is the closure of loggerType restricted to Bindable types.
func BindingSet(loggerType reflect.Type, candidates ...reflect.Type) []reflect.Type {
	return Filter(Closure(loggerType, candidates...), Bindable)
}

// Contains reports whether set holds t.
func Contains(set []reflect.Type, t reflect.Type) bool {
	for _, x := range set {
		if x == t {
			return true
		}
	}
	return false
}

func pkgPath(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	return t.PkgPath()
}
