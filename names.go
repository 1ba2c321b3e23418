package loginject

import "reflect"

// TypeName returns the fully-qualified name of t: the import path of its
// package, a dot and the type name. Pointer levels are removed, so *T and T
// name the same injection context. Predeclared and unnamed types use their
// String form.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	t = Indirect(t)
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Indirect strips every pointer level from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// typeString is TypeName with the pointer levels kept, for error messages.
func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	prefix := ""
	for t.Kind() == reflect.Pointer {
		prefix += "*"
		t = t.Elem()
	}
	return prefix + TypeName(t)
}
