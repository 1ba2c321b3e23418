package typeset

import "reflect"

// Upcast converts v to a value of type to. Plain assignability is tried
// first; otherwise the exported embedded fields of v are searched depth
// first, dereferencing non-nil pointers on the way. The returned value has
// exactly type to.
func Upcast(v reflect.Value, to reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() || to == nil {
		return reflect.Value{}, false
	}
	if v.Type().AssignableTo(to) {
		out := reflect.New(to).Elem()
		out.Set(v)
		return out, true
	}
	s := v
	for s.Kind() == reflect.Pointer || s.Kind() == reflect.Interface {
		if s.IsNil() {
			return reflect.Value{}, false
		}
		s = s.Elem()
	}
	if s.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	st := s.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		if out, ok := Upcast(s.Field(i), to); ok {
			return out, true
		}
	}
	return reflect.Value{}, false
}
