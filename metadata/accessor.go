/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metadata

import (
	"fmt"
	"reflect"
)

// Accessor reads and writes one field of a struct value.
// holder is always a non-nil pointer to the struct that declares the field.
type Accessor interface {
	Get(holder reflect.Value) (reflect.Value, error)
	Set(holder reflect.Value, v reflect.Value) error
}

// methodAccessor calls a getter/setter pair found on the pointer method set.
type methodAccessor struct {
	getter reflect.Method
	setter reflect.Method
}

func (a methodAccessor) Get(holder reflect.Value) (out reflect.Value, err error) {
	defer recoverCall(a.getter.Name, &err)

	results := a.getter.Func.Call([]reflect.Value{holder})
	return results[0], nil
}

func (a methodAccessor) Set(holder reflect.Value, v reflect.Value) (err error) {
	defer recoverCall(a.setter.Name, &err)

	in := a.setter.Type.In(1)
	if !v.Type().AssignableTo(in) {
		if !v.Type().ConvertibleTo(in) {
			return fmt.Errorf("%s expects %s, got %s", a.setter.Name, in, v.Type())
		}
		v = v.Convert(in)
	}
	a.setter.Func.Call([]reflect.Value{holder, v})
	return nil
}

func (a methodAccessor) String() string {
	return a.getter.Name + "/" + a.setter.Name
}

// fieldAccessor reads and writes an exported struct field directly.
type fieldAccessor struct {
	name  string
	index []int
}

func (a fieldAccessor) Get(holder reflect.Value) (reflect.Value, error) {
	return holder.Elem().FieldByIndex(a.index), nil
}

func (a fieldAccessor) Set(holder reflect.Value, v reflect.Value) error {
	f := holder.Elem().FieldByIndex(a.index)
	if !f.CanSet() {
		return fmt.Errorf("field %s is not settable", a.name)
	}
	f.Set(v)
	return nil
}

func (a fieldAccessor) String() string {
	return a.name
}

func recoverCall(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s panicked: %v", name, r)
	}
}
