// Package reactor implements the core of a deterministic, reactor-oriented
// discrete-event engine: a hierarchical network of reactive components
// driven by a single-threaded, superdense-time main loop (App).
package reactor

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/google/uuid"
)

// Key is an opaque, unforgeable-by-convention capability token minted fresh
// for every component at registration. Privileged operations (AsWritable,
// the port/action manager, Schedulable) require the component's own key;
// see Reactor.KeyFor for the scoping rules that govern how a key may be
// obtained.
type Key struct {
	token string
}

func newKey() Key {
	return Key{token: uuid.NewString()}
}

// Component is the base embedded by every named, owned entity in the
// topology: ports, actions, timers, caller/callee ports, and reactors
// themselves. It fixes the component's container once, at construction
// (invariant 1 of spec.md §3): registration is one-shot.
type Component struct {
	key       Key
	container *Reactor
	self      any // the concrete pointer, used for container introspection
}

// newComponent registers self with container, minting a fresh key. A nil
// container is only valid for the App, which is its own container.
func newComponent(container *Reactor, self any) Component {
	c := Component{key: newKey(), container: container, self: self}
	if container != nil {
		container.adopt(self, c.key)
	}
	return c
}

// Container returns the reactor this component belongs to, or nil for App.
func (c Component) Container() *Reactor {
	return c.container
}

func (c Component) componentKey() Key {
	return c.key
}

// multiportMember is implemented by a Port that was built as one element of
// a MultiPort: it reports the MultiPort it belongs to and its index within
// it, so Name can qualify it by the MultiPort's own field name the same way
// a bank member is qualified by its position in a container slice field.
// owner is nil for an ordinary, non-member port.
type multiportMember interface {
	multiportSlot() (owner any, index int)
}

// Name resolves the component's name by introspecting its container for a
// struct field (or slice element, for bank members) whose value is this
// component, falling back to the concrete type's name. A multiport member
// is instead named by its owning MultiPort's field name plus its position
// within it, since the member itself is never a direct container field.
func (c Component) Name() string {
	if c.container != nil {
		if mm, ok := c.self.(multiportMember); ok {
			if owner, index := mm.multiportSlot(); owner != nil {
				if ownerName, ok := c.container.resolveChildName(owner); ok {
					return fmt.Sprintf("%s[%d]", ownerName, index)
				}
			}
		}
		if name, ok := c.container.resolveChildName(c.self); ok {
			return name
		}
	}
	return typeName(c.self)
}

// FullyQualifiedName is the dotted path from the App down to this
// component; the App itself contributes no path segment.
func (c Component) FullyQualifiedName() string {
	if c.container == nil {
		return ""
	}
	parent := c.container.FullyQualifiedName()
	if parent == "" {
		return c.Name()
	}
	return parent + "." + c.Name()
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "<unknown>"
	}
	return t.Name()
}

// fieldPointer returns a field's pointer value as a comparable
// unsafe.Pointer. Every component field this package wires up (Port,
// Action, Timer, Reactor, MultiPort, and slices thereof) is held by
// pointer, and container struct fields are conventionally unexported
// throughout this codebase — Value.Interface would panic on them, so
// identity is compared via UnsafePointer instead, which (unlike
// Interface) is not gated by the unexported-field read-only flag. This
// never dereferences or mutates through the pointer, only compares it.
func fieldPointer(v reflect.Value) (unsafe.Pointer, bool) {
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, false
	}
	return v.UnsafePointer(), true
}

// resolveChildName scans r's own concrete struct (the "self" pointer
// supplied to NewReactor/NewApp) for a field whose value is target,
// returning position-qualified names ("Bank[2]") for slice members.
func (r *Reactor) resolveChildName(target any) (string, bool) {
	if r == nil || r.self == nil {
		return "", false
	}

	targetPtr, ok := fieldPointer(reflect.ValueOf(target))
	if !ok {
		return "", false
	}

	v := reflect.ValueOf(r.self)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", false
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		switch field.Kind() {
		case reflect.Pointer:
			if p, ok := fieldPointer(field); ok && p == targetPtr {
				return t.Field(i).Name, true
			}
		case reflect.Slice, reflect.Array:
			for j := 0; j < field.Len(); j++ {
				if p, ok := fieldPointer(field.Index(j)); ok && p == targetPtr {
					return fmt.Sprintf("%s[%d]", t.Field(i).Name, j), true
				}
			}
		}
	}
	return "", false
}
