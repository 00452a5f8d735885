package parser

import (
	"strconv"
	"strings"

	"j2ts/internal/lexer"
)

// Kind is the declaration keyword of a type
type Kind string

const (
	Class     Kind = "class"
	Enum      Kind = "enum"
	Interface Kind = "interface"
)

// Flags is the declaration bitset
type Flags uint8

const (
	Static Flags = 0x01
	// First and Last bound one comma-separated declaration group
	First         Flags = 0x02
	Last          Flags = 0x04
	EnumConst     Flags = 0x10
	AssertNonNull Flags = 0x20
)

// Decl is a typed name: a property, a local, an argument or a method head
type Decl struct {
	Type  string
	Name  string
	Flags Flags
	Array int // array dimensions
}

// TypeName returns the type with one [] per array dimension
func (d *Decl) TypeName() string {
	return d.Type + strings.Repeat("[]", d.Array)
}

func (d *Decl) IsStatic() bool {
	return d.Flags&Static != 0
}

// VarDecl is a Decl with an optional initializer
type VarDecl struct {
	Decl
	Value []lexer.Token // nil when there is no initializer
}

// Member is a Property or a Method of a TypeRecord
type Member interface {
	Declaration() *Decl
}

// Property represents a field or an enum constant
type Property struct {
	VarDecl
}

func (p *Property) Declaration() *Decl { return &p.Decl }

// Method represents a method or a constructor. Constructors are named
// "constructor" and have an empty Type.
type Method struct {
	Decl
	Args  []Decl
	Body  []lexer.Token
	Alias string // internal name assigned on overload collision

	// Dispatcher marks the constructor synthesized over several overloads
	Dispatcher bool
}

func (m *Method) Declaration() *Decl { return &m.Decl }

// InternalName is the name the method is emitted under
func (m *Method) InternalName() string {
	if m.Alias != "" {
		return m.Alias
	}
	return m.Name
}

// Key is the overload signature key name@T1:T2
func (m *Method) Key() string {
	types := make([]string, len(m.Args))
	for i := range m.Args {
		types[i] = m.Args[i].Type
	}
	return m.Name + "@" + strings.Join(types, ":")
}

// TypeRecord is the member table of one parsed type
type TypeRecord struct {
	Name    string
	Kind    Kind
	Members []Member // source order

	properties map[string]*Property
	methods    map[string]*Method
}

// NewTypeRecord creates an empty record
func NewTypeRecord(name string, kind Kind) *TypeRecord {
	return &TypeRecord{
		Name:       name,
		Kind:       kind,
		properties: make(map[string]*Property),
		methods:    make(map[string]*Method),
	}
}

// AddProperty appends a property. A method registered earlier under the
// same name is renamed with a _set suffix.
func (r *TypeRecord) AddProperty(prop *Property) {
	for _, member := range r.Members {
		if member.Declaration().Name != prop.Name {
			continue
		}
		if method, ok := member.(*Method); ok {
			method.Alias = method.InternalName() + "_set"
		}
		break
	}
	r.Members = append(r.Members, prop)
	r.properties[prop.Name] = prop
}

// AddMethod appends a method and aliases it when its name collides: with
// name_n where n counts the earlier same-named methods, otherwise with
// name_set when a same-named property came first.
func (r *TypeRecord) AddMethod(method *Method) {
	n := 0
	afterProperty := false
	for _, member := range r.Members {
		if member.Declaration().Name != method.Name {
			continue
		}
		if _, ok := member.(*Method); ok {
			n++
		} else {
			afterProperty = true
		}
	}

	switch {
	case n > 0:
		method.Alias = method.Name + "_" + strconv.Itoa(n)
	case afterProperty:
		method.Alias = method.Name + "_set"
	}

	r.Members = append(r.Members, method)
	r.methods[method.Key()] = method
}

// Prepend inserts a member ahead of all others without registering it in
// the lookup tables
func (r *TypeRecord) Prepend(member Member) {
	r.Members = append([]Member{member}, r.Members...)
}

// Property returns the property registered last under name
func (r *TypeRecord) Property(name string) *Property {
	return r.properties[name]
}

// Method returns the method with the signature key
func (r *TypeRecord) Method(key string) *Method {
	return r.methods[key]
}

// Methods returns the methods in source order
func (r *TypeRecord) Methods() []*Method {
	var methods []*Method
	for _, member := range r.Members {
		if method, ok := member.(*Method); ok {
			methods = append(methods, method)
		}
	}
	return methods
}

// Properties returns the properties in source order
func (r *TypeRecord) Properties() []*Property {
	var props []*Property
	for _, member := range r.Members {
		if prop, ok := member.(*Property); ok {
			props = append(props, prop)
		}
	}
	return props
}

// StaticMember reports whether name is a static property or method
func (r *TypeRecord) StaticMember(name string) bool {
	if prop := r.Property(name); prop != nil && prop.IsStatic() {
		return true
	}
	for _, method := range r.Methods() {
		if method.Name == name && method.IsStatic() {
			return true
		}
	}
	return false
}
