// Package provider loads enum descriptors from manifest files written by an
// external frontend.
//
// A manifest lists enums under a top-level "enums" key:
//
//	enums:
//	  - name: Color
//	    namespace: example.com/app/colors
//	    underlying: uint8
//	    metadataSource: Display
//	    members:
//	      - name: Red
//	        value: 1
//	        display: Crimson
//	      - name: Green
//	        value: "0x02"
//
// YAML, TOML and JSON are accepted; the format is chosen by file extension.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/broady/enumext"
	"github.com/broady/enumext/enumgen/ir"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the manifest format for a file name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.WithHint(
		errors.Newf("unknown manifest format for %q", name),
		"use a .yaml, .yml, .toml or .json file")
}

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Enums []EnumEntry `json:"enums" yaml:"enums" toml:"enums"`
}

// EnumEntry describes one enum in a manifest.
type EnumEntry struct {
	Name               string        `json:"name" yaml:"name" toml:"name"`
	Namespace          string        `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Package            string        `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
	FullyQualifiedName string        `json:"fullyQualifiedName,omitempty" yaml:"fullyQualifiedName,omitempty" toml:"fullyQualifiedName,omitempty"`
	Underlying         string        `json:"underlying,omitempty" yaml:"underlying,omitempty" toml:"underlying,omitempty"`
	Public             *bool         `json:"public,omitempty" yaml:"public,omitempty" toml:"public,omitempty"`
	Flags              bool          `json:"flags,omitempty" yaml:"flags,omitempty" toml:"flags,omitempty"`
	MetadataSource     string        `json:"metadataSource,omitempty" yaml:"metadataSource,omitempty" toml:"metadataSource,omitempty"`
	Internal           *bool         `json:"internal,omitempty" yaml:"internal,omitempty" toml:"internal,omitempty"`
	ExtensionNamespace string        `json:"extensionNamespace,omitempty" yaml:"extensionNamespace,omitempty" toml:"extensionNamespace,omitempty"`
	ExtensionClassName string        `json:"extensionClassName,omitempty" yaml:"extensionClassName,omitempty" toml:"extensionClassName,omitempty"`
	Transform          string        `json:"transform,omitempty" yaml:"transform,omitempty" toml:"transform,omitempty"`
	Members            []MemberEntry `json:"members" yaml:"members" toml:"members"`
}

// MemberEntry describes one enum constant. Display, Description and
// EnumMember are shorthands for attributes of the matching family and are
// appended after Attributes.
type MemberEntry struct {
	Name        string           `json:"name" yaml:"name" toml:"name"`
	Value       Value            `json:"value" yaml:"value" toml:"value"`
	Display     *string          `json:"display,omitempty" yaml:"display,omitempty" toml:"display,omitempty"`
	Description *string          `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	EnumMember  *string          `json:"enumMember,omitempty" yaml:"enumMember,omitempty" toml:"enumMember,omitempty"`
	Attributes  []AttributeEntry `json:"attributes,omitempty" yaml:"attributes,omitempty" toml:"attributes,omitempty"`
}

// AttributeEntry is one metadata attribute in declaration order.
type AttributeEntry struct {
	Family string `json:"family" yaml:"family" toml:"family"`
	Value  string `json:"value" yaml:"value" toml:"value"`
}

// Value is a member value as written in a manifest: a number or a string
// holding a Go integer literal. It is range checked once the underlying kind
// is known.
type Value struct {
	text string
	set  bool
}

// NewValue returns a Value holding the literal s.
func NewValue(s string) Value { return Value{text: s, set: true} }

// String returns the literal as written.
func (v Value) String() string { return v.text }

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: member value must be a scalar", node.Line)
	}
	*v = NewValue(node.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(data any) error {
	switch data := data.(type) {
	case int64:
		*v = NewValue(strconv.FormatInt(data, 10))
	case string:
		*v = NewValue(data)
	default:
		return errors.Newf("member value must be an integer or a string, got %T", data)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = NewValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "member value must be a number or a string")
	}
	*v = NewValue(n.String())
	return nil
}

// Load reads and decodes the manifest at path.
func Load(ctx context.Context, path string) ([]*ir.EnumDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	m, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	enums, err := m.Descriptors(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return enums, nil
}

// Decode parses manifest data in the given format.
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "yaml")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, errors.Wrap(err, "toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("toml: unknown field %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, errors.Wrap(err, "json")
		}
	default:
		return nil, errors.Newf("unknown manifest format %q", format)
	}
	return &m, nil
}

// Descriptors converts the manifest into enum descriptors. file is recorded
// as the source of every descriptor and member. All conversion errors are
// reported together.
func (m *Manifest) Descriptors(file string) ([]*ir.EnumDescriptor, error) {
	var errs error
	out := make([]*ir.EnumDescriptor, 0, len(m.Enums))
	for i, e := range m.Enums {
		d, err := e.descriptor(file)
		if err != nil {
			name := e.Name
			if name == "" {
				name = "#" + strconv.Itoa(i)
			}
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "enum %s", name))
			continue
		}
		out = append(out, d)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (e EnumEntry) descriptor(file string) (*ir.EnumDescriptor, error) {
	kind := ir.KindInt
	if e.Underlying != "" {
		k, err := ir.ParseUnderlyingKind(e.Underlying)
		if err != nil {
			return nil, err
		}
		kind = k
	}

	d := &ir.EnumDescriptor{
		Name:                    e.Name,
		Namespace:               e.Namespace,
		PackageName:             e.Package,
		FullyQualifiedName:      e.FullyQualifiedName,
		Underlying:              kind,
		IsPublic:                token.IsExported(e.Name),
		HasFlags:                e.Flags,
		ForceInternalExtensions: e.Internal,
		ExtensionNamespace:      e.ExtensionNamespace,
		ExtensionClassName:      e.ExtensionClassName,
		Source:                  ir.Source{File: file},
	}
	if e.Public != nil {
		d.IsPublic = *e.Public
	}
	if e.MetadataSource != "" {
		s, err := ir.ParseMetadataSource(e.MetadataSource)
		if err != nil {
			return nil, err
		}
		d.MetadataSource = s
	}
	if e.Transform != "" {
		t, err := enumext.ParseTransform(e.Transform)
		if err != nil {
			return nil, err
		}
		d.Transform = t
	}

	var errs error
	for _, me := range e.Members {
		m, err := me.member(kind, file)
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "member %s", me.Name))
			continue
		}
		d.Members = append(d.Members, m)
	}
	if errs != nil {
		return nil, errs
	}
	return d, nil
}

func (me MemberEntry) member(kind ir.UnderlyingKind, file string) (ir.Member, error) {
	if !me.Value.set {
		return ir.Member{}, errors.New("missing value")
	}
	c, err := ir.ParseConstant(me.Value.text, kind)
	if err != nil {
		return ir.Member{}, err
	}
	m := ir.Member{Name: me.Name, Value: c, Source: ir.Source{File: file}}
	for _, a := range me.Attributes {
		f, err := ir.ParseAttributeFamily(a.Family)
		if err != nil {
			return ir.Member{}, err
		}
		m.Attributes = append(m.Attributes, ir.Attribute{Family: f, Value: a.Value})
	}
	for _, sh := range []struct {
		family ir.AttributeFamily
		value  *string
	}{
		{ir.FamilyDisplay, me.Display},
		{ir.FamilyDescription, me.Description},
		{ir.FamilyEnumMember, me.EnumMember},
	} {
		if sh.value != nil {
			m.Attributes = append(m.Attributes, ir.Attribute{Family: sh.family, Value: *sh.value})
		}
	}
	return m, nil
}
