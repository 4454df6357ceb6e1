package golang

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/broady/enumext/enumgen/ir"
	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"
)

// Emitter renders extension types. It holds no mutable state and may be shared
// across goroutines.
type Emitter struct {
	opts Options
}

// NewEmitter creates an Emitter with the given options.
func NewEmitter(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

// Emit renders the extension type for d at id. d should have been enriched by
// the metadata resolver. The result is byte-for-byte identical for identical
// inputs.
//
// An error means the generated text did not format, which indicates a bug in the
// emitter rather than a problem with d.
func (e *Emitter) Emit(d *ir.EnumDescriptor, id ir.ExtensionClassIdentity) (*GeneratedUnit, error) {
	p, diags := newPlan(d, id, e.opts)
	key := unitKey(id.Namespace, id.TypeName(), e.opts.StripPackagePrefix)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, p); err != nil {
		return nil, errors.Wrapf(err, "render %s", d.QualifiedName())
	}

	src, err := imports.Process(key, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.WithDetail(
			errors.Wrapf(err, "format %s", d.QualifiedName()),
			buf.String())
	}

	return &GeneratedUnit{
		Key:         key,
		Source:      src,
		Enum:        d.QualifiedName(),
		Identity:    id,
		Diagnostics: diags,
	}, nil
}

// Emit renders one extension type with the given options.
func Emit(d *ir.EnumDescriptor, id ir.ExtensionClassIdentity, opts Options) (*GeneratedUnit, error) {
	return NewEmitter(opts).Emit(d, id)
}

// DisambiguateKeys renames units whose file key is already used by a different
// extension type. File names drop letter case, so ColorExtensions and
// colorExtensions would otherwise share color_extensions.enumext.go. The later
// unit gets a numeric suffix, color_extensions_2.enumext.go, in input order.
//
// Units that declare the same type in the same namespace keep a shared key;
// they are a naming collision and only one of them can be written.
func DisambiguateKeys(units []*GeneratedUnit) {
	type identity struct{ namespace, typeName string }

	used := make(map[string]bool, len(units))
	for _, u := range units {
		if u != nil {
			used[u.Key] = true
		}
	}
	owner := make(map[string]identity, len(units))
	assigned := make(map[identity]string, len(units))
	for _, u := range units {
		if u == nil {
			continue
		}
		id := identity{u.Identity.Namespace, u.Identity.TypeName()}
		if key, ok := assigned[id]; ok {
			u.Key = key
			continue
		}
		if o, ok := owner[u.Key]; ok && o != id {
			base := strings.TrimSuffix(u.Key, FileSuffix)
			key := base + "_2" + FileSuffix
			for i := 3; used[key]; i++ {
				key = base + "_" + strconv.Itoa(i) + FileSuffix
			}
			u.Key = key
			used[key] = true
		}
		owner[u.Key] = id
		assigned[id] = u.Key
	}
}
