// SPDX-License-Identifier: MPL-2.0

package traitdecl

import (
	"errors"
	"fmt"

	"github.com/invowk/traitkit/pkg/cueutil"
	"github.com/invowk/traitkit/pkg/trait"
)

var (
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported declaration file format")

	// ErrDuplicateTrait marks a trait declared twice in one file, or listed
	// twice in one implementation block.
	ErrDuplicateTrait = errors.New("duplicate trait")

	// ErrDuplicateMember marks two members of one trait sharing a name or a
	// Go name.
	ErrDuplicateMember = errors.New("duplicate member")

	// ErrUnknownTrait marks an implementation block naming an undeclared trait.
	ErrUnknownTrait = errors.New("unknown trait")

	// ErrMemberCollision marks two traits of one implementation block whose
	// members map to the same Go name, or an init method shadowing a member.
	ErrMemberCollision = errors.New("member collision")

	// ErrDuplicateImpl marks two implementation blocks for one type.
	ErrDuplicateImpl = errors.New("duplicate implementation block")
)

// DeclError is a semantic error located inside a declaration file.
type DeclError struct {
	Path   cueutil.CUEPath
	Err    error
	Detail string
}

// Error renders "<path>: <kind>: <detail>".
func (e *DeclError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Detail)
}

// Unwrap returns the sentinel error.
func (e *DeclError) Unwrap() error { return e.Err }

// Validate runs the checks the schema cannot express. All problems are
// reported, joined with errors.Join; each is a *DeclError.
func (f *File) Validate() error {
	var errs []error
	report := func(path cueutil.CUEPath, sentinel error, format string, args ...any) {
		errs = append(errs, &DeclError{Path: path, Err: sentinel, Detail: fmt.Sprintf(format, args...)})
	}

	traits := make(map[string]TraitDecl, len(f.Traits))
	root := cueutil.CUEPath("traits")
	for i, t := range f.Traits {
		tp := root.Index(i)
		if _, dup := traits[t.Name]; dup {
			report(tp.Field("name"), ErrDuplicateTrait, "trait %s declared more than once", t.Name)
			continue
		}
		traits[t.Name] = t

		names := make(map[string]int, len(t.Members))
		goNames := make(map[string]string, len(t.Members))
		for j, m := range t.Members {
			mp := tp.Field("members").Index(j)
			if _, dup := names[m.Name]; dup {
				report(mp, ErrDuplicateMember, "trait %s: member %q declared more than once", t.Name, m.Name)
				continue
			}
			names[m.Name] = j
			if other, dup := goNames[m.GoName()]; dup {
				report(mp, ErrDuplicateMember, "trait %s: members %q and %q both map to Go name %s", t.Name, other, m.Name, m.GoName())
				continue
			}
			goNames[m.GoName()] = m.Name
			if t.HasState() && m.GoName() == StateField(t.Name) {
				report(mp, ErrMemberCollision, "trait %s: member %q collides with the embedded %s", t.Name, m.Name, StateField(t.Name))
			}
		}
	}

	impls := make(map[string]bool, len(f.Impls))
	for i, impl := range f.Impls {
		ip := cueutil.CUEPath("impls").Index(i)
		if impls[impl.Type] {
			report(ip.Field("type"), ErrDuplicateImpl, "type %s has more than one implementation block", impl.Type)
			continue
		}
		impls[impl.Type] = true

		seen := make(map[string]bool, len(impl.Traits))
		owners := make(map[string]string)
		fields := make(map[string]string)
		for j, name := range impl.Traits {
			tp := ip.Field("traits").Index(j)
			if seen[name] {
				report(tp, ErrDuplicateTrait, "type %s embeds trait %s twice", impl.Type, name)
				continue
			}
			seen[name] = true
			decl, ok := traits[name]
			if !ok {
				report(tp, ErrUnknownTrait, "type %s: trait %s is not declared", impl.Type, name)
				continue
			}
			if decl.HasState() {
				field := StateField(name)
				if owner, clash := owners[field]; clash {
					report(tp, ErrMemberCollision, "type %s: embedded %s of trait %s collides with a member of trait %s", impl.Type, field, name, owner)
				}
				fields[field] = name
			}
			for _, m := range decl.Members {
				goName := m.GoName()
				if owner, clash := fields[goName]; clash && owner != name {
					report(tp, ErrMemberCollision, "type %s: member %s of trait %s collides with the embedded %s", impl.Type, goName, name, StateField(owner))
					continue
				}
				if owner, clash := owners[goName]; clash && owner != name {
					report(tp, ErrMemberCollision, "type %s: member %s of trait %s collides with trait %s", impl.Type, goName, name, owner)
					continue
				}
				owners[goName] = name
			}
		}
		if impl.Init != "" {
			if owner, clash := owners[impl.Init]; clash {
				report(ip.Field("init"), ErrMemberCollision, "type %s: init method %s collides with a member of trait %s", impl.Type, impl.Init, owner)
			} else if owner, clash := fields[impl.Init]; clash {
				report(ip.Field("init"), ErrMemberCollision, "type %s: init method %s collides with the embedded state of trait %s", impl.Type, impl.Init, owner)
			}
		}
	}

	return errors.Join(errs...)
}

// StateField is the name of the state struct of trait name, which is also
// the field name it is embedded under.
func StateField(name string) string { return name + "State" }

// Traits validates f and declares every trait it contains, in order.
func (f *File) Traits() ([]*trait.Trait, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := make([]*trait.Trait, 0, len(f.Traits))
	for _, d := range f.Traits {
		t, err := d.Declare()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Merge declares the traits of every file into one catalog. A trait
// declared identically in several files is kept once; conflicting
// declarations fail with trait.ErrTraitConflict.
func Merge(files ...*File) (*trait.Catalog, error) {
	cat := trait.NewCatalog()
	var errs []error
	for _, f := range files {
		traits, err := f.Traits()
		if err != nil {
			errs = append(errs, sourced(f, err))
			continue
		}
		for _, t := range traits {
			if err := cat.Add(t); err != nil {
				errs = append(errs, sourced(f, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cat, nil
}

func sourced(f *File, err error) error {
	if f.Source == "" {
		return err
	}
	return fmt.Errorf("%s: %w", f.Source, err)
}
