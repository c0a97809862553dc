// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMember is the sentinel error wrapped by InvalidMemberError.
	ErrInvalidMember = errors.New("invalid trait member")
	// ErrInvalidTrait is the sentinel error wrapped by InvalidTraitError.
	ErrInvalidTrait = errors.New("invalid trait")
	// ErrDuplicateMember is the sentinel error wrapped by DuplicateMemberError.
	ErrDuplicateMember = errors.New("duplicate trait member")
	// ErrTraitConflict is the sentinel error wrapped by TraitConflictError.
	ErrTraitConflict = errors.New("conflicting trait declaration")

	// ErrNilTrait is returned when a conformance is registered without a trait.
	ErrNilTrait = errors.New("nil trait")
	// ErrUnboundBehavior is returned when a trait declares behavior members
	// but the conformance registration supplies no behavior binding.
	ErrUnboundBehavior = errors.New("behavior members are not bound")
	// ErrMissingState is returned when a trait declares state members but the
	// conformance registration supplies no state accessor.
	ErrMissingState = errors.New("state members are not embedded")
	// ErrDuplicateConformance is returned when the same type is registered
	// twice for one trait.
	ErrDuplicateConformance = errors.New("conformance already registered")

	// ErrAllocation is the sentinel error wrapped by AllocationError.
	ErrAllocation = errors.New("allocation failed")
	// ErrNilInstance is returned when a nil instance is converted.
	ErrNilInstance = errors.New("nil instance")
	// ErrInstanceDestroyed is returned when an instance, or a trait object
	// whose source instance, has been destroyed.
	ErrInstanceDestroyed = errors.New("instance destroyed")
	// ErrObjectDestroyed is returned when a destroyed (or nil) trait object is used.
	ErrObjectDestroyed = errors.New("trait object destroyed")
	// ErrSourceType is the sentinel error wrapped by SourceTypeError.
	ErrSourceType = errors.New("unexpected trait object source type")
)

type (
	// InvalidMemberError is returned when a member descriptor is malformed.
	InvalidMemberError struct {
		Member Member
		Reason string
	}

	// InvalidTraitError is returned when a trait name is malformed.
	InvalidTraitError struct {
		Name   string
		Reason string
	}

	// DuplicateMemberError is returned when two members of one trait share a
	// name, or map to the same Go identifier.
	DuplicateMemberError struct {
		Trait  string
		Name   string
		Other  string
		GoName string
	}

	// TraitConflictError is returned when a trait name is declared twice
	// with different member lists.
	TraitConflictError struct {
		Name string
	}

	// ConformanceError is returned when a (type, trait) registration fails.
	// Member and Reason are set when a single member does not match.
	ConformanceError struct {
		Type   string
		Trait  string
		Member string
		Reason string
		Err    error
	}

	// AllocationError is returned when a heap limit prevents allocating an
	// instance or a trait object. No partial value accompanies it.
	AllocationError struct {
		Kind  string
		Limit int
	}

	// SourceTypeError is returned when a trait object is converted back to a
	// concrete type it was not made from.
	SourceTypeError struct {
		Want string
		Got  string
	}
)

// Error implements the error interface.
func (e *InvalidMemberError) Error() string {
	return fmt.Sprintf("invalid %s member %q: %s", e.Member.Kind, e.Member.Name, e.Reason)
}

// Unwrap returns ErrInvalidMember for errors.Is compatibility.
func (e *InvalidMemberError) Unwrap() error { return ErrInvalidMember }

// Error implements the error interface.
func (e *InvalidTraitError) Error() string {
	return fmt.Sprintf("invalid trait %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidTrait for errors.Is compatibility.
func (e *InvalidTraitError) Unwrap() error { return ErrInvalidTrait }

// Error implements the error interface.
func (e *DuplicateMemberError) Error() string {
	if e.Name == e.Other {
		return fmt.Sprintf("trait %s: member %q declared more than once", e.Trait, e.Name)
	}
	return fmt.Sprintf("trait %s: members %q and %q both map to Go name %s", e.Trait, e.Other, e.Name, e.GoName)
}

// Unwrap returns ErrDuplicateMember for errors.Is compatibility.
func (e *DuplicateMemberError) Unwrap() error { return ErrDuplicateMember }

// Error implements the error interface.
func (e *TraitConflictError) Error() string {
	return fmt.Sprintf("trait %s already declared with a different member list", e.Name)
}

// Unwrap returns ErrTraitConflict for errors.Is compatibility.
func (e *TraitConflictError) Unwrap() error { return ErrTraitConflict }

// Error implements the error interface.
func (e *ConformanceError) Error() string {
	if e.Trait == "" {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	if e.Member != "" {
		return fmt.Sprintf("%s as %s: member %s: %v: %s", e.Type, e.Trait, e.Member, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s as %s: %v", e.Type, e.Trait, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConformanceError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate %s: heap limit of %d reached", e.Kind, e.Limit)
}

// Unwrap returns ErrAllocation for errors.Is compatibility.
func (e *AllocationError) Unwrap() error { return ErrAllocation }

// Error implements the error interface.
func (e *SourceTypeError) Error() string {
	return fmt.Sprintf("trait object source is %s, not %s", e.Got, e.Want)
}

// Unwrap returns ErrSourceType for errors.Is compatibility.
func (e *SourceTypeError) Unwrap() error { return ErrSourceType }
