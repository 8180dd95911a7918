package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ElementRef is a declarative reference to a page element. Exactly one of
// the two forms must be present: role+name ("role locator") or a raw CSS
// selector. Role locators are preferred because they stay stable across
// visual redesigns; the selector form is an explicit escape hatch.
type ElementRef struct {
	// Role is the ARIA role of the element (e.g. "button", "link", "textbox")
	Role string

	// Name is the accessible name of the element, from the snapshot
	Name string

	// Selector is a raw CSS selector, used when role+name is absent
	Selector string

	// Index optionally disambiguates multiple matches (zero-based,
	// document order)
	Index *int
}

// isRoleForm reports whether the reference uses the role+name form.
func (r ElementRef) isRoleForm() bool {
	return r.Role != "" && r.Name != ""
}

// validate rejects references that satisfy neither or both forms. A role
// without a name (or vice versa) is also malformed.
func (r ElementRef) validate() error {
	hasRolePart := r.Role != "" || r.Name != ""
	hasSelector := r.Selector != ""

	switch {
	case hasRolePart && hasSelector:
		return newError(KindInvalidLocator, "element reference must use either role+name or selector, not both")
	case !hasRolePart && !hasSelector:
		return newError(KindInvalidLocator, "element reference requires either role+name or a selector")
	case hasRolePart && !r.isRoleForm():
		return newError(KindInvalidLocator, "role locators require both role and name")
	}

	if r.Index != nil && *r.Index < 0 {
		return newError(KindInvalidLocator, "occurrence index must not be negative")
	}
	return nil
}

// describe renders the reference for error context and action messages.
func (r ElementRef) describe() string {
	if r.isRoleForm() {
		return fmt.Sprintf("role=%s, name=%s", r.Role, r.Name)
	}
	return fmt.Sprintf("selector=%s", r.Selector)
}

// resolveLocator turns an element reference into exactly one concrete
// locator on the page, or fails explicitly. Name matching follows the
// engine's native semantics. Without an occurrence index, zero matches is
// an error and multiple matches silently resolve to the first in document
// order; this permissive default is deliberate.
func resolveLocator(page playwright.Page, ref ElementRef) (playwright.Locator, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}

	var locator playwright.Locator
	if ref.isRoleForm() {
		locator = page.GetByRole(playwright.AriaRole(ref.Role), playwright.PageGetByRoleOptions{
			Name: ref.Name,
		})
	} else {
		locator = page.Locator(ref.Selector)
	}

	count, err := locator.Count()
	if err != nil {
		return nil, withContext(err, ref.describe())
	}

	if ref.Index != nil {
		if *ref.Index >= count {
			return nil, &Error{
				Kind:    KindElementNotFound,
				Message: fmt.Sprintf("occurrence index %d out of range, %d element(s) matched", *ref.Index, count),
				Context: ref.describe(),
			}
		}
		return locator.Nth(*ref.Index), nil
	}

	if count == 0 {
		return nil, &Error{
			Kind:    KindElementNotFound,
			Message: "no element matched",
			Context: ref.describe(),
		}
	}
	return locator.First(), nil
}
