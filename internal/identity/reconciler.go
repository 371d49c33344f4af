// Package identity validates and generates the stable identifiers of
// contract entities.
//
// A syntactically valid UUID is returned unchanged so identities survive
// repeated import/export cycles. Anything else is replaced by a fresh random
// UUID and the replacement is recorded, letting callers detect identity churn
// across saves.
package identity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/errors"
)

// namespace seeds derived identifiers. Changing it changes every derived id.
var namespace = uuid.MustParse("3b8f5e2a-4c1d-4f7e-9a60-2d3c4b5a6e7f")

// Reconciler hands out identifiers for one import. It is not safe for
// concurrent use; each import owns its own Reconciler.
type Reconciler struct {
	diags  *diagnostic.Diagnostics
	owners map[string]string
	newID  func() string
}

// New returns a Reconciler recording into diags.
func New(diags *diagnostic.Diagnostics) *Reconciler {
	return &Reconciler{
		diags:  diags,
		owners: map[string]string{},
		newID:  func() string { return uuid.New().String() },
	}
}

// IsValid reports whether candidate is a UUID in one of the textual forms
// accepted by uuid.Parse, excluding the nil UUID.
func IsValid(candidate string) bool {
	if strings.TrimSpace(candidate) != candidate || candidate == "" {
		return false
	}

	id, err := uuid.Parse(candidate)

	return err == nil && id != uuid.Nil
}

// Reconcile returns candidate unchanged when it is valid, otherwise a fresh
// identifier. locator names the entity for the replacement warning.
func (r *Reconciler) Reconcile(candidate, locator string) string {
	if IsValid(candidate) {
		return candidate
	}

	id := r.newID()

	if candidate == "" {
		r.diags.AddInfo(diagnostic.CodeIdentityReplaced,
			fmt.Sprintf("no identifier present, generated %s", id), locator, "id")
	} else {
		r.diags.AddWarning(diagnostic.CodeIdentityReplaced,
			fmt.Sprintf("identifier %q is not a valid UUID, replaced with %s", candidate, id), locator, "id")
	}

	return id
}

// Claim reconciles candidate and registers the result for who. When another
// entity already holds the identifier, the first holder keeps it and the
// caller receives a fresh one; the conflict is recorded as a warning.
func (r *Reconciler) Claim(candidate, locator, who string) string {
	id := r.Reconcile(candidate, locator)

	if first, taken := r.owners[id]; taken {
		conflict := &errors.IdentityConflictError{ID: id, First: first, Second: who}
		id = r.newID()
		r.diags.AddWarning(diagnostic.CodeIdentityConflict,
			fmt.Sprintf("%s; %s received %s", conflict.Error(), who, id), locator, "id")
	}

	r.owners[id] = who

	return id
}

// Derive returns a deterministic identifier for the given parts, used for
// entities the wire format does not identify explicitly.
func Derive(parts ...string) string {
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "\x00"))).String()
}
