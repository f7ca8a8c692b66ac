package engine

import (
	"fmt"
	"sort"

	"github.com/minibase-io/minibase/pkg/types"
)

func validatePrivileges(privs []types.Privilege) error {
	if len(privs) == 0 {
		return fmt.Errorf("%w: at least one privilege required", types.ErrValidation)
	}
	for _, p := range privs {
		if !types.IsValidPrivilege(p) {
			return fmt.Errorf("%w: unknown privilege %q", types.ErrValidation, p)
		}
	}
	return nil
}

func (e *Executor) applyGrant(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if op.Role == "" {
		return outcome{}, fmt.Errorf("%w: role name required", types.ErrValidation)
	}
	if err := validatePrivileges(op.Privileges); err != nil {
		return outcome{}, err
	}

	now := e.now().UTC()
	if _, ok := doc.Roles[op.Role]; !ok {
		doc.Roles[op.Role] = &types.Role{Name: op.Role, CreatedAt: now, UpdatedAt: now}
	}

	perm, ok := table.Permissions[op.Role]
	if !ok {
		perm = &types.TablePermission{Role: op.Role}
		table.Permissions[op.Role] = perm
	}
	// GrantedAt tracks the most recent grant for the (table, role) pair,
	// so every successful grant is a document change even when the
	// privilege set is already complete.
	perm.GrantedAt = now

	// Union of existing and granted privileges, kept sorted so repeated
	// grants converge on one canonical persisted form.
	for _, p := range op.Privileges {
		if !perm.Has(p) {
			perm.Privileges = append(perm.Privileges, p)
		}
	}
	sort.Slice(perm.Privileges, func(i, j int) bool {
		return perm.Privileges[i] < perm.Privileges[j]
	})
	table.UpdatedAt = now

	return outcome{
		detail: fmt.Sprintf("granted %d privileges to role %q on %q",
			len(op.Privileges), op.Role, op.Table),
		mutated: true,
	}, nil
}

func (e *Executor) applyRevoke(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if op.Role == "" {
		return outcome{}, fmt.Errorf("%w: role name required", types.ErrValidation)
	}
	if err := validatePrivileges(op.Privileges); err != nil {
		return outcome{}, err
	}

	perm, ok := table.Permissions[op.Role]
	if !ok {
		// Revoking from a role with no entry is a no-op, not an error.
		return outcome{
			detail: fmt.Sprintf("role %q holds no privileges on %q", op.Role, op.Table),
		}, nil
	}

	revoke := make(map[types.Privilege]bool, len(op.Privileges))
	for _, p := range op.Privileges {
		revoke[p] = true
	}
	kept := perm.Privileges[:0]
	removed := 0
	for _, p := range perm.Privileges {
		if revoke[p] {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	perm.Privileges = kept
	if len(perm.Privileges) == 0 {
		delete(table.Permissions, op.Role)
	}
	if removed > 0 {
		table.UpdatedAt = e.now().UTC()
	}

	return outcome{
		detail: fmt.Sprintf("revoked %d privileges from role %q on %q",
			removed, op.Role, op.Table),
		mutated: removed > 0,
	}, nil
}
