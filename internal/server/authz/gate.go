// Package authz decides whether a caller may perform an action on a target
// account. Decisions are pure functions of the request context: no store
// access and no shared state.
package authz

import (
	"fmt"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

// Action is an operation guarded by the gate.
type Action int

const (
	PasswordChange Action = iota + 1
	ProfileRead
	ProfileWrite
	StatusRead
	DirectoryList
	DirectorySearch
	StatusChange
)

var actionNames = map[Action]string{
	PasswordChange:  "password_change",
	ProfileRead:     "profile_read",
	ProfileWrite:    "profile_write",
	StatusRead:      "status_read",
	DirectoryList:   "directory_list",
	DirectorySearch: "directory_search",
	StatusChange:    "status_change",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Context describes one request: who is calling, with which role, and which
// account the request targets. Target is zero for directory-wide actions.
type Context struct {
	Caller int64
	Role   models.Role
	Target int64
}

// Decision is the outcome of Decide. Reason is nil when Allowed.
type Decision struct {
	Allowed bool
	Reason  error
}

// Err returns nil for an allowed decision and the denial reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == nil {
		return common.ErrNotAuthorized
	}
	return d.Reason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason error) Decision { return Decision{Reason: reason} }

// Decide applies the rule set:
//   - an unrecognized role is rejected with ErrInvalidRole;
//   - a master may do everything;
//   - a seller may change its password and read or write its own profile
//     and status, and nothing on other accounts;
//   - a seller may never list, search or change statuses.
func Decide(ac Context, action Action) Decision {
	switch ac.Role {
	case models.RoleMaster:
		return allow()
	case models.RoleSeller:
	default:
		return deny(common.ErrInvalidRole)
	}

	switch action {
	case PasswordChange, ProfileRead, ProfileWrite, StatusRead:
		if ac.Caller != 0 && ac.Caller == ac.Target {
			return allow()
		}
		return deny(common.ErrNotAuthorized)
	default:
		return deny(common.ErrNotAuthorized)
	}
}
