package privs

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrIdentity is wrapped when the process identity cannot be read completely.
var ErrIdentity = errors.New("identity")

// maxGroups bounds the supplementary group list. A longer list is reported as
// an error rather than truncated.
const maxGroups = 128

var getgroups = unix.Getgroups

// Identity is a point-in-time snapshot of the process credentials.
type Identity struct {
	UID, EUID, SUID int
	GID, EGID, SGID int
	Groups          []int
}

// Current reads the credentials from the kernel.
func Current() (Identity, error) {
	var id Identity
	id.UID, id.EUID, id.SUID = unix.Getresuid()
	id.GID, id.EGID, id.SGID = unix.Getresgid()
	groups, err := getgroups()
	if err != nil {
		return id, fmt.Errorf("%w: getgroups: %w", ErrIdentity, err)
	}
	if len(groups) > maxGroups {
		return id, fmt.Errorf("%w: %d supplementary groups, more than %d", ErrIdentity, len(groups), maxGroups)
	}
	id.Groups = groups
	return id, nil
}

func (id Identity) String() string {
	return fmt.Sprintf("uid=%d euid=%d suid=%d gid=%d egid=%d sgid=%d groups=%v",
		id.UID, id.EUID, id.SUID, id.GID, id.EGID, id.SGID, id.Groups)
}

// Describe renders the current identity for logs.
func Describe() string {
	id, err := Current()
	if err != nil {
		return fmt.Sprintf("identity unavailable: %s", err)
	}
	return id.String()
}

// IsRoot reports whether the real uid is 0.
func IsRoot() bool {
	return unix.Getuid() == 0
}
