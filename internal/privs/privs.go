// Package privs holds the privileged, process-global operations: seccomp
// filters, chroot and uid/gid reduction. None of it is safe to call from
// concurrent goroutines.
package privs

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrPrivilege is wrapped by every failed or incomplete privilege drop.
var ErrPrivilege = errors.New("privilege drop")

// syscall.Setgroups applies to all threads of the process, unlike the raw
// x/sys/unix setgroups. Setresgid and Setresuid in x/sys delegate to syscall.
var (
	setgroups = syscall.Setgroups
	setresgid = unix.Setresgid
	setresuid = unix.Setresuid
	current   = Current
)

// DropTo clears the supplementary groups, then sets all gids, then all uids.
// Group changes need the privilege the uid change gives up, so the order is
// fixed. Any failure leaves the process in an unknown state and must be
// treated as fatal.
func DropTo(uid, gid int) error {
	if err := setgroups([]int{}); err != nil {
		return fmt.Errorf("%w: setgroups: %w", ErrPrivilege, err)
	}
	if err := setresgid(gid, gid, gid); err != nil {
		return fmt.Errorf("%w: setresgid %d: %w", ErrPrivilege, gid, err)
	}
	if err := setresuid(uid, uid, uid); err != nil {
		return fmt.Errorf("%w: setresuid %d: %w", ErrPrivilege, uid, err)
	}
	return verifyDropped(uid, gid)
}

func verifyDropped(uid, gid int) error {
	id, err := current()
	if err != nil {
		return fmt.Errorf("%w: verify: %w", ErrPrivilege, err)
	}
	if id.UID != uid || id.EUID != uid || id.SUID != uid {
		return fmt.Errorf("%w: uid still %s", ErrPrivilege, id)
	}
	if id.GID != gid || id.EGID != gid || id.SGID != gid {
		return fmt.Errorf("%w: gid still %s", ErrPrivilege, id)
	}
	if len(id.Groups) != 0 {
		return fmt.Errorf("%w: supplementary groups remain: %v", ErrPrivilege, id.Groups)
	}
	return nil
}
