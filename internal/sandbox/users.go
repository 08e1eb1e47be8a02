package sandbox

import (
	"fmt"
	"os/user"
	"strconv"
)

// UserDB resolves a user name to its uid and primary gid.
type UserDB interface {
	Lookup(name string) (uid, gid int, err error)
}

// OSUsers looks users up in the system user database.
type OSUsers struct{}

func (OSUsers) Lookup(name string) (int, int, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("uid of %s: %w", name, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf("gid of %s: %w", name, err)
	}
	return uid, gid, nil
}
