package privs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

var (
	ErrChroot         = errors.New("chroot")
	ErrChrootMissing  = fmt.Errorf("%w: target does not exist", ErrChroot)
	ErrChrootNotDir   = fmt.Errorf("%w: target is no directory", ErrChroot)
	ErrChrootOwner    = fmt.Errorf("%w: target isn't owned by root", ErrChroot)
	ErrChrootWritable = fmt.Errorf("%w: target is writable by group or world", ErrChroot)
)

var (
	chroot = unix.Chroot
	chdir  = unix.Chdir
)

// ValidateChroot checks that path is a safe chroot target: an existing
// directory owned by root and not writable by group or others.
func ValidateChroot(path string) error {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrChrootMissing)
	}
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrChroot, path, err)
	}
	if err := checkChrootInfo(fi); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func checkChrootInfo(fi fs.FileInfo) error {
	if !fi.IsDir() {
		return ErrChrootNotDir
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fmt.Errorf("%w: no owner information", ErrChroot)
	}
	if st.Uid != 0 {
		return ErrChrootOwner
	}
	if fi.Mode().Perm()&0o022 != 0 {
		return ErrChrootWritable
	}
	return nil
}

// Chroot validates path, changes the root to it and moves the working
// directory inside. Without the chdir the old working directory would stay
// reachable.
func Chroot(path string) error {
	if err := ValidateChroot(path); err != nil {
		return err
	}
	if err := chroot(path); err != nil {
		return fmt.Errorf("%w: chroot %s: %w", ErrChroot, path, err)
	}
	if err := chdir("/"); err != nil {
		return fmt.Errorf("%w: chdir /: %w", ErrChroot, err)
	}
	return nil
}
