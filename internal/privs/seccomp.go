package privs

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/redpwn/stagejail/internal/syscalls"
	seccomp "github.com/seccomp/libseccomp-golang"
	"github.com/sirupsen/logrus"
)

// ErrFilter is wrapped by every seccomp filter failure.
var ErrFilter = errors.New("seccomp filter")

// builder is the part of *seccomp.ScmpFilter a Filter drives.
type builder interface {
	AddRule(call seccomp.ScmpSyscall, action seccomp.ScmpAction) error
	SetTsync(state bool) error
	Load() error
	Release()
}

var newBuilder = func() (builder, error) {
	arch, err := seccomp.GetNativeArch()
	if err != nil {
		return nil, err
	}
	if arch.String() != runtime.GOARCH {
		return nil, fmt.Errorf("native arch %s is not %s", arch, runtime.GOARCH)
	}
	return seccomp.NewFilter(seccomp.ActKillProcess)
}

// Filter is a default-deny seccomp filter under construction. Syscalls not
// allowed before Install kill the process once installed.
type Filter struct {
	b         builder
	log       logrus.FieldLogger
	allowed   map[uintptr]bool
	installed bool
}

// NewFilter allocates a filter that logs rules to log, or to the standard
// logger when log is nil. The caller owns it and must Release it; WithFilter
// does that for you.
func NewFilter(log logrus.FieldLogger) (*Filter, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	b, err := newBuilder()
	if err != nil {
		return nil, fmt.Errorf("%w: init: %w", ErrFilter, err)
	}
	f := &Filter{b: b, log: log, allowed: make(map[uintptr]bool)}
	// the Go runtime runs on many threads, all of them need the filter
	if err := b.SetTsync(true); err != nil {
		f.Release()
		return nil, fmt.Errorf("%w: tsync: %w", ErrFilter, err)
	}
	return f, nil
}

// Allow permits a syscall unconditionally.
func (f *Filter) Allow(name syscalls.Name) error {
	if f.b == nil {
		return fmt.Errorf("%w: allow %s: filter released", ErrFilter, name)
	}
	nr := syscalls.Resolve(name)
	if f.allowed[nr] {
		f.log.Debugf("seccomp: %s (%d) already allowed", name, nr)
		return nil
	}
	f.log.Debugf("seccomp: allowing syscall=%s", name)
	if err := f.b.AddRule(seccomp.ScmpSyscall(nr), seccomp.ActAllow); err != nil {
		return fmt.Errorf("%w: allow %s: %w", ErrFilter, name, err)
	}
	f.allowed[nr] = true
	return nil
}

// Install loads the filter into the kernel. It cannot be undone; a later
// filter can only narrow it.
func (f *Filter) Install() error {
	if f.b == nil {
		return fmt.Errorf("%w: load: filter released", ErrFilter)
	}
	if f.installed {
		return fmt.Errorf("%w: load: already installed", ErrFilter)
	}
	if err := f.b.Load(); err != nil {
		return fmt.Errorf("%w: load: %w", ErrFilter, err)
	}
	f.installed = true
	return nil
}

// Release frees the native filter context. Safe to call more than once.
func (f *Filter) Release() {
	if f.b == nil {
		return
	}
	f.b.Release()
	f.b = nil
}

// WithFilter creates a filter, passes it to fn and releases it on every path.
func WithFilter(log logrus.FieldLogger, fn func(*Filter) error) error {
	f, err := NewFilter(log)
	if err != nil {
		return err
	}
	defer f.Release()
	return fn(f)
}

// InstallAllowList installs a filter allowing exactly names.
func InstallAllowList(log logrus.FieldLogger, names []syscalls.Name) error {
	return WithFilter(log, func(f *Filter) error {
		for _, name := range names {
			if err := f.Allow(name); err != nil {
				return err
			}
		}
		return f.Install()
	})
}
