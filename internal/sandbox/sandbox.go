// Package sandbox activates the two hardening stages of the process.
//
// Stage 1 installs a broad seccomp allow-list and must run before any
// untrusted input, including the config file, is parsed. Stage 2 loads the
// config, chroots and drops privileges when running as root, and installs a
// narrow allow-list. Both must run before the program starts goroutines of
// its own; the Sandbox mutex is only a barrier against accidental reentry.
package sandbox

import (
	"errors"
	"fmt"
	"sync"

	"github.com/redpwn/stagejail/internal/config"
	"github.com/redpwn/stagejail/internal/privs"
	"github.com/redpwn/stagejail/internal/syscalls"
	"github.com/sirupsen/logrus"
)

var (
	ErrFilter      = privs.ErrFilter
	ErrChroot      = privs.ErrChroot
	ErrPrivilege   = privs.ErrPrivilege
	ErrConfig      = config.ErrConfig
	ErrInvalidUser = errors.New("invalid user")
	// ErrStage is returned for activations out of order, repeated, or after
	// a failure.
	ErrStage = errors.New("sandbox stage")
)

type State int

const (
	Unsandboxed State = iota
	Stage1Active
	ConfigResolved
	PrivilegeDropped
	Stage2Active
	Failed
)

func (s State) String() string {
	switch s {
	case Unsandboxed:
		return "unsandboxed"
	case Stage1Active:
		return "stage1-active"
	case ConfigResolved:
		return "config-resolved"
	case PrivilegeDropped:
		return "privilege-dropped"
	case Stage2Active:
		return "stage2-active"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ConfigSource finds and loads the config file.
type ConfigSource interface {
	Find() (string, bool, error)
	Load(path string) (*config.Config, error)
}

// system is the process-global privileged state the stages change.
type system interface {
	IsRoot() bool
	Chroot(path string) error
	DropTo(uid, gid int) error
	Identity() string
	Install(names []syscalls.Name) error
}

type hostSystem struct {
	log logrus.FieldLogger
}

func (hostSystem) IsRoot() bool              { return privs.IsRoot() }
func (hostSystem) Chroot(path string) error  { return privs.Chroot(path) }
func (hostSystem) DropTo(uid, gid int) error { return privs.DropTo(uid, gid) }
func (hostSystem) Identity() string          { return privs.Describe() }

func (h hostSystem) Install(names []syscalls.Name) error {
	return privs.InstallAllowList(h.log, names)
}

type Sandbox struct {
	// Source is consulted by stage 2. Nil means config.NewSource.
	Source ConfigSource
	Users  UserDB
	Log    logrus.FieldLogger

	sys   system
	mu    sync.Mutex
	state State
	cfg   *config.Config
}

// New returns a sandbox in the Unsandboxed state.
func New(source ConfigSource, users UserDB, log logrus.FieldLogger) *Sandbox {
	if users == nil {
		users = OSUsers{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sandbox{Source: source, Users: users, Log: log, sys: hostSystem{log: log}}
}

func (s *Sandbox) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config is the config stage 2 applied, nil before that.
func (s *Sandbox) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// ActivateStage1 installs the broad filter. Call it once, as early as
// possible.
func (s *Sandbox) ActivateStage1() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Unsandboxed {
		return fmt.Errorf("%w: stage 1 requested in state %s", ErrStage, s.state)
	}
	if err := s.sys.Install(Stage1Policy()); err != nil {
		s.state = Failed
		return fmt.Errorf("stage 1: %w", err)
	}
	s.state = Stage1Active
	s.Log.Info("stage 1/2 is active")
	return nil
}

// ActivateStage2 loads the config, applies the privilege drop and installs the
// narrow filter. Syscalls outside the stage 2 allow-list kill the process
// after it returns.
func (s *Sandbox) ActivateStage2() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Stage1Active {
		return fmt.Errorf("%w: stage 2 requested in state %s", ErrStage, s.state)
	}
	if err := s.stage2(); err != nil {
		s.state = Failed
		return fmt.Errorf("stage 2: %w", err)
	}
	return nil
}

func (s *Sandbox) stage2() error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	s.Log.Debugf("got config: %+v", cfg.Sandbox)
	acct, err := s.resolveUser(cfg.Sandbox.User)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.state = ConfigResolved

	if err := s.apply(cfg.Sandbox, acct); err != nil {
		return err
	}
	s.state = PrivilegeDropped

	if err := s.sys.Install(Stage2Policy()); err != nil {
		return err
	}
	s.state = Stage2Active
	s.Log.Info("stage 2/2 is active")
	return nil
}

func (s *Sandbox) loadConfig() (*config.Config, error) {
	source := s.Source
	if source == nil {
		src, err := config.NewSource()
		if err != nil {
			return nil, err
		}
		source = src
	}
	path, ok, err := source.Find()
	if err != nil {
		return nil, err
	}
	if !ok {
		s.Log.Warn("couldn't find config")
		cfg := config.Default()
		if err := config.ApplyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	s.Log.Infof("loading config from %s", path)
	return source.Load(path)
}

type account struct {
	name     string
	uid, gid int
}

func (s *Sandbox) resolveUser(name string) (*account, error) {
	if name == "" {
		return nil, nil
	}
	uid, gid, err := s.Users.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidUser, name, err)
	}
	return &account{name: name, uid: uid, gid: gid}, nil
}

func (s *Sandbox) apply(cfg config.Sandbox, acct *account) error {
	root := s.sys.IsRoot()

	if cfg.Chroot != "" {
		if root {
			s.Log.Infof("starting chroot: %q", cfg.Chroot)
			if err := s.sys.Chroot(cfg.Chroot); err != nil {
				return err
			}
			s.Log.Info("successfully chrooted")
		} else {
			s.Log.Warnf("not root, skipping chroot to %q", cfg.Chroot)
		}
	}

	switch {
	case root && acct != nil:
		s.Log.Infof("id: %s", s.sys.Identity())
		s.Log.Infof("setting uid to %d (%s)", acct.uid, acct.name)
		if err := s.sys.DropTo(acct.uid, acct.gid); err != nil {
			return err
		}
		s.Log.Infof("id: %s", s.sys.Identity())
	case root:
		s.Log.Warn("executing as root!")
	default:
		s.Log.Infof("can't drop privileges, executing as %s", s.sys.Identity())
	}
	return nil
}

// IdentityString describes the current process credentials for logs.
func (s *Sandbox) IdentityString() string {
	return s.sys.Identity()
}

var std = New(nil, OSUsers{}, nil)

// ActivateStage1 activates stage 1 of the process-wide default sandbox.
func ActivateStage1() error { return std.ActivateStage1() }

// ActivateStage2 activates stage 2 of the process-wide default sandbox.
func ActivateStage2() error { return std.ActivateStage2() }

func IdentityString() string { return std.IdentityString() }
