// Package syscalls maps symbolic syscall names to the numbers of the target
// architecture. The table is selected at build time; a target without a table
// does not compile.
package syscalls

import "fmt"

// Name is a symbolic syscall identifier.
type Name int

const (
	Read Name = iota
	Write
	Open
	Close
	Stat
	Fstat
	Lstat
	Poll
	Ppoll
	Lseek
	Mmap
	Mprotect
	Munmap
	Brk
	RtSigprocmask
	RtSigaction
	RtSigreturn
	Ioctl
	Socket
	Connect
	Sendto
	Recvfrom
	Sendmsg
	Recvmsg
	Bind
	Getsockname
	Setsockopt
	Getsockopt
	Clone
	Clone3
	Uname
	Fcntl
	Getdents
	Getdents64
	Chdir
	Getuid
	Getgid
	Geteuid
	Getegid
	Setresuid
	Setresgid
	Getgroups
	Setgroups
	Getresuid
	Getresgid
	Sigaltstack
	Prctl
	Chroot
	Futex
	SchedGetaffinity
	SchedYield
	ClockGetres
	ClockGettime
	Nanosleep
	Exit
	ExitGroup
	SetRobustList
	Openat
	Newfstatat
	Seccomp
	Getrandom
	Madvise
	Tgkill
	Getpid
	Gettid
	EpollCreate1
	EpollCtl
	EpollPwait
	Eventfd2
	RestartSyscall
	Rseq

	numCommon
)

type entry struct {
	name string
	nr   uintptr
}

func init() {
	for n := Name(0); n < numNames; n++ {
		if table[n].name == "" {
			panic(fmt.Sprintf("syscalls: no %s entry for name %d", arch, int(n)))
		}
	}
}

// Resolve returns the syscall number of n on the build architecture.
func Resolve(n Name) uintptr {
	return table[n].nr
}

func (n Name) String() string {
	if n < 0 || n >= numNames {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return table[n].name
}

// All returns every name known to the build architecture.
func All() []Name {
	names := make([]Name, numNames)
	for i := range names {
		names[i] = Name(i)
	}
	return names
}

// Arch is the architecture the table was built for, in GOARCH spelling.
const Arch = arch
