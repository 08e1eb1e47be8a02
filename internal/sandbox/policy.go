package sandbox

import "github.com/redpwn/stagejail/internal/syscalls"

var (
	// stage1 must cover everything needed to reach stage 2: config and user
	// database reads, chroot, the uid/gid changes and the second filter load.
	stage1 = []syscalls.Name{
		syscalls.Futex,
		syscalls.Read,
		syscalls.Write,
		syscalls.Open,
		syscalls.Close,
		syscalls.Stat,
		syscalls.Fstat,
		syscalls.Lstat,
		syscalls.Poll,
		syscalls.Lseek,
		syscalls.Mmap,
		syscalls.Mprotect,
		syscalls.Munmap,
		syscalls.Ioctl,
		syscalls.Socket,
		syscalls.Connect,
		syscalls.Sendto,
		syscalls.Recvfrom,
		syscalls.Sendmsg,
		syscalls.Recvmsg,
		syscalls.Bind,
		syscalls.Getsockname,
		syscalls.Setsockopt,
		syscalls.Getsockopt,
		syscalls.Clone,
		syscalls.Uname,
		syscalls.Fcntl,
		syscalls.Getdents,
		syscalls.Chdir,
		syscalls.Getuid,
		syscalls.Getgid,
		syscalls.Geteuid,
		syscalls.Getegid,
		syscalls.Setresuid,
		syscalls.Setresgid,
		syscalls.Getgroups,
		syscalls.Setgroups,
		syscalls.Getresuid,
		syscalls.Getresgid,
		syscalls.Sigaltstack,
		syscalls.Prctl,
		syscalls.Chroot,
		syscalls.SchedGetaffinity,
		syscalls.ClockGetres,
		syscalls.ExitGroup,
		syscalls.SetRobustList,
		syscalls.Openat,
		syscalls.Seccomp,
		syscalls.Getrandom,
	}

	// goStage1 is what a Go program and glibc need on top of stage1 to get
	// there: os.Stat and glibc fstat use newfstatat on every architecture,
	// os.ReadDir uses getdents64 and NSS modules wait with ppoll.
	goStage1 = []syscalls.Name{
		syscalls.Newfstatat,
		syscalls.Getdents64,
		syscalls.Ppoll,
	}

	stage2 = []syscalls.Name{
		syscalls.Futex,
		syscalls.Read,
		syscalls.Write,
		syscalls.Close,
		syscalls.Poll,
		syscalls.Mmap,
		syscalls.Mprotect,
		syscalls.Munmap,
		syscalls.Clone,
		syscalls.Sigaltstack,
		syscalls.SchedGetaffinity,
		syscalls.ExitGroup,
		syscalls.SetRobustList,
	}

	// goRuntime is what the Go runtime and the cgo thread start need
	// regardless of what the program does: signal delivery and return,
	// scheduler sleeps and preemption, GC memory release and the netpoller.
	goRuntime = []syscalls.Name{
		syscalls.RtSigreturn,
		syscalls.RtSigaction,
		syscalls.RtSigprocmask,
		syscalls.SchedYield,
		syscalls.Nanosleep,
		syscalls.ClockGettime,
		syscalls.RestartSyscall,
		syscalls.Madvise,
		syscalls.Brk,
		syscalls.Tgkill,
		syscalls.Getpid,
		syscalls.Gettid,
		syscalls.Exit,
		syscalls.Clone3,
		syscalls.Rseq,
		syscalls.EpollCreate1,
		syscalls.EpollCtl,
		syscalls.EpollPwait,
		syscalls.Eventfd2,
	}
)

func withRuntime(names []syscalls.Name) []syscalls.Name {
	out := make([]syscalls.Name, 0, len(names)+len(goRuntime))
	out = append(out, names...)
	return append(out, goRuntime...)
}

// Stage1Policy is the broad allow-list installed before any input is read.
func Stage1Policy() []syscalls.Name {
	return withRuntime(append(append([]syscalls.Name{}, stage1...), goStage1...))
}

// Stage2Policy is the narrow allow-list installed after the privilege drop.
func Stage2Policy() []syscalls.Name {
	return withRuntime(stage2)
}
