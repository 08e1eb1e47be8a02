package syscalls

import "golang.org/x/sys/unix"

const arch = "arm64"

const numNames = numCommon

// asm-generic __NR3264_fstatat
const sysNewfstatat = 79

// arm64 only has the *at and p* variants of the legacy calls: open, stat,
// lstat, poll and getdents resolve to openat, newfstatat, ppoll and
// getdents64.
var table = [numNames]entry{
	Read:             {"read", unix.SYS_READ},
	Write:            {"write", unix.SYS_WRITE},
	Open:             {"open", unix.SYS_OPENAT},
	Close:            {"close", unix.SYS_CLOSE},
	Stat:             {"stat", sysNewfstatat},
	Fstat:            {"fstat", unix.SYS_FSTAT},
	Lstat:            {"lstat", sysNewfstatat},
	Poll:             {"poll", unix.SYS_PPOLL},
	Ppoll:            {"ppoll", unix.SYS_PPOLL},
	Lseek:            {"lseek", unix.SYS_LSEEK},
	Mmap:             {"mmap", unix.SYS_MMAP},
	Mprotect:         {"mprotect", unix.SYS_MPROTECT},
	Munmap:           {"munmap", unix.SYS_MUNMAP},
	Brk:              {"brk", unix.SYS_BRK},
	RtSigprocmask:    {"rt_sigprocmask", unix.SYS_RT_SIGPROCMASK},
	RtSigaction:      {"rt_sigaction", unix.SYS_RT_SIGACTION},
	RtSigreturn:      {"rt_sigreturn", unix.SYS_RT_SIGRETURN},
	Ioctl:            {"ioctl", unix.SYS_IOCTL},
	Socket:           {"socket", unix.SYS_SOCKET},
	Connect:          {"connect", unix.SYS_CONNECT},
	Sendto:           {"sendto", unix.SYS_SENDTO},
	Recvfrom:         {"recvfrom", unix.SYS_RECVFROM},
	Sendmsg:          {"sendmsg", unix.SYS_SENDMSG},
	Recvmsg:          {"recvmsg", unix.SYS_RECVMSG},
	Bind:             {"bind", unix.SYS_BIND},
	Getsockname:      {"getsockname", unix.SYS_GETSOCKNAME},
	Setsockopt:       {"setsockopt", unix.SYS_SETSOCKOPT},
	Getsockopt:       {"getsockopt", unix.SYS_GETSOCKOPT},
	Clone:            {"clone", unix.SYS_CLONE},
	Clone3:           {"clone3", unix.SYS_CLONE3},
	Uname:            {"uname", unix.SYS_UNAME},
	Fcntl:            {"fcntl", unix.SYS_FCNTL},
	Getdents:         {"getdents", unix.SYS_GETDENTS64},
	Getdents64:       {"getdents64", unix.SYS_GETDENTS64},
	Chdir:            {"chdir", unix.SYS_CHDIR},
	Getuid:           {"getuid", unix.SYS_GETUID},
	Getgid:           {"getgid", unix.SYS_GETGID},
	Geteuid:          {"geteuid", unix.SYS_GETEUID},
	Getegid:          {"getegid", unix.SYS_GETEGID},
	Setresuid:        {"setresuid", unix.SYS_SETRESUID},
	Setresgid:        {"setresgid", unix.SYS_SETRESGID},
	Getgroups:        {"getgroups", unix.SYS_GETGROUPS},
	Setgroups:        {"setgroups", unix.SYS_SETGROUPS},
	Getresuid:        {"getresuid", unix.SYS_GETRESUID},
	Getresgid:        {"getresgid", unix.SYS_GETRESGID},
	Sigaltstack:      {"sigaltstack", unix.SYS_SIGALTSTACK},
	Prctl:            {"prctl", unix.SYS_PRCTL},
	Chroot:           {"chroot", unix.SYS_CHROOT},
	Futex:            {"futex", unix.SYS_FUTEX},
	SchedGetaffinity: {"sched_getaffinity", unix.SYS_SCHED_GETAFFINITY},
	SchedYield:       {"sched_yield", unix.SYS_SCHED_YIELD},
	ClockGetres:      {"clock_getres", unix.SYS_CLOCK_GETRES},
	ClockGettime:     {"clock_gettime", unix.SYS_CLOCK_GETTIME},
	Nanosleep:        {"nanosleep", unix.SYS_NANOSLEEP},
	Exit:             {"exit", unix.SYS_EXIT},
	ExitGroup:        {"exit_group", unix.SYS_EXIT_GROUP},
	SetRobustList:    {"set_robust_list", unix.SYS_SET_ROBUST_LIST},
	Openat:           {"openat", unix.SYS_OPENAT},
	Newfstatat:       {"newfstatat", sysNewfstatat},
	Seccomp:          {"seccomp", unix.SYS_SECCOMP},
	Getrandom:        {"getrandom", unix.SYS_GETRANDOM},
	Madvise:          {"madvise", unix.SYS_MADVISE},
	Tgkill:           {"tgkill", unix.SYS_TGKILL},
	Getpid:           {"getpid", unix.SYS_GETPID},
	Gettid:           {"gettid", unix.SYS_GETTID},
	EpollCreate1:     {"epoll_create1", unix.SYS_EPOLL_CREATE1},
	EpollCtl:         {"epoll_ctl", unix.SYS_EPOLL_CTL},
	EpollPwait:       {"epoll_pwait", unix.SYS_EPOLL_PWAIT},
	Eventfd2:         {"eventfd2", unix.SYS_EVENTFD2},
	RestartSyscall:   {"restart_syscall", unix.SYS_RESTART_SYSCALL},
	Rseq:             {"rseq", unix.SYS_RSEQ},
}
