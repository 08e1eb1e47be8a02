package syscalls

var kernelAliases = map[Name]string{
	Open:     "openat",
	Stat:     "newfstatat",
	Lstat:    "newfstatat",
	Poll:     "ppoll",
	Getdents: "getdents64",
}
