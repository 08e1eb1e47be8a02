package syscalls

var kernelAliases = map[Name]string{}
