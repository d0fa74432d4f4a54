package version

// Version is the released tool version. Config files may constrain it via "requires".
var Version = "1.2.0"
