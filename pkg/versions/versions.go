package versions

// Version holds the groundwork version. Set at build time via ldflags.
var Version = "v0.0.0-unknown"
