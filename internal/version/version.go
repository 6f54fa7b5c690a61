package version

// AppName is shown in help output and logs.
const AppName = "Cerebro"

// Version is overridden at build time with -ldflags "-X cerebro/internal/version.Version=...".
var Version = "dev"
