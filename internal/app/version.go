package app

const ServiceName = "pi-sosmed"

// Set via -ldflags at build time:
//
//	go build -ldflags="-X 'github.com/haifazahra-ui/pi-sosmed/internal/app.Version=1.0.0'"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
