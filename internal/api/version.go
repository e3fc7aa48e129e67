package api

import "net/http"

// Version information - these will be set at build time via ldflags
var (
	EngineVersion = "dev"
	GitCommit     = "unknown"
	BuildTime     = "unknown"
)

// GetVersionInfo returns the current version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
	}
}

// handleVersion returns the build's version information
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}
