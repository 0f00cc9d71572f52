package instance

import (
	"os"
	"strings"
)

// GetID names the running process in logs: the platform dyno, else the host
// name, else "local".
func GetID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}

// ListenAddr returns the address the HTTP server binds to. A platform
// assigned PORT wins over the configured port.
func ListenAddr(configured string) string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = strings.TrimPrefix(strings.TrimSpace(configured), ":")
	}
	return ":" + port
}
