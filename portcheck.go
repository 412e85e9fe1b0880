package main

import (
	"fmt"
	"net"
	"time"

	"github.com/pkg/errors"
	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// isPortInUse checks if something on this host accepts connections on port
func isPortInUse(port int) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), 2*time.Second)
	if err == nil {
		conn.Close()
		return true
	}
	return false
}

// portHolder describes the process listening on port, or returns "" when
// none is found or the connection table cannot be read.
func portHolder(port int) string {
	conns, err := gnet.Connections("tcp")
	if err != nil {
		return ""
	}

	for _, c := range conns {
		if c.Status != "LISTEN" || int(c.Laddr.Port) != port {
			continue
		}
		if c.Pid <= 0 {
			return "an unknown process"
		}

		name := "unknown"
		if p, err := process.NewProcess(c.Pid); err == nil {
			if n, err := p.Name(); err == nil {
				name = n
			}
		}
		return fmt.Sprintf("%s (PID: %d)", name, c.Pid)
	}
	return ""
}

// bindError wraps a listen failure, naming the current port holder when known
func bindError(port int, err error) error {
	if port == 0 || !isPortInUse(port) {
		return errors.Wrapf(err, "unable to listen on port %d", port)
	}
	if holder := portHolder(port); holder != "" {
		return errors.Wrapf(err, "unable to listen on port %d, already held by %s", port, holder)
	}
	return errors.Wrapf(err, "unable to listen on port %d, already in use", port)
}
