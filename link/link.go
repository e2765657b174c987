// Package link reports when the device has a usable network address.
// Bringing the link up (WiFi supplicant, DHCP) is the OS's job; the feeder
// only waits for the result.
package link

import (
	"context"
	"errors"
	"net"
	"time"
)

var ErrTimeout = errors.New("link: no address before deadline")

const pollInterval = 500 * time.Millisecond

// Address returns the device's first global unicast IPv4 address, or ""
// while the link is down.
func Address() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		if ip := usableIP(a); ip != "" {
			return ip
		}
	}
	return ""
}

func usableIP(addr net.Addr) string {
	ipnet, ok := addr.(*net.IPNet)
	if !ok {
		return ""
	}
	ip := ipnet.IP
	if ip.To4() == nil || !ip.IsGlobalUnicast() {
		return ""
	}
	return ip.String()
}

// WaitReady blocks until the link has an address, the timeout elapses, or
// ctx is cancelled. On timeout it returns ErrTimeout; the caller decides
// whether to continue in standalone mode.
func WaitReady(ctx context.Context, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		if ip := Address(); ip != "" {
			return ip, nil
		}
		if time.Now().After(deadline) {
			return "", ErrTimeout
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
