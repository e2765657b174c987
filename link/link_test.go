package link

import (
	"context"
	"net"
	"testing"
)

func TestUsableIP(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{
			name: "private ipv4",
			addr: &net.IPNet{IP: net.IPv4(192, 168, 1, 40), Mask: net.CIDRMask(24, 32)},
			want: "192.168.1.40",
		},
		{
			name: "loopback",
			addr: &net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)},
			want: "",
		},
		{
			name: "link local",
			addr: &net.IPNet{IP: net.IPv4(169, 254, 10, 2), Mask: net.CIDRMask(16, 32)},
			want: "",
		},
		{
			name: "ipv6",
			addr: &net.IPNet{IP: net.ParseIP("2001:db8::1"), Mask: net.CIDRMask(64, 128)},
			want: "",
		},
		{
			name: "not an ipnet",
			addr: &net.TCPAddr{IP: net.IPv4(192, 168, 1, 40), Port: 80},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usableIP(tt.addr); got != tt.want {
				t.Errorf("usableIP(%v) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}

func TestWaitReadyBounded(t *testing.T) {
	// Either the host has an address already or the zero timeout expires;
	// WaitReady must return promptly in both cases.
	addr, err := WaitReady(context.Background(), 0)
	if err == nil {
		if addr == "" {
			t.Error("WaitReady returned no error and no address")
		}
	} else if err != ErrTimeout {
		t.Errorf("WaitReady error = %v, want ErrTimeout", err)
	}
}
