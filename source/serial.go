package source

import (
	"context"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// Serial implements Source for a serial console: any digit byte on the
// line is a feed command, everything else is discarded.
type Serial struct {
	port   *serial.Port
	device string
}

// NewSerial opens a serial command console.
func NewSerial(device string, baud int) (*Serial, error) {
	if baud == 0 {
		baud = 115200
	}

	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Second,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	return &Serial{port: port, device: device}, nil
}

// Read implements Source.Read for serial consoles.
func (s *Serial) Read(ctx context.Context) (byte, error) {
	buf := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		n, err := s.port.Read(buf)
		if err != nil || n == 0 {
			// Timeout or transient failure, poll again.
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if IsCommand(buf[0]) {
			return buf[0], nil
		}
		// Line endings and stray console bytes are dropped.
	}
}

// Close implements Source.Close.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
