package source

import (
	"context"
	"fmt"
	"log"

	"github.com/kenshaw/evdev"
)

// Keypad implements Source for an evdev input device: pressing a digit key
// issues that command.
type Keypad struct {
	device *evdev.Evdev
}

// NewKeypad opens the given input device (e.g. /dev/input/event0).
func NewKeypad(device string) (*Keypad, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}

	log.Printf("Keypad device: %s", dev.Name())

	return &Keypad{device: dev}, nil
}

// Read implements Source.Read for keypads.
func (k *Keypad) Read(ctx context.Context) (byte, error) {
	ch := k.device.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case event := <-ch:
			if event == nil {
				return 0, fmt.Errorf("keypad device closed")
			}

			if _, ok := event.Type.(evdev.KeyType); !ok {
				continue
			}
			if event.Value != 1 { // key press only, not release or repeat
				continue
			}

			s := evdev.KeyType(event.Code).String()
			if len(s) == 1 && IsCommand(s[0]) {
				return s[0], nil
			}
		}
	}
}

// Close implements Source.Close.
func (k *Keypad) Close() error {
	if k.device == nil {
		return nil
	}
	return k.device.Close()
}
