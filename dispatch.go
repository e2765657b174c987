package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"gofeeder/server"
	"gofeeder/servo"
)

const respServoNotReady = "ERROR: Servo not initialized\n"

// feedResponse is the acknowledgment line for a completed feed command.
func feedResponse(cmd byte, angle float64, delay time.Duration) string {
	return fmt.Sprintf("OK: Command %c -> Angle %.0f° (auto reset in %s)\n", cmd, angle, delay)
}

// handleCommand turns a command byte into a feed motion and writes the
// textual acknowledgment. It blocks for the full auto-home delay, so the
// caller's command intake stalls until the horn is back home.
func (app *App) handleCommand(cmd byte, conn io.Writer) {
	angle, err := servo.AngleForDigit(cmd)
	if err != nil {
		log.Printf("Dropping command 0x%02x: %v", cmd, err)
		return
	}

	if app.servo == nil || app.faulted.Load() {
		server.SendResponse(conn, respServoNotReady)
		return
	}

	log.Printf("Command %c -> angle %.0f°", cmd, angle)
	app.indicator.Feeding()

	if err := app.servo.SetAngleWithAutoHome(angle, app.cfg.ResetDelay()); err != nil {
		log.Printf("Hardware fault, actuation disabled: %v", err)
		app.faulted.Store(true)
		app.indicator.Fault()
		server.SendResponse(conn, respServoNotReady)
		return
	}

	app.indicator.Idle()

	if _, err := server.SendResponse(conn, feedResponse(cmd, angle, app.cfg.ResetDelay())); err != nil {
		log.Printf("Response: %v", err)
	}

	app.publishFeed(cmd, angle)
}

// publishFeed reports a completed feed on the status topic.
func (app *App) publishFeed(cmd byte, angle float64) {
	if app.mqtt == nil {
		return
	}
	msg := fmt.Sprintf(`{"command":"%c","angle":%.0f}`, cmd, angle)
	app.mqtt.Publish(statusTopic(app.cfg.ClientID, "feed"), msg)
}
