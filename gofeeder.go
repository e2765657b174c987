package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"gofeeder/button"
	"gofeeder/indicator"
	"gofeeder/link"
	"gofeeder/mqtt"
	"gofeeder/pulse"
	"gofeeder/server"
	"gofeeder/servo"
	"gofeeder/source"
)

var myBuild string

// App holds the daemon state and dependencies.
type App struct {
	cfg       *Config
	servo     *servo.Servo
	srv       *server.Server
	mqtt      *mqtt.Client
	indicator indicator.Indicator
	button    *button.Button
	source    source.Source
	faulted   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func main() {
	fmt.Printf("gofeeder build %s\n", myBuild)

	feedflag := flag.String("feed", "", "Dispense once with the given command digit and exit")
	cfgfile := flag.String("cfg", "gofeeder.cfg", "Config file")
	flag.Parse()

	cfg, err := LoadConfig(*cfgfile)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	// Initialize status LEDs
	app.indicator, err = indicator.New(cfg.Indicator)
	if err != nil {
		log.Fatalf("Init indicator: %v", err)
	}
	app.indicator.LinkLost() // Start in link lost state

	// Initialize the pulse generator; without it the device cannot feed.
	gen, err := pulse.New(cfg.Pulse)
	if err != nil {
		log.Fatalf("Init pulse generator: %v", err)
	}

	// Initialize the servo; the horn is homed here.
	app.servo, err = servo.New(gen, cfg.Servo)
	if err != nil {
		log.Fatalf("Init servo: %v", err)
	}

	// Handle one-shot feed flag
	if *feedflag != "" {
		app.handleCommand((*feedflag)[0], os.Stdout)
		app.servo.Close()
		app.indicator.Release()
		return
	}

	// Initialize feed button if configured
	app.button, err = button.New(cfg.Button, button.Handlers{
		OnPress: app.onButtonPress,
	})
	if err != nil {
		log.Fatalf("Init button: %v", err)
	}
	if app.button != nil {
		log.Printf("Feed button on pin %d (command %s)", cfg.Button.Pin, cfg.DefaultCommand)
	}

	// Initialize auxiliary command source if configured
	app.source, err = source.New(cfg.Source)
	if err != nil {
		log.Fatalf("Init command source: %v", err)
	}

	// Initialize MQTT
	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnConnect:    app.onMQTTConnect,
		OnDisconnect: app.onMQTTDisconnect,
		OnMessage:    app.onMQTTMessage,
	})
	if err != nil {
		log.Fatalf("Init MQTT: %v", err)
	}

	// Bounded wait for an address; continue standalone on timeout.
	if addr, err := link.WaitReady(ctx, cfg.LinkWait()); err != nil {
		log.Printf("Link not ready (%v), continuing in standalone mode", err)
	} else {
		log.Printf("Link ready, address %s", addr)
	}

	// Bind the command listener; a bind failure is fatal.
	app.srv, err = server.New(cfg.Server, func(cmd byte, conn net.Conn) {
		app.handleCommand(cmd, conn)
	})
	if err != nil {
		log.Fatalf("Init command listener: %v", err)
	}

	// Start background goroutines
	go func() {
		if err := app.srv.Serve(); err != nil {
			log.Printf("Serve: %v", err)
		}
	}()
	go func() {
		if err := app.mqtt.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()
	if app.source != nil {
		go app.sourceListener()
	}
	go app.pingSender()

	log.Printf("Feeder ready on port %d, commands '0'-'9'", app.srv.Port())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	cancel()

	// Cleanup
	app.srv.Stop()
	app.mqtt.Disconnect()
	if app.source != nil {
		app.source.Close()
	}
	if app.button != nil {
		app.button.Release()
	}
	app.servo.Close()
	app.indicator.Shutdown()
	app.indicator.Release()

	fmt.Println("Shutdown complete")
}

func (app *App) onButtonPress() {
	log.Printf("Feed button pressed")
	app.handleCommand(app.cfg.DefaultCommandByte(), io.Discard)
}

// sourceListener forwards digits from the auxiliary command source to the
// dispatcher. Responses go to the log only.
func (app *App) sourceListener() {
	for {
		cmd, err := app.source.Read(app.ctx)
		if err != nil {
			if app.ctx.Err() != nil {
				return
			}
			log.Printf("Command source: %v", err)
			time.Sleep(time.Second)
			continue
		}
		app.handleCommand(cmd, io.Discard)
	}
}

func (app *App) pingSender() {
	ticker := time.NewTicker(120 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			app.mqtt.Publish(statusTopic(app.cfg.ClientID, "ping"), `{"status":"ok"}`)
		}
	}
}

func (app *App) onMQTTConnect() {
	if err := app.mqtt.Subscribe(controlTopic(app.cfg.ClientID, "feed")); err != nil {
		log.Printf("Subscribe: %v", err)
	}
	if !app.faulted.Load() {
		app.indicator.Idle()
	}
}

func (app *App) onMQTTDisconnect() {
	app.indicator.LinkLost()
}

// onMQTTMessage dispatches the first digit of a remote feed payload.
func (app *App) onMQTTMessage(topic string, payload []byte) {
	if topic != controlTopic(app.cfg.ClientID, "feed") {
		return
	}

	for _, b := range payload {
		if source.IsCommand(b) {
			log.Printf("Remote feed command %c", b)
			app.handleCommand(b, io.Discard)
			return
		}
	}
	log.Printf("Remote feed payload %q carried no command digit", payload)
}

func statusTopic(clientID, leaf string) string {
	return fmt.Sprintf("feeder/status/node/%s/%s", clientID, leaf)
}

func controlTopic(clientID, leaf string) string {
	return fmt.Sprintf("feeder/control/node/%s/%s", clientID, leaf)
}
