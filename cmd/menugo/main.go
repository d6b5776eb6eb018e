package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/cjeanneret/MenuGo/internal/config"
	"github.com/cjeanneret/MenuGo/internal/debug"
	"github.com/cjeanneret/MenuGo/internal/hw/button"
	"github.com/cjeanneret/MenuGo/internal/hw/encoder"
	"github.com/cjeanneret/MenuGo/internal/hw/gpio"
	"github.com/cjeanneret/MenuGo/internal/logic/controller"
	"github.com/cjeanneret/MenuGo/internal/logic/menu"
	"github.com/cjeanneret/MenuGo/internal/logic/nav"
	"github.com/cjeanneret/MenuGo/internal/web"
)

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080}
	flag.Var(webPort, "web", "start web view on port; -web= for default 8080, -web 8980 for custom port")
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	debugLevel := flag.Int("debug", -1, "override debug level (0-4); -1 uses config value")
	backend := flag.String("gpio", "", "override gpio backend (mock, rpio, gpiocdev)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// Validate and apply CLI overrides (-1/"" mean "use config default")
	if err := validateCLIOverrides(*debugLevel, *backend); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}
	applyOverrides(cfg, *debugLevel, *backend)

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.Value("GPIO backend", cfg.GPIO.Backend)

	// Initialize GPIO driver
	gpioDriver, err := gpio.NewDriver(cfg.GPIO.Backend, cfg.GPIO.Chip)
	if err != nil {
		log.Fatalf("init GPIO failed: %v", err)
	}
	defer func() {
		if err := gpioDriver.Close(); err != nil {
			log.Printf("closing GPIO driver failed: %v", err)
		}
	}()

	// Initialize inputs
	enc := encoder.New(gpioDriver, encoder.Config{
		PinA: cfg.Encoder.PinA,
		PinB: cfg.Encoder.PinB,
	})
	debug.PrintStruct("Encoder config", cfg.Encoder)
	btn := button.New(gpioDriver, button.Config{
		Pin:           cfg.Button.Pin,
		DebounceDelay: cfg.DebounceDelay(),
	})
	debug.PrintStruct("Button config", cfg.Button)

	// Build menu model and navigation machine
	model, err := menu.New(menu.Config{
		RootCount:  cfg.Menu.RootCount,
		ChildCount: cfg.Menu.ChildCount,
		RootLabels: cfg.Menu.RootLabels,
		ChildLabel: cfg.Menu.ChildLabel,
	})
	if err != nil {
		log.Fatalf("invalid menu layout: %v", err)
	}
	machine := nav.NewMachine(model)
	debug.Menu(model.RootCount(), model.ChildCount())

	// Optional web view: events over SSE, debug log mirrored
	var (
		presenters  []controller.Presenter
		broadcaster *web.Broadcaster
	)
	if webPort.port() > 0 {
		broadcaster = web.NewBroadcaster()
		debug.SetOutput(io.MultiWriter(os.Stdout, web.BroadcastWriter(broadcaster)))
		presenters = append(presenters, web.NewPresenter(broadcaster))
	}

	ctrl := controller.New(enc, btn, machine, cfg.TickPeriod(), presenters...)

	if port := webPort.port(); port > 0 {
		// Synthetic input only makes sense without real hardware.
		var inject web.InjectFunc
		if cfg.GPIO.Backend == "mock" {
			inject = func(step int, press bool) {
				ctrl.Inject(controller.Input{Step: step, Press: press})
			}
		}

		srv := web.NewServer(fmt.Sprintf(":%d", port), broadcaster, machine.Snapshot, inject, model)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("web server: %v", err)
				cancel()
			}
		}()
	}

	debug.Summary("Menu controller running")
	if err := ctrl.Run(ctx); err != nil {
		log.Fatalf("polling loop failed: %v", err)
	}
}

// validateCLIOverrides checks that CLI overrides are within valid ranges.
// -1 and "" are ignored (they mean "use config default").
func validateCLIOverrides(debugLevel int, backend string) error {
	if debugLevel != -1 && (debugLevel < 0 || debugLevel > 4) {
		return fmt.Errorf("debug level must be between 0 and 4, got %d", debugLevel)
	}
	switch backend {
	case "", "mock", "rpio", "gpiocdev":
	default:
		return fmt.Errorf("gpio backend must be mock, rpio or gpiocdev, got %q", backend)
	}
	return nil
}

// applyOverrides mutates cfg with overrides. -1/"" values are ignored.
func applyOverrides(cfg *config.Config, debugLevel int, backend string) {
	if debugLevel >= 0 {
		cfg.Defaults.DebugLevel = debugLevel
	}
	if backend != "" {
		cfg.GPIO.Backend = backend
	}
}

// webPortFlag implements flag.Value for -web: 0 = disabled, -web= or -web 8080 → 8080, -web 8980 → 8980.
type webPortFlag struct {
	val         int
	defaultPort int
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	if s == "" {
		w.val = w.defaultPort
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}

func (w *webPortFlag) port() int { return w.val }
