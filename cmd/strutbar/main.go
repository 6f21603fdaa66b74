package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/strutbar"
	"github.com/1broseidon/strutbar/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "redraw":
		os.Exit(runRedraw(os.Args[2:]))
	case "stop":
		os.Exit(runStop(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: strutbar <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the bar (foreground)")
	fmt.Fprintln(w, "  status              Show status of the running bar")
	fmt.Fprintln(w, "  redraw              Force the running bar to repaint")
	fmt.Fprintln(w, "  stop                Stop the running bar")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'strutbar <command> --help' for command-specific options.")
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "config file path (default: $XDG_CONFIG_HOME/strutbar/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: strutbar run [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the bar in the foreground. SIGHUP reloads the module list,")
		fmt.Fprintln(os.Stderr, "SIGINT/SIGTERM stop the bar.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	return runBar(*configPath)
}

func runBar(configPath string) int {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			log.Fatalf("Failed to resolve config path: %v", err)
		}
		configPath = p
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (height: %dpx, position: %s, modules: %d)",
		cfg.Height, cfg.Position, len(cfg.Modules))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.slogLevel(),
	}))

	builder, err := cfg.builder(logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	bar, err := builder.Spawn()
	if err != nil {
		log.Fatalf("Failed to spawn bar: %v", err)
	}

	handles, err := buildModules(bar, cfg)
	if err != nil {
		log.Fatalf("Failed to build modules: %v", err)
	}

	ipcServer, err := ipc.NewServer(bar)
	if err != nil {
		log.Fatalf("Failed to create control server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start control server: %v", err)
	}
	defer ipcServer.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading modules...")
				newCfg, err := LoadConfig(configPath)
				if err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				newHandles, err := buildModules(bar, newCfg)
				if err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				for _, h := range handles {
					h.Remove()
				}
				handles = newHandles
				log.Println("Modules reloaded")

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down bar...")
				bar.Stop()
			}
		}
	}()

	if err := bar.Run(context.Background()); err != nil {
		log.Printf("Bar exited: %v", err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: strutbar status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show status of the running bar via the control socket.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.Status()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("running:        %v\n", status.Running)
	fmt.Printf("components:     %d\n", status.Components)
	fmt.Printf("geometry:       %dx%d at (%d,%d)\n", status.Width, status.Height, status.X, status.Y)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runRedraw(args []string) int {
	fs := flag.NewFlagSet("redraw", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: strutbar redraw")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Force the running bar to re-render every component.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "redraw takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Redraw(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStop(args []string) int {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: strutbar stop")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Stop the running bar.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "stop takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// buildModules constructs every configured module and adds it to the bar.
// Nothing is added unless every module builds, so a failed reload leaves
// the running set untouched.
func buildModules(bar *strutbar.Bar, cfg *Config) ([]*strutbar.Handle, error) {
	comps := make([]strutbar.Component, 0, len(cfg.Modules))
	for i, mc := range cfg.Modules {
		comp, err := buildComponent(bar, mc)
		if err != nil {
			return nil, fmt.Errorf("module %d (%s): %w", i+1, mc.Type, err)
		}
		comps = append(comps, comp)
	}
	handles := make([]*strutbar.Handle, 0, len(comps))
	for _, comp := range comps {
		handles = append(handles, bar.Add(comp))
	}
	return handles, nil
}
