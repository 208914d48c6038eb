package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"rungrip/internal/config"
	"rungrip/internal/eventbus"
	"rungrip/internal/tracker"
	"rungrip/internal/ui"
	"rungrip/internal/watch"
)

func main() {
	// Parse command line arguments
	var serverURL string
	var configPath string
	flag.StringVar(&serverURL, "server", "", "Tracking server URL")
	flag.StringVar(&serverURL, "s", "", "Tracking server URL (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("rungrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	// Create event bus
	bus := eventbus.New()

	client := tracker.NewClient(cfg.ServerURL, tracker.WithTimeout(cfg.Timeout()))

	// Background experiment catalog polling
	watcher := watch.New(bus, client, cfg.PollInterval())

	// Create UI model
	uiModel := ui.NewModel(cfg, bus, client)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventExperimentsUpdated, forwardEvent)
	bus.Subscribe(eventbus.EventServerError, forwardEvent)

	// Forward events to the UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	watcher.Start(ctx)

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Cleanup. The bus must stop dispatching before the event channel
	// closes, or a buffered event could still be mid-delivery to
	// forwardEvent and hit the closed channel.
	watcher.Stop()
	bus.Close()
	close(eventChan)
	if cfg.UISettings.AutosaveOnExit {
		if err := config.Save(cfg, configPath); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
	cancel()
}
