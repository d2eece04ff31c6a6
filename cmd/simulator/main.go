package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

var (
	serverURL   = flag.String("server", "http://localhost:3000", "JARVIS backend base URL")
	skillID     = flag.String("skill", "amzn1.ask.skill.simulator", "Skill application ID")
	userID      = flag.String("user", "amzn1.ask.account.simulator", "Voice platform user ID")
	locale      = flag.String("locale", "es-ES", "Request locale")
	slotShape   = flag.String("slot-shape", SlotShapeValue, "Question slot shape: value or slotValue")
	question    = flag.String("ask", "", "Ask a single question and exit")
	timeout     = flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	interactive = flag.Bool("interactive", false, "Enable interactive mode")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	simulator := NewSimulator(&SimulatorConfig{
		ServerURL: *serverURL,
		SkillID:   *skillID,
		UserID:    *userID,
		Locale:    *locale,
		SlotShape: *slotShape,
		Timeout:   *timeout,
	}, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		_, _ = simulator.End("USER_INITIATED")
		os.Exit(0)
	}()

	if *interactive {
		fmt.Println("\nJARVIS Voice Simulator - Interactive Mode")
		fmt.Println("=========================================")
		fmt.Println("Type a question and press Enter.")
		fmt.Println("  launch  - Reopen the skill")
		fmt.Println("  quit    - End the session and exit")
		fmt.Println("")

		simulator.RunInteractive(os.Stdin, os.Stdout)
		return
	}

	if *question == "" {
		fmt.Fprintln(os.Stderr, "either -ask or -interactive is required")
		os.Exit(2)
	}

	resp, err := simulator.Ask(*question)
	if err != nil {
		logger.Fatal("Failed to ask question", zap.Error(err))
	}
	fmt.Println(Speech(resp))
}
