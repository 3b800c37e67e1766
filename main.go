// Command aiplayground trains a Q-learning agent which asks a human
// for advice on a small grid world, either headless from the command
// line or interactively through an HTTP dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samuelfneumann/aiplayground/agent"
	"github.com/samuelfneumann/aiplayground/agent/tabular/qlearning"
	"github.com/samuelfneumann/aiplayground/config"
	"github.com/samuelfneumann/aiplayground/dashboard"
	"github.com/samuelfneumann/aiplayground/environment/gridworld"
	"github.com/samuelfneumann/aiplayground/environment/wrappers"
	"github.com/samuelfneumann/aiplayground/experiment"
	"github.com/samuelfneumann/aiplayground/experiment/trackers"
	"github.com/samuelfneumann/aiplayground/logger"
	"github.com/samuelfneumann/aiplayground/utils/progressbar"
)

const usage = `usage: aiplayground <command> [flags]

commands:
  train   train the agent for a number of episodes and print its statistics
  serve   serve the interactive dashboard`

var errUsage = errors.New(usage)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "train":
		return train(args[1:], out)
	case "serve":
		return serve(args[1:])
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

// loadConfig loads the configuration and initializes the logger
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Initialize(&cfg.Logging)
	for _, c := range cfg.Corrections() {
		logger.GetLogger().Warn(c)
	}
	return cfg, nil
}

func train(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("train", flag.ContinueOnError)
	configPath := flags.String("config", "", "path of the configuration file")
	episodes := flags.Int("episodes", 10, "number of episodes to train")
	advice := flags.String("advice", "",
		"advice given whenever the agent asks: up, down, left, or right")
	save := flags.String("save", "", "file to save episode returns to")
	noColor := flags.Bool("no-color", false, "render the grid without colors")
	progress := flags.Bool("progress", true, "display a progress bar")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *episodes < 1 {
		return fmt.Errorf("train: episodes must be positive, got %d",
			*episodes)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	log := logger.GetLogger()

	// Create the environment
	env, _, err := gridworld.New(cfg.GridConfig())
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	tracked := wrappers.NewTracked(env, cfg.MaxSteps)

	// Create the learning algorithm
	var agentConfig agent.Config = cfg.AgentConfig()
	q, err := agentConfig.CreateAgent(tracked, cfg.Seed)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	// Experiment
	lengths := trackers.NewEpisodeLength("")
	e := experiment.NewOnline(tracked, q, *episodes, cfg.MaxSteps,
		experiment.FixedAdvice(*advice), trackers.NewReturn(*save), lengths)
	e.SetLogger(log)
	if *progress {
		e.SetProgressBar(progressbar.NewManualProgressBar(os.Stderr, 40,
			*episodes))
	}

	log.WithField("episodes", *episodes).Info("Training")
	e.Run()
	if err := e.Save(); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	stats := q.Stats()
	fmt.Fprintf(out, "Total Episodes: %d\n", stats.Episodes)
	fmt.Fprintf(out, "Last Episode Reward: %v\n", stats.LastReward)
	fmt.Fprintf(out, "Average Reward (last %d): %.2f\n",
		qlearning.StatsWindow, stats.AverageReward)
	fmt.Fprintf(out, "Episodes reaching the target: %.0f%%\n",
		100*lengths.SuccessRate())
	if msg := q.Message(); msg != "" {
		fmt.Fprintf(out, "AI: %v\n", msg)
	}
	fmt.Fprintln(out)

	return env.Render(out, !*noColor)
}

func serve(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := flags.String("config", "", "path of the configuration file")
	addr := flags.String("addr", "", "address to listen on, overrides the "+
		"configured address")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Dashboard.Addr = *addr
	}

	srv, err := dashboard.NewServer(cfg, logger.GetLogger())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
