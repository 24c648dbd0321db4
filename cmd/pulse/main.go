package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/adapter/cli/goal"
	"github.com/felixgeelhaar/pulse/adapter/cli/habit"
	"github.com/felixgeelhaar/pulse/adapter/cli/insights"
	"github.com/felixgeelhaar/pulse/adapter/cli/mood"
	"github.com/felixgeelhaar/pulse/adapter/cli/task"
)

func main() {
	// Cancel on shutdown signals so the worker drains cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.AddCommand(task.Cmd)
	cli.AddCommand(habit.Cmd)
	cli.AddCommand(goal.Cmd)
	cli.AddCommand(insights.Cmd)
	cli.AddCommand(mood.Cmd)

	cli.Execute(ctx)
}
