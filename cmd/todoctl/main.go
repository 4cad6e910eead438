// Package main implements the todoctl CLI, a command-line client for the todo API.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/eric-akh/jl-todo-app/client"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3000"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type cli struct {
	server string
	out    io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out}

	server := os.Getenv("TODO_SERVER")
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:          "todoctl",
		Short:        "Manage todos on a todo API server",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.server, "server", server, "todo API base URL (env TODO_SERVER)")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.showCmd(),
		c.updateCmd(),
		c.toggleCmd(),
		c.rmCmd(),
		c.activityCmd(),
	)
	return root
}

func (c *cli) client() (*client.Client, error) {
	cl, err := client.New(c.server)
	if err != nil {
		return nil, fmt.Errorf("--server: %w", err)
	}
	return cl, nil
}
