package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbaille/dayplan/internal/api"
	"github.com/pbaille/dayplan/internal/config"
	"github.com/pbaille/dayplan/internal/domain"
	"github.com/pbaille/dayplan/internal/fetcher"
	"github.com/pbaille/dayplan/internal/grid"
	"github.com/pbaille/dayplan/internal/logging"
	"github.com/pbaille/dayplan/internal/posts"
	"github.com/pbaille/dayplan/internal/store"
)

var (
	configPath string
	verbose    bool
	cfg        config.Config
	logger     *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dayplan",
		Short:         "Daily allocation grid and posts service",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				cfg, err = config.LoadDefault()
			}
			if err != nil {
				return err
			}
			applyFlags(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			logger, err = logging.New(level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.String("db", "", "database path or DSN")
	flags.String("db-driver", "", "database driver (sqlite or postgres)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(postCmd())
	rootCmd.AddCommand(gridCmd())
	return rootCmd
}

// applyFlags lets explicit flags win over file and environment settings.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBDSN, _ = flags.GetString("db")
	}
	if flags.Changed("db-driver") {
		cfg.DBDriver, _ = flags.GetString("db-driver")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
}

func getService(ctx context.Context) (*posts.Service, store.Backend, error) {
	backend, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	return posts.NewService(backend, logger), backend, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, backend, err := getService(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			logger.Info("Opened store", zap.String("driver", cfg.DBDriver))
			server := api.New(svc, grid.NewController(), logger, cfg.Addr)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringP("addr", "a", "", "server address (default from config)")
	return cmd
}

func postCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Manage posts",
	}
	cmd.AddCommand(postListCmd(), postShowCmd(), postAddCmd(), postDeleteCmd(), postImportCmd())
	return cmd
}

func postListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, backend, err := getService(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No posts yet. Use 'dayplan post add' to create one.")
				return nil
			}
			for _, p := range list {
				fmt.Fprintf(out, "%s  %s\n", shortID(p.ID), truncate(p.Title, 60))
			}
			return nil
		},
	}
}

func postShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, backend, err := getService(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			p, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("post not found: %s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %s\n", p.ID)
			fmt.Fprintf(out, "Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Title:   %s\n", p.Title)
			fmt.Fprintf(out, "Content:\n%s\n", p.Content)
			return nil
		},
	}
}

func postAddCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add a new post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, backend, err := getService(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			content := strings.Join(args, " ")
			if title == "" {
				title = truncate(content, 40)
			}
			p, err := svc.Create(cmd.Context(), domain.NewPost{Title: title, Content: content})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added post: %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "post title")
	return cmd
}

func postDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, backend, err := getService(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			res, err := svc.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if res.Deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted post: %s\n", res.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No post with id %s\n", res.ID)
			}
			return nil
		},
	}
}

func postImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [url]",
		Short: "Create a post from a web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fetcher.IsURL(args[0]) {
				return fmt.Errorf("not a URL: %s", args[0])
			}

			page, err := fetcher.New().Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			svc, backend, err := getService(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			p, err := svc.Create(cmd.Context(), page.Draft())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as post %s\n", truncate(p.Title, 60), p.ID)
			return nil
		},
	}
}

func gridCmd() *cobra.Command {
	var label string
	var slots []int

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print a day grid, optionally painting slots with a label",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := grid.Apply(grid.State{}, grid.Reset{})
			if label != "" {
				st = grid.Apply(st, grid.Select{Label: label})
				for _, i := range slots {
					st = grid.Apply(st, grid.Paint{Slot: i, Event: grid.Click})
				}
			}
			printGrid(cmd.OutOrStdout(), st)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "label to paint")
	cmd.Flags().IntSliceVarP(&slots, "slots", "s", nil, "slot indexes to paint (0-23)")
	return cmd
}

func printGrid(w io.Writer, st grid.State) {
	for i, s := range st.Slots {
		mark := " "
		if s.Label != "" {
			mark = "*"
		}
		fmt.Fprintf(w, "%2d%s", s.Hour, mark)
		if i%12 == 11 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
	fmt.Fprintf(w, "%d allocated\n%d unallocated\n", grid.Allocated(st), grid.UnallocatedCount(st))
	for _, sh := range grid.Breakdown(st) {
		fmt.Fprintf(w, "  %-12s %d\n", sh.Name, sh.Value)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
