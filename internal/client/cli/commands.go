package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophinventory/internal/client/config"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/inbox"
	"github.com/spf13/cobra"
)

// session carries the App built in PersistentPreRunE to the subcommands.
type session struct {
	app *App

	// newApp is a test seam.
	newApp func(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error)
}

func (s *session) close() {
	if s.app != nil {
		_ = s.app.Close()
		s.app = nil
	}
}

// NewRootCmd builds the inventory command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{newApp: NewApp})
}

func newRootCmd(s *session) *cobra.Command {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Keep a stock inventory and exchange items as encrypted files",
		Long:          "Without a subcommand, inventory starts an interactive shell.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			s.app, err = s.newApp(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s.app.RunShell(cmd.Context())
			return nil
		},
	}
	defaults.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newListCmd(s),
		newShowCmd(s),
		newExportCmd(s),
		newImportCmd(s),
		newShareCmd(s),
		newWatchCmd(s),
		newSettingsCmd(s),
	)
	return root
}

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items ordered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.List(cmd.Context())
		},
	}
}

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Show(cmd.Context(), args)
		},
	}
}

func newExportCmd(s *session) *cobra.Command {
	var (
		out       string
		cache     bool
		downloads bool
		toS3      bool
	)
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export an item as an encrypted envelope file",
		Long:  "Writes item_<millis>_<name>.enc to the downloads folder unless another destination is chosen.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dest := DestDownloads
			switch {
			case out != "":
				dest = out
			case cache:
				dest = DestCache
			case toS3:
				dest = DestS3
			}
			return s.app.ExportTo(cmd.Context(), id, dest)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file or directory")
	cmd.Flags().BoolVar(&cache, "cache", false, "write to the cache directory")
	cmd.Flags().BoolVar(&downloads, "downloads", false, "write to <downloads>/Inventory (default)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "upload to the configured S3 bucket")
	cmd.MarkFlagsMutuallyExclusive("out", "cache", "downloads", "s3")
	return cmd
}

func newImportCmd(s *session) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import an encrypted envelope file as a new item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case key != "" && len(args) == 0:
				return s.app.ImportRef(cmd.Context(), key, true)
			case key == "" && len(args) == 1:
				return s.app.ImportRef(cmd.Context(), args[0], false)
			default:
				return fmt.Errorf("%w: give either a file or --s3 <key>", common.ErrValidation)
			}
		},
	}
	cmd.Flags().StringVar(&key, "s3", "", "object key (or s3:// URL) in the configured bucket")
	return cmd
}

func newShareCmd(s *session) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Print or save the share summary of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return s.app.Share(cmd.Context(), args)
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return s.app.ShareTo(cmd.Context(), id, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the summary to this file")
	return cmd
}

func newWatchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Import envelope files dropped into a directory",
		Long:  "Imported files are moved to <dir>/" + inbox.ImportedDir + ". Stops on Ctrl+C.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := s.app.config.InboxDir
			if len(args) == 1 {
				dir = args[0]
			}
			return s.app.Watch(cmd.Context(), dir)
		},
	}
}

func newSettingsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.ShowSettings(cmd.Context())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.SetSetting(cmd.Context(), args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore default preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Settings(cmd.Context(), []string{"reset"})
		},
	})
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	s := &session{newApp: NewApp}
	defer s.close()

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, failure(describe(err)))
		if errors.Is(err, common.ErrValidation) {
			return 2
		}
		return 1
	}
	return 0
}
