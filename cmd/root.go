package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gh "github.com/Snider/gh-release/pkg/github"
	"github.com/Snider/gh-release/pkg/logger"
	"github.com/Snider/gh-release/pkg/release"
	"github.com/Snider/gh-release/pkg/ui"
	"github.com/spf13/cobra"
)

// ErrUsage is returned when the command is called with too few arguments.
// The usage line has already been printed when it is returned.
var ErrUsage = errors.New("not enough arguments")

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCmd()

// NewRootCmd builds the publishing command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gh-release <owner> <repo> <tag> <token> <file1> [file2...]",
		Short: "Publish files as assets of a GitHub release.",
		Long: `gh-release makes sure a release exists for a tag and attaches the given
files to it. The release is created (published, not a draft or prerelease)
when the tag has none yet. An asset that already carries the name of an
input file is deleted before the file is uploaded, so running the tool
again with the same files replaces them instead of failing.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cmd.SetContext(context.WithValue(cmd.Context(), "logger", logger.New(true)))
			}
		},
		RunE: runPublish,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.Flags().String("api-url", gh.DefaultAPIURL, "Base URL of the GitHub REST API")
	cmd.Flags().String("body", release.DefaultBody, "Description of a newly created release")
	cmd.Flags().Duration("timeout", 10*time.Minute, "Timeout of each API request (0 disables it)")
	cmd.Flags().Bool("no-progress", false, "Do not draw an upload progress bar")
	return cmd
}

// Execute runs the root command with log available to it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(log *slog.Logger) error {
	RootCmd.SetContext(context.WithValue(context.Background(), "logger", log))
	return RootCmd.Execute()
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) < 5 {
		fmt.Fprintf(out, "Usage: %s\n", cmd.Use)
		return ErrUsage
	}
	log := loggerFrom(cmd.Context())

	apiURL, _ := cmd.Flags().GetString("api-url")
	body, _ := cmd.Flags().GetString("body")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	req := release.Request{
		Owner: args[0],
		Repo:  args[1],
		Tag:   args[2],
		Files: args[4:],
	}
	client, err := gh.New(gh.NewHTTPClient(args[3], timeout), apiURL)
	if err != nil {
		return err
	}

	p := release.NewPublisher(client, log)
	p.Body = body
	p.Reporter = ui.NewPrinter(out)
	if !noProgress && ui.IsInteractive(out) {
		p.Progress = ui.UploadProgress(out)
	}

	log.Debug("publishing", "owner", req.Owner, "repo", req.Repo, "tag", req.Tag, "files", len(req.Files))
	res, err := p.Publish(cmd.Context(), req)
	if err != nil {
		return err
	}
	log.Info("release published", "tag", res.Release.Tag, "id", res.Release.ID,
		"created", res.Created, "uploaded", len(res.Uploaded), "replaced", len(res.Replaced))
	return nil
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value("logger").(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return logger.New(false)
}
