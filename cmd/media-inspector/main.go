package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quidome/media-inspector-go/pkg/capture"
	"github.com/quidome/media-inspector-go/pkg/exifdata"
	"github.com/quidome/media-inspector-go/pkg/mediatype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

const noDateTimeOriginal = "No DateTimeOriginal found"

type options struct {
	verbose bool
}

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "media-inspector",
		Short:   "A CLI tool to inspect media file metadata",
		Long:    "Media Inspector is a command-line tool that reads a single media file and prints its embedded metadata (EXIF tags, original capture date).",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Media Inspector CLI")
			cmd.Printf("Version: %s\n", version)
			if opts.verbose {
				cmd.Println("Verbose mode: enabled")
			}
			cmd.Println("")
			cmd.Println("Use --help to see available commands and options")
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newExifCmd(opts))
	rootCmd.AddCommand(newDateCmd(opts))

	return rootCmd
}

func newExifCmd(opts *options) *cobra.Command {
	var asJSON bool
	var tagName string

	exifCmd := &cobra.Command{
		Use:   "exif [file]",
		Short: "Print EXIF metadata embedded in an image",
		Long:  "Read a single image file and print its embedded EXIF metadata as tag name to value pairs. Tags the decoder has no name for are keyed by their raw identifier.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if kind := mediatype.Detect(path); kind != mediatype.KindPhoto {
				log.Debug().Str("path", path).Str("kind", string(kind)).Msg("extension does not look like a photo")
			}

			fields, err := exifdata.DecodeFile(path)
			if err != nil {
				return err
			}

			if tagName != "" {
				value, ok := fields.Lookup(tagName)
				if !ok {
					return fmt.Errorf("tag %q not present in %s", tagName, path)
				}
				cmd.Println(value)
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(fields)
			}

			for _, name := range fields.Names() {
				cmd.Printf("%s: %s\n", name, fields[name])
			}
			if opts.verbose {
				cmd.PrintErrf("found %d tags\n", len(fields))
			}

			return nil
		},
	}

	exifCmd.Flags().BoolVar(&asJSON, "json", false, "print the mapping as JSON")
	exifCmd.Flags().StringVar(&tagName, "tag", "", "print only the named tag")

	return exifCmd
}

func newDateCmd(opts *options) *cobra.Command {
	var bestEffort bool

	dateCmd := &cobra.Command{
		Use:   "date [file]",
		Short: "Print the original capture date of a media file",
		Long:  "Print the EXIF DateTimeOriginal of a file, or a fallback message when absent. With --best-effort, filename patterns and the file modification time are consulted as well.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if bestEffort {
				res, err := capture.ResolvePath(path, capture.Options{})
				if err != nil {
					return err
				}
				if res.Source == capture.SourceNone {
					cmd.Println("No capture date found")
					return nil
				}
				cmd.Printf("%s (%s)\n", res.Time.Format(time.RFC3339), res.Source)
				return nil
			}

			fields, err := exifdata.DecodeFile(path)
			if err != nil {
				return err
			}
			cmd.Printf("Date/Time Original: %s\n", fields.Get("DateTimeOriginal", noDateTimeOriginal))

			return nil
		},
	}

	dateCmd.Flags().BoolVar(&bestEffort, "best-effort", false, "fall back to filename patterns and file modification time")

	return dateCmd
}
