package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/spawngen/internal/arefile"
)

// AreOptions holds flags for the are subcommands.
type AreOptions struct {
	*RootOptions
	Level int // zlib compression level for pack and check
}

// AreResult summarizes one container transform.
type AreResult struct {
	Input   string         `json:"input"`
	Output  string         `json:"output"`
	InSize  int            `json:"in_size"`
	OutSize int            `json:"out_size"`
	Header  arefile.Header `json:"header"`
}

func (r AreResult) String() string {
	return fmt.Sprintf("%s (%d bytes) -> %s (%d bytes) [%s %s]", r.Input, r.InSize, r.Output, r.OutSize, r.Header.Signature, r.Header.Version)
}

// CheckResult wraps a round-trip report for text output.
type CheckResult struct {
	Input string `json:"input"`
	arefile.RoundTripReport
}

func (r CheckResult) String() string {
	verdict := "differs"
	if r.Identical {
		verdict = "identical"
	}
	return fmt.Sprintf("%s: %d -> %d -> %d bytes, recompression %s", r.Input, r.CompressedSize, r.RawSize, r.RecompSize, verdict)
}

// NewAreCommand creates the are command and its subcommands.
func NewAreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "are",
		Short: "Transform zlib area containers",
		Long: `Unpack, repack or check zlib-compressed area container payloads.

Example:
  spawngen are unpack AR1000.zare AR1000.are
  spawngen are pack AR1000.are AR1000.zare
  spawngen are check AR1000.zare`,
	}

	cmd.PersistentFlags().IntVar(&opts.Level, "level", arefile.BestCompression, "zlib compression level")

	cmd.AddCommand(&cobra.Command{
		Use:           "unpack <in> <out>",
		Short:         "Decompress a container payload",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAreTransform(opts, cmd, args[0], args[1], unpack)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "pack <in> <out>",
		Short:         "Compress a container payload",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAreTransform(opts, cmd, args[0], args[1], func(data []byte) ([]byte, []byte, error) {
				return pack(data, opts.Level)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "check <in>",
		Short:         "Report whether recompression reproduces a payload",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAreCheck(opts, cmd, args[0])
		},
	})

	return cmd
}

// transform maps input bytes to output bytes and the raw payload.
type transform func(data []byte) (out, raw []byte, err error)

func unpack(data []byte) ([]byte, []byte, error) {
	raw, err := arefile.Decompress(bytes.NewReader(data))
	return raw, raw, err
}

func pack(data []byte, level int) ([]byte, []byte, error) {
	var buf bytes.Buffer
	if err := arefile.Compress(&buf, data, level); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), data, nil
}

func runAreTransform(opts *AreOptions, cmd *cobra.Command, in, out string, fn transform) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	data, err := readInput(in)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "reading container", err)
	}
	result, raw, err := fn(data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeContainer, fmt.Sprintf("transforming %s", in), err)
	}
	if err := os.WriteFile(out, result, 0644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing %s", out), err)
	}

	header, err := arefile.ParseHeader(raw)
	if err != nil {
		formatter.VerboseLog("%s: %v", in, err)
	}
	return formatter.Success(AreResult{
		Input:   in,
		Output:  out,
		InSize:  len(data),
		OutSize: len(result),
		Header:  header,
	})
}

func runAreCheck(opts *AreOptions, cmd *cobra.Command, in string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	data, err := readInput(in)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "reading container", err)
	}
	report, err := arefile.RoundTrip(data, opts.Level)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeContainer, fmt.Sprintf("checking %s", in), err)
	}
	if err := formatter.Success(CheckResult{Input: in, RoundTripReport: report}); err != nil {
		return err
	}
	if !report.Identical {
		return NewExitError(ExitFailure, fmt.Sprintf("%s does not round-trip at level %d", in, opts.Level))
	}
	return nil
}
