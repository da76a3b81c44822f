// Package shardcmd holds the gecshard subcommands,
// split out from package main so tests can drive them directly.
package shardcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gordian-engine/gecc/gerasure/gereedsolomon"
)

// NewRootCommand returns the root gecshard command with all subcommands
// attached.
func NewRootCommand(log *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gecshard",
		Short: "Split files into erasure-coded shards and rebuild them",

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newSplitCommand(log),
		newJoinCommand(log),
		newVerifyCommand(log),
	)

	return cmd
}

// shardFlags are the coding parameters shared by every subcommand.
type shardFlags struct {
	dataShards   int
	parityShards int
}

func (f *shardFlags) addTo(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.dataShards, "data-shards", "d", 4, "number of data shards")
	cmd.Flags().IntVarP(&f.parityShards, "parity-shards", "p", 2, "number of parity shards")
}

// shardPath returns the path of shard i for the given base path.
func shardPath(base string, i int) string {
	return fmt.Sprintf("%s.%d", base, i)
}

func newSplitCommand(log *slog.Logger) *cobra.Command {
	var flags shardFlags
	var outDir string

	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split a file into data and parity shard files",
		Long: `Split a file into data and parity shard files.

The shards are written next to the input file (or into --out-dir)
as FILE.0 through FILE.N-1, data shards first.
Rebuilding with "join" needs the original file size,
so keep the size this command reports.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := gereedsolomon.New(flags.dataShards, flags.parityShards)
			if err != nil {
				return err
			}

			inPath := args[0]
			data, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			shards, err := code.Split(data)
			if err != nil {
				return err
			}
			if err := code.Encode(shards); err != nil {
				return err
			}

			base := inPath
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				base = filepath.Join(outDir, filepath.Base(inPath))
			}

			for i, shard := range shards {
				if err := os.WriteFile(shardPath(base, i), shard, 0o644); err != nil {
					return fmt.Errorf("failed to write shard %d: %w", i, err)
				}
			}

			log.Info(
				"Split file into shards",
				"file", inPath,
				"size", len(data),
				"data_shards", flags.dataShards,
				"parity_shards", flags.parityShards,
				"shard_size", len(shards[0]),
			)
			return nil
		},
	}

	flags.addTo(cmd)
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the shard files (default: next to the input)")

	return cmd
}

func newJoinCommand(log *slog.Logger) *cobra.Command {
	var flags shardFlags
	var outPath string
	var size int

	cmd := &cobra.Command{
		Use:   "join BASE",
		Short: "Rebuild the original file from shard files",
		Long: `Rebuild the original file from the shard files BASE.0 through BASE.N-1.

Missing or unreadable shard files are reconstructed from the rest,
as long as no more than the parity count are gone.
Without --size the output keeps the zero padding added by split.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := gereedsolomon.New(flags.dataShards, flags.parityShards)
			if err != nil {
				return err
			}

			base := args[0]
			shards, err := readShards(log, base, code.TotalShards())
			if err != nil {
				return err
			}

			if err := code.ReconstructData(shards); err != nil {
				return fmt.Errorf("failed to reconstruct data shards: %w", err)
			}

			if size == 0 {
				for i := 0; i < flags.dataShards; i++ {
					size += len(shards[i])
				}
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer out.Close()

			if err := code.Join(out, shards, size); err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("failed to finish output file: %w", err)
			}

			log.Info("Rebuilt file from shards", "file", outPath, "size", size)
			return nil
		},
	}

	flags.addTo(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "path of the rebuilt file")
	cmd.Flags().IntVar(&size, "size", 0, "original file size, to trim the padding")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newVerifyCommand(log *slog.Logger) *cobra.Command {
	var flags shardFlags

	cmd := &cobra.Command{
		Use:   "verify BASE",
		Short: "Check that the parity shard files match the data shard files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := gereedsolomon.New(flags.dataShards, flags.parityShards)
			if err != nil {
				return err
			}

			shards, err := readShards(log, args[0], code.TotalShards())
			if err != nil {
				return err
			}
			for i, s := range shards {
				if s == nil {
					return fmt.Errorf("cannot verify: shard %d is missing", i)
				}
			}

			ok, err := code.Verify(shards)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("verification failed: parity does not match data")
			}

			log.Info("Shards verified", "base", args[0], "shards", len(shards))
			return nil
		},
	}

	flags.addTo(cmd)

	return cmd
}

// readShards loads the n shard files for base,
// leaving nil entries for files that are missing or empty
// so reconstruction treats them as erased.
func readShards(log *slog.Logger, base string, n int) ([][]byte, error) {
	shards := make([][]byte, n)
	for i := range shards {
		path := shardPath(base, i)
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Warn("Shard file missing, will attempt reconstruction", "path", path)
			continue
		case err != nil:
			return nil, fmt.Errorf("failed to read shard %d: %w", i, err)
		}

		if len(data) == 0 {
			continue
		}
		shards[i] = data
	}
	return shards, nil
}
