// Command emoji58 builds the Base58-to-emoji mapping from an emoji
// corpus and encodes, decodes, and scans Bitcoin addresses with it.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wbrown/emoji58"
)

var mappingPath string

func main() {
	root := &cobra.Command{
		Use:           "emoji58",
		Short:         "Encode Bitcoin addresses as visually distinct emoji",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&mappingPath, "mapping", "mapping.json",
		"path of the Base58-to-emoji mapping artifact")

	root.AddCommand(
		selectCommand(),
		encodeCommand(),
		decodeCommand(),
		scanCommand(),
		extractCommand(),
		reportCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadMapping() (*emoji58.Mapping, error) {
	m, err := emoji58.LoadMapping(mappingPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load mapping %s: %w", mappingPath, err)
	}
	return m, nil
}

func selectCommand() *cobra.Command {
	var (
		metadataPath string
		imagesDir    string
		configPath   string
		reportPath   string
		outPath      string
		threshold    float64
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Run the selection batch and persist the mapping artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := emoji58.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = emoji58.LoadConfig(configPath); err != nil {
					return err
				}
			}
			// Flags override file values.
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}
			if outPath == "" {
				outPath = mappingPath
			}

			candidates, err := emoji58.LoadCorpus(metadataPath, imagesDir)
			if err != nil {
				return err
			}

			log := logrus.New()
			result, err := emoji58.NewPipeline(cfg, log).Run(context.Background(), candidates)
			if err != nil {
				return err
			}

			if reportPath != "" {
				if err := result.Confusables.Save(reportPath); err != nil {
					return err
				}
				log.WithField("path", reportPath).Info("wrote confusable pair report")
			}

			if err := result.Mapping.Save(outPath); err != nil {
				return err
			}
			log.WithField("path", outPath).Info("wrote mapping artifact")
			return nil
		},
	}

	cmd.Flags().StringVar(&metadataPath, "metadata", "data/emoji_metadata.json",
		"emoji corpus metadata file")
	cmd.Flags().StringVar(&imagesDir, "images", "data/emoji_images",
		"directory of reference glyph images")
	cmd.Flags().StringVar(&configPath, "config", "", "selection configuration file")
	cmd.Flags().StringVar(&reportPath, "report", "", "also write the confusable pair report here")
	cmd.Flags().StringVar(&outPath, "out", "", "output mapping path (defaults to --mapping)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "confusability threshold override")
	return cmd
}

func encodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <base58-address>",
		Short: "Encode a Base58Check address as emoji",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping()
			if err != nil {
				return err
			}

			address := args[0]
			if !emoji58.ValidBase58Check(address) {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: input is not a valid Base58Check address")
			}

			encoded, err := emoji58.NewCodec(m).Encode(address)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
}

func decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <emoji-address>",
		Short: "Decode an emoji sequence back to Base58",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping()
			if err != nil {
				return err
			}

			address, err := emoji58.NewCodec(m).Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address)
			return nil
		},
	}
}

func scanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <emoji-address>",
		Short: "Decode an emoji sequence and validate its checksum",
		Long: "Decode an emoji sequence and validate the result against " +
			"Base58Check. A checksum mismatch is reported as data, not as an error.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping()
			if err != nil {
				return err
			}

			result, err := emoji58.NewCodec(m).Scan(args[0])
			if err != nil {
				return err
			}
			printScan(cmd, result)
			return nil
		},
	}
}

func extractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>",
		Short: "Extract emoji from free text and scan them as an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping()
			if err != nil {
				return err
			}

			extracted := emoji58.ExtractPictographs(args[0])
			if extracted == "" {
				return fmt.Errorf("no emoji found in text")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "extracted: %s\n", extracted)

			result, err := emoji58.NewCodec(m).Scan(extracted)
			if err != nil {
				return err
			}
			printScan(cmd, result)
			return nil
		},
	}
}

func printScan(cmd *cobra.Command, result emoji58.ScanResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "address:  %s\n", result.Address)
	if result.Valid {
		fmt.Fprintln(cmd.OutOrStdout(), "checksum: valid")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "checksum: INVALID")
	}
}

func reportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the bound mapping as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapping()
			if err != nil {
				return err
			}

			symbols := make([]string, 0, len(m.Symbols))
			for i := 0; i < len(emoji58.Base58Alphabet); i++ {
				symbols = append(symbols, string(emoji58.Base58Alphabet[i]))
			}
			// Most distinct bindings first; the alphabet order breaks
			// ties.
			sort.SliceStable(symbols, func(a, b int) bool {
				ea, _ := m.Entry(symbols[a])
				eb, _ := m.Entry(symbols[b])
				return ea.Distinctiveness < eb.Distinctiveness
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %-6s %-40s %s\n", "Base58", "Emoji", "Name", "Score")
			for _, symbol := range symbols {
				e, _ := m.Entry(symbol)
				fmt.Fprintf(out, "%-8s %-6s %-40s %.3f\n", symbol, e.Emoji, e.Name, e.Distinctiveness)
			}
			return nil
		},
	}
}
