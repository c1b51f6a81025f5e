package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docchat/docchat/internal/progress"
	"github.com/docchat/docchat/internal/topics"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import topics into the answer store",
	Long: `Builds the topic store the answering service reads from. The path is
a JSON file of {keyword, answer} entries, an HTML document split at
its headings, or a directory of markdown files, where each heading
becomes a keyword and its section body becomes the answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("document", "", "document name for JSON imports (default: file name)")
	importCmd.Flags().Bool("quiet", false, "suppress progress output")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	document, _ := cmd.Flags().GetString("document")
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, database, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	im := topics.NewImporter(store, progress.NewReporter(quiet))

	var imported int
	switch {
	case strings.HasSuffix(path, ".json"):
		if document == "" {
			document = strings.TrimSuffix(baseName(path), ".json")
		}
		imported, err = im.ImportJSON(ctx, document, path)
	case strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm"):
		if document == "" {
			base := baseName(path)
			document = strings.TrimSuffix(base, ".html")
			document = strings.TrimSuffix(document, ".htm")
		}
		imported, err = im.ImportHTML(ctx, document, path)
	default:
		imported, err = im.ImportMarkdown(ctx, path, cfg.Import.Include, cfg.Import.Exclude)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d topics.\n", imported)
	return nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
