package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docchat/docchat/internal/client"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the answering service one question",
	Long:  `Sends a single question to the configured answering service and prints the ranked matches with their confidence scores.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("document", "", "document to answer from")
	askCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	document, _ := cmd.Flags().GetString("document")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := createClientFromConfig(cfg, document)
	result, err := c.Ask(ctx, question)
	if err != nil {
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) && statusErr.Message != "" {
			return fmt.Errorf("ask failed: %s", statusErr.Message)
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	if len(result.Matches) == 0 {
		fmt.Println("No relevant answer found.")
		return nil
	}

	if jsonOutput {
		return printMatchesJSON(result)
	}

	printMatchesTable(result)
	return nil
}

type askResultJSON struct {
	Rank       int     `json:"rank"`
	Keyword    string  `json:"keyword"`
	Confidence float64 `json:"confidence"`
	Answer     string  `json:"answer"`
}

func printMatchesJSON(result *client.ChatResult) error {
	var out []askResultJSON
	for i, m := range result.Matches {
		out = append(out, askResultJSON{
			Rank:       i + 1,
			Keyword:    m.Keyword,
			Confidence: m.Confidence,
			Answer:     m.Answer,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printMatchesTable(result *client.ChatResult) {
	fmt.Printf("Found %d matches in %s:\n\n", len(result.Matches), result.Document)
	for i, m := range result.Matches {
		fmt.Printf("  %d. [%.1f%%] %s\n", i+1, m.Confidence*100, m.Keyword)
		fmt.Printf("     %s\n\n", truncate(m.Answer, 120))
	}
}
