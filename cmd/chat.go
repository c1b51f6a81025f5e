package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/docchat/docchat/internal/chat"
	"github.com/docchat/docchat/internal/transcript"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with the answering service",
	Long: `Opens an interactive prompt. Each question is sent to the answering
service; multi-match responses are shown as a pick list where
selecting an entry reveals that match's full answer.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("document", "", "document to answer from")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	document, _ := cmd.Flags().GetString("document")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := createClientFromConfig(cfg, document)
	session := chat.NewSession(c)

	fmt.Println("docchat: ask a question, empty line to skip, Ctrl+C to quit.")
	fmt.Println()

	for {
		prompt := promptui.Prompt{Label: "you"}
		line, err := prompt.Run()
		if err != nil {
			// Interrupt or EOF ends the session.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("bye")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		reply, err := session.Send(ctx, line)
		if err != nil {
			return fmt.Errorf("sending message: %w", err)
		}

		switch reply.Outcome {
		case chat.OutcomeNone:
			// Empty input: nothing sent, prompt again.
			continue

		case chat.OutcomeMatches:
			if err := pickMatches(reply.Matches); err != nil {
				return err
			}

		default:
			printBotRow(reply.Message)
		}
	}
}

// pickMatches runs the reveal loop over a match list: selecting an
// entry shows that match's answer, and the list stays available until
// the user moves on.
func pickMatches(list *transcript.MatchList) error {
	const done = "(continue asking)"

	for {
		items := make([]string, 0, list.Len()+1)
		for i := 0; i < list.Len(); i++ {
			items = append(items, list.Label(i))
		}
		items = append(items, done)

		sel := promptui.Select{
			Label: "Top matches",
			Items: items,
			Size:  len(items),
		}
		idx, _, err := sel.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return fmt.Errorf("selecting match: %w", err)
		}
		if idx == list.Len() {
			return nil
		}

		answer, err := list.Reveal(idx)
		if err != nil {
			return err
		}
		fmt.Printf("\nbot> %s\n\n", answer)
	}
}

// printBotRow prints a resolved bot message. Bot content is HTML from
// the service and is shown as delivered.
func printBotRow(m *transcript.Message) {
	fmt.Printf("\nbot> %s", m.HTML)
	if m.Confidence != nil {
		fmt.Printf("  (%s)", transcript.FormatConfidence(*m.Confidence))
	}
	fmt.Println()
	fmt.Println()
}
