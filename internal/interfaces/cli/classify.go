package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chemgpt/gateway/internal/routing"
)

// classifyResult is the JSON output of the classify command.
type classifyResult struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	Parameter string `json:"parameter,omitempty"`
}

// NewClassifyCommand classifies a question offline, without touching any
// backend. Useful for inspecting how a question will be routed.
func NewClassifyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <question>",
		Short: "Classify a question and show the extracted parameter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			category := routing.Classify(question)
			param := routing.ExtractParameter(category, question)

			if asJSON {
				out, err := json.MarshalIndent(classifyResult{
					Question:  question,
					Category:  category.String(),
					Parameter: param,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "category:  %s\n", category)
			if param != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "parameter: %s\n", param)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
