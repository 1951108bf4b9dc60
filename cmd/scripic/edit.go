package main

import (
	"fmt"
	"os"

	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/shouni/scripic-kit/pkg/prompt"
	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		text         string
		file         string
		instructions []string
		presets      []int
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "指示に従ってテキストを編集します",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("ファイルの読み込みに失敗しました: %w", err)
				}
				text = string(b)
			}

			selected := make([]string, 0, len(presets))
			for _, n := range presets {
				if n < 1 || n > len(prompt.PresetInstructions) {
					return fmt.Errorf("プリセット番号は 1〜%d で指定してください: %d", len(prompt.PresetInstructions), n)
				}
				selected = append(selected, prompt.PresetInstructions[n-1])
			}
			selected = append(selected, instructions...)

			st, err := a.buildStudio(cmd.Context())
			if err != nil {
				return err
			}
			res, err := st.EditText(cmd.Context(), domain.TextEditRequest{
				Text:        text,
				Instruction: prompt.JoinInstructions(selected, ""),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "編集するテキスト")
	cmd.Flags().StringVarP(&file, "file", "f", "", "編集するテキストファイル")
	cmd.Flags().StringArrayVarP(&instructions, "instruction", "i", nil, "編集の指示（複数指定可）")
	cmd.Flags().IntSliceVar(&presets, "preset", nil, "定型の指示の番号（1 始まり、複数指定可）")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	return cmd
}
