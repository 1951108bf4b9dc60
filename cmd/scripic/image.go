package main

import (
	"fmt"
	"os"

	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/spf13/cobra"
)

func newImageCmd(a *app) *cobra.Command {
	var (
		promptText string
		style      string
		aspect     string
		reference  string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "image",
		Short: "プロンプトから画像を生成します",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseImageFlags(style, aspect)
			if err != nil {
				return err
			}
			st, err := a.buildStudio(cmd.Context())
			if err != nil {
				return err
			}

			res, err := st.GenerateImage(cmd.Context(), domain.ImageRequest{
				Prompt:       promptText,
				Style:        s.style,
				AspectRatio:  s.aspect,
				ReferenceURL: reference,
			})
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.DataURI())
				return nil
			}
			if err := os.WriteFile(out, res.Data, 0o644); err != nil {
				return fmt.Errorf("画像の保存に失敗しました: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %d bytes)\n", out, res.MimeType, len(res.Data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&promptText, "prompt", "p", "", "生成する画像の説明")
	cmd.Flags().StringVarP(&style, "style", "s", string(domain.StyleNone), "画風 (ninguna, anime, ghibli, realista, oleo)")
	cmd.Flags().StringVarP(&aspect, "aspect-ratio", "a", string(domain.DefaultAspectRatio), "アスペクト比 (1:1, 16:9, 9:16, 4:3, 3:4)")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "参照画像の URL")
	cmd.Flags().StringVarP(&out, "out", "o", "", "保存先のファイル（省略時は data URI を出力）")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

type imageFlags struct {
	style  domain.Style
	aspect domain.AspectRatio
}

func parseImageFlags(style, aspect string) (imageFlags, error) {
	s, err := domain.ParseStyle(style)
	if err != nil {
		return imageFlags{}, err
	}
	ar, err := domain.ParseAspectRatio(aspect)
	if err != nil {
		return imageFlags{}, err
	}
	return imageFlags{style: s, aspect: ar}, nil
}
