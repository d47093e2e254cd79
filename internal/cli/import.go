package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/user"
)

func importCmd() *cobra.Command {
	var author, format string

	c := &cobra.Command{
		Use:   "import <file.yaml|file.md|->",
		Short: "Create articles from a YAML document or a Markdown file",
		Long: "Create articles from a YAML document listing several articles, or from a\n" +
			"Markdown file whose front matter holds the article fields.\n" +
			"The format follows the file extension unless --format is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, flush, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = flush(cmd.Context()) }()
			if err := persistent(cfg); err != nil {
				return err
			}

			if format == "" {
				format = formatOf(args[0])
			}
			if format != "yaml" && format != "markdown" {
				return fmt.Errorf("unknown format %q, want yaml or markdown", format)
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			ctx := cmd.Context()
			st, err := openStores(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = st.close(ctx) }()

			var authorID string
			if author != "" {
				u, err := user.NewService(st.users).GetByEmail(ctx, author)
				if err != nil {
					return fmt.Errorf("author %s: %w", author, err)
				}
				authorID = u.ID
			}

			out := cmd.OutOrStdout()
			svc := article.NewService(st.articles, cfg.Canonical())
			var res importResult
			if format == "markdown" {
				src, rerr := io.ReadAll(r)
				if rerr != nil {
					return rerr
				}
				res, err = importMarkdown(ctx, svc, args[0], src, authorID, out)
			} else {
				res, err = importArticles(ctx, svc, r, authorID, out)
			}
			fmt.Fprintf(out, "%d created, %d skipped\n", res.Created, res.Skipped)
			if err != nil {
				return err
			}
			if res.Skipped > 0 {
				return fmt.Errorf("%d articles were not imported", res.Skipped)
			}
			return nil
		},
	}

	c.Flags().StringVar(&author, "author", "", "Email of the user recorded as author")
	c.Flags().StringVar(&format, "format", "", "Input format: yaml or markdown")
	return c
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	default:
		return "yaml"
	}
}
