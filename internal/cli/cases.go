package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/content"
	"github.com/jackparrish/deskfolio/pkg/render"
	"github.com/jackparrish/deskfolio/pkg/site"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// Output formats for "cases show".
const (
	formatMarkdown = "markdown"
	formatText     = "text"
	formatHTML     = "html"
)

// casesCommand creates the case study management command.
func (c *CLI) casesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List, read, check and publish case studies",
	}

	cmd.AddCommand(c.casesListCommand())
	cmd.AddCommand(c.casesShowCommand())
	cmd.AddCommand(c.casesCheckCommand())
	cmd.AddCommand(c.casesPushCommand())

	return cmd
}

// casesListCommand creates the "cases list" subcommand.
func (c *CLI) casesListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published case studies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := c.listCases(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cases)
			}
			if len(cases) == 0 {
				printInfo("No published case studies")
				return nil
			}
			fmt.Fprintln(stdout, casesTable(cases))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the index as JSON")

	return cmd
}

func (c *CLI) listCases(ctx context.Context) ([]site.CaseSummary, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	srv, release, err := c.newSite(ctx, cfg, true)
	if err != nil {
		return nil, err
	}
	defer release()
	return srv.Cases(ctx)
}

func casesTable(cases []site.CaseSummary) string {
	rows := make([][]string, 0, len(cases))
	for _, cs := range cases {
		rows = append(rows, []string{cs.Slug, cs.Title, orDash(cs.Role), orDash(cs.Client), orDash(cs.Date)})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Slug", "Title", "Role", "Client", "Date").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col >= 2:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

// casesShowCommand creates the "cases show" subcommand.
func (c *CLI) casesShowCommand() *cobra.Command {
	var (
		format  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "show [slug]",
		Short: "Print a case study as markdown, text or HTML",
		Long: `Print a case study as markdown, text or HTML.

Without a slug an interactive picker lists the published case studies.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeCaseSlugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var slug string
			if len(args) == 1 {
				slug = args[0]
			}
			return c.runCasesShow(cmd.Context(), slug, format, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatMarkdown, "output format: markdown, text, html")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache")

	return cmd
}

func (c *CLI) runCasesShow(ctx context.Context, slug, format string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	srv, release, err := c.newSite(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer release()

	if slug == "" {
		cases, err := srv.Cases(ctx)
		if err != nil {
			return err
		}
		picked, err := pickCase(ctx, cases)
		if err != nil || picked == nil {
			return err
		}
		slug = picked.Slug
	}

	out, err := showCase(ctx, srv, slug, format)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

// showCase renders slug in format.
func showCase(ctx context.Context, srv *site.Server, slug, format string) (string, error) {
	var (
		out string
		err error
	)
	switch format {
	case formatMarkdown:
		var md []byte
		md, err = srv.CaseMarkdown(ctx, slug)
		out = string(md)
	case formatText:
		out, err = srv.CaseText(ctx, slug)
		if err == nil {
			out += "\n"
		}
	case formatHTML:
		var (
			status int
			body   []byte
		)
		status, body, err = srv.CasePage(ctx, slug)
		if err == nil && status != http.StatusOK {
			err = perrors.New(perrors.ErrCodeNotFound, "case study %q answered with status %d", slug, status)
			if status != http.StatusNotFound {
				err = perrors.New(perrors.ErrCodeParse, "case study %q is unavailable", slug)
			}
		}
		out = string(body)
	default:
		return "", fmt.Errorf("invalid format: %q (must be one of: markdown, text, html)", format)
	}
	if perrors.IsNotFound(err) {
		return "", fmt.Errorf("no case study %q", slug)
	}
	return out, err
}

// pickCase runs the interactive case study picker. It returns nil when the
// user quits without choosing.
func pickCase(ctx context.Context, cases []site.CaseSummary) (*site.CaseSummary, error) {
	if len(cases) == 0 {
		return nil, errors.New("no published case studies")
	}
	p := tea.NewProgram(NewCaseListModel(cases), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(CaseListModel).Selected, nil
}

// casesCheckCommand creates the "cases check" subcommand.
func (c *CLI) casesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse and render every case study and report problems",
		Long: `Parse and render every case study and report problems.

Front matter errors, components that fell back to an error box, such as a
YouTube URL without a recognizable video ID, and tags without a renderer are
reported per case study. The command fails if any case study cannot be
parsed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCasesCheck(cmd.Context())
		},
	}
}

// checkResult is the outcome of checking one case study.
type checkResult struct {
	Slug     string
	Err      error
	Unknown  []string
	Problems []error
}

func (r checkResult) ok() bool { return r.Err == nil && len(r.Problems) == 0 }

func (c *CLI) runCasesCheck(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	repo, release, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Checking case studies...")
	spinner.Start()
	results, err := checkCases(ctx, repo, render.New(render.WithLogger(c.Logger)), func(slug string) {
		spinner.SetMessage("Checking " + slug + "...")
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Check complete", "cases", len(results))

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			printError("%s: %s", r.Slug, perrors.UserMessage(r.Err))
		case len(r.Problems) > 0:
			printWarning("%s: %d component problem(s)", r.Slug, len(r.Problems))
			for _, p := range r.Problems {
				printDetail("%s", p)
			}
		default:
			printSuccess("%s", r.Slug)
		}
		if len(r.Unknown) > 0 {
			printDetail("unrendered tags: %s", strings.Join(r.Unknown, ", "))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d case studies could not be parsed", failed, len(results))
	}
	return nil
}

// checkCases loads and renders every published case study. visit, if
// non-nil, is called with each slug before it is checked.
func checkCases(ctx context.Context, repo *content.Repository, engine *render.Engine, visit func(slug string)) ([]checkResult, error) {
	slugs, err := repo.ListDocumentIDs(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]checkResult, 0, len(slugs))
	for _, slug := range slugs {
		if visit != nil {
			visit(slug)
		}
		r := checkResult{Slug: slug}
		doc, err := repo.LoadDocument(ctx, slug)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		res, err := engine.RenderDocument(ctx, doc)
		if err != nil {
			r.Err = err
		} else {
			r.Unknown, r.Problems = res.Unknown, res.Problems
		}
		results = append(results, r)
	}
	return results, nil
}

// casesPushCommand creates the "cases push" subcommand.
func (c *CLI) casesPushCommand() *cobra.Command {
	var (
		slug  string
		draft bool
	)

	cmd := &cobra.Command{
		Use:   "push [file.mdx...]",
		Short: "Upload case study files to the MongoDB source",
		Long: `Upload case study files to the MongoDB source.

Each file is parsed before upload. The slug is the file name without its
extension unless --slug is given for a single file. Documents pushed with
--draft are stored but not served.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if slug != "" && len(args) > 1 {
				return errors.New("--slug can only be used with a single file")
			}
			return c.runCasesPush(cmd.Context(), args, slug, draft)
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "slug for a single file (default: file name)")
	cmd.Flags().BoolVar(&draft, "draft", false, "store as a draft")

	return cmd
}

func (c *CLI) runCasesPush(ctx context.Context, files []string, slug string, draft bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if !cfg.UsesMongo() {
		return perrors.New(perrors.ErrCodeInvalidConfig, "content.mongo.uri is not set; push needs a MongoDB source")
	}

	src, err := content.NewMongoSource(ctx, cfg.MongoSource())
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer src.Close(context.WithoutCancel(ctx))

	for _, file := range files {
		s := slug
		if s == "" {
			s = slugFromPath(file)
		}
		if err := perrors.ValidateSlug(s); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		raw, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		doc, err := content.ParseDocument(s, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := src.Put(ctx, s, raw, draft); err != nil {
			return fmt.Errorf("push %s: %w", s, err)
		}
		printSuccess("Pushed %s", StyleHighlight.Render(s))
		printDetail("%s (%s)", doc.Metadata.Title, src.Name())
	}
	return nil
}

// slugFromPath derives a slug from a file name.
func slugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
