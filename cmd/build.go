package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/itsmostafa/pagetree/internal/artifact"
	"github.com/itsmostafa/pagetree/internal/ingest"
	"github.com/itsmostafa/pagetree/internal/outline"
	"github.com/spf13/cobra"
)

var (
	buildTotalPages int
	buildPolicy     string
	buildOut        string
	buildVerify     bool
	buildProvider   string
	buildModel      string
	buildNoCache    bool
	buildCacheDir   string
)

var buildCmd = &cobra.Command{
	Use:   "build <source>",
	Short: "Build a page-range tree from a PDF, Markdown or JSON entries file",
	Long: `Build ingests a source by extension (.pdf, .md, .json), runs the outline
pipeline and writes the resulting tree document as JSON to stdout or --out.

PDF sources supply page content and total pages directly. Markdown and JSON
sources that lack a page count need --total-pages for full gap coverage.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		cfg := outline.DefaultConfig()
		cfg.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		switch buildPolicy {
		case "exclusive":
			cfg.Policy = outline.BoundaryExclusive
		case "shared":
			cfg.Policy = outline.BoundaryShared
		default:
			return fmt.Errorf("unknown boundary policy %q (want exclusive or shared)", buildPolicy)
		}

		raw, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}

		var store *artifact.Store
		var key string
		if !buildNoCache {
			store, err = artifact.Open(buildCacheDir)
			if err != nil {
				return err
			}
			key = artifact.Fingerprint(raw,
				string(cfg.Policy),
				fmt.Sprintf("total=%d", buildTotalPages),
				fmt.Sprintf("verify=%t", buildVerify))
			if doc, ok := store.Load(key); ok {
				return writeDocument(doc)
			}
		}

		var entries []outline.Entry
		var pages []outline.PageContent
		totalPages := buildTotalPages

		switch strings.ToLower(filepath.Ext(source)) {
		case ".pdf":
			entries, pages, err = ingest.ReadPDF(source)
			if err != nil {
				return err
			}
			totalPages = len(pages)
		case ".md", ".markdown":
			entries, err = ingest.ParseMarkdown(raw)
			if err != nil {
				return err
			}
		case ".json":
			var fileTotal int
			entries, fileTotal, err = ingest.ParseEntries(raw)
			if err != nil {
				return err
			}
			if totalPages == 0 {
				totalPages = fileTotal
			}
		default:
			return fmt.Errorf("unsupported source type %q", filepath.Ext(source))
		}

		var doc *outline.Document
		if buildVerify && len(pages) > 0 {
			llm, err := newProvider(buildProvider, buildModel)
			if err != nil {
				return err
			}
			doc, err = outline.BuildVerified(cmd.Context(), filepath.Base(source), entries, pages, llm, cfg)
			if err != nil {
				return err
			}
		} else {
			if buildVerify {
				cfg.Logger.Warn("source provides no page content; skipping verification", "source", source)
			}
			doc, err = outline.Build(filepath.Base(source), entries, totalPages, cfg)
			if err != nil {
				return err
			}
		}

		if store != nil {
			if err := store.Save(key, doc); err != nil {
				cfg.Logger.Warn("cache write failed", "error", err)
			}
		}

		return writeDocument(doc)
	},
}

func newProvider(provider, model string) (outline.LLMProvider, error) {
	switch provider {
	case "openai":
		return outline.NewOpenAIProvider(model)
	case "ollama":
		return outline.NewOllamaProvider(model)
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or ollama)", provider)
	}
}

func writeDocument(doc *outline.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')

	if buildOut == "" || buildOut == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(buildOut, data, 0o644)
}

func init() {
	buildCmd.Flags().IntVar(&buildTotalPages, "total-pages", 0, "Total page count when the source does not carry one")
	buildCmd.Flags().StringVar(&buildPolicy, "policy", "exclusive", "Sibling boundary policy (exclusive, shared)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output file (default stdout)")
	buildCmd.Flags().BoolVar(&buildVerify, "verify", false, "Verify page attribution against document content with an LLM")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Skip the artifact cache")
	buildCmd.Flags().StringVar(&buildCacheDir, "cache-dir", "", "Artifact cache directory (default user cache dir)")

	// Provider flags with env var fallback
	defaultProvider := "openai"
	if envProvider := os.Getenv("PAGETREE_PROVIDER"); envProvider != "" {
		defaultProvider = envProvider
	}
	defaultModel := "gpt-4o"
	if envModel := os.Getenv("PAGETREE_MODEL"); envModel != "" {
		defaultModel = envModel
	}
	buildCmd.Flags().StringVar(&buildProvider, "provider", defaultProvider, "LLM provider for --verify (openai, ollama)")
	buildCmd.Flags().StringVar(&buildModel, "model", defaultModel, "LLM model for --verify")

	rootCmd.AddCommand(buildCmd)
}
