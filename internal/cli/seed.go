package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/foodgramapp/foodgram-server/internal/service"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalog-file>",
		Short: "Load tags and ingredients from a YAML or JSON file",
		Long: `Load the tag and ingredient catalog from a YAML or JSON file.

Entries that already exist are skipped, so the same file can be loaded
repeatedly. A tag slug defaults to the slugified tag name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts, args[0])
		},
	}
}

// LoadCatalog parses a catalog file. JSON is accepted as a YAML subset.
func LoadCatalog(path string) (service.Catalog, error) {
	var catalog service.Catalog

	//#nosec G304 -- operator supplies the catalog path
	f, err := os.Open(path)
	if err != nil {
		return catalog, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return catalog, fmt.Errorf("parse %s: %w", path, err)
	}
	return catalog, nil
}

func runSeed(cmd *cobra.Command, opts *RootOptions, path string) error {
	catalog, err := LoadCatalog(path)
	if err != nil {
		return err
	}

	env, err := openEnvironment(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	catalogService := service.NewCatalogService(env.store, env.logger)
	res, err := catalogService.Seed(cmd.Context(), catalog)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(map[string]int{
		"tags_created":        res.TagsCreated,
		"tags_skipped":        res.TagsSkipped,
		"ingredients_created": res.IngredientsCreated,
		"ingredients_skipped": res.IngredientsSkipped,
	},
		fmt.Sprintf("tags: %d created, %d skipped", res.TagsCreated, res.TagsSkipped),
		fmt.Sprintf("ingredients: %d created, %d skipped", res.IngredientsCreated, res.IngredientsSkipped),
	)
}
