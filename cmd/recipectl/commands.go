package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/corpus"
	"github.com/pageza/mealplanner/backend/internal/engine"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "recipectl",
		Usage: "search and inspect a recipe corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus",
				Usage:   "corpus location: CSV path, s3://bucket/key or postgres:// URL",
				Value:   "data/recipes.csv",
				Sources: cli.EnvVars("CORPUS_PATH"),
			},
			&cli.StringFlag{
				Name:    "engine-config",
				Usage:   "engine tuning YAML",
				Value:   "config/engine.yaml",
				Sources: cli.EnvVars("ENGINE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region for s3 corpora",
				Value:   "us-east-1",
				Sources: cli.EnvVars("AWS_REGION"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "rank recipes for a free-text query",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "number of results", Value: engine.DefaultLimit},
					&cli.IntFlag{Name: "max-time", Usage: "maximum cooking time in minutes (0 = no limit)"},
					&cli.StringSliceFlag{Name: "diet", Usage: "dietary restriction, repeatable"},
					&cli.StringFlag{Name: "difficulty", Usage: "easy, medium or hard"},
					&cli.StringFlag{Name: "cuisine", Usage: "cuisine keyword"},
					&cli.StringFlag{Name: "meal-type", Usage: "breakfast, lunch, dinner, snack or dessert"},
				},
				Action: searchAction,
			},
			{
				Name:      "show",
				Usage:     "print one recipe",
				ArgsUsage: "<id>",
				Action:    showAction,
			},
			{
				Name:   "stats",
				Usage:  "summarize the corpus and index",
				Action: statsAction,
			},
		},
	}
}

func loadIndex(ctx context.Context, cmd *cli.Command) (*engine.Index, error) {
	location := cmd.String("corpus")
	opts, err := engine.LoadOptions(cmd.String("engine-config"))
	if err != nil {
		return nil, err
	}

	src := corpus.Source{}
	if corpus.IsS3(location) {
		client, err := config.NewS3Client(ctx, &config.Config{AWSRegion: cmd.String("region")})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		src.S3 = client
	}

	recipes, err := src.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return engine.Build(recipes, opts)
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("search needs a query")
	}

	ix, err := loadIndex(ctx, cmd)
	if err != nil {
		return err
	}

	q := engine.Query{
		Text:  text,
		Limit: int(cmd.Int("limit")),
		Filters: engine.Filters{
			DietaryRestrictions: cmd.StringSlice("diet"),
			Difficulty:          cmd.String("difficulty"),
			Cuisine:             cmd.String("cuisine"),
			MealType:            cmd.String("meal-type"),
		},
	}
	if maxTime := int(cmd.Int("max-time")); maxTime > 0 {
		q.Filters.MaxCookingTime = &maxTime
	}

	results, err := ix.Recommend(q)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.Root().Writer, "no matching recipes")
		return nil
	}

	table := tablewriter.NewWriter(cmd.Root().Writer)
	table.Header("ID", "Name", "Minutes", "Difficulty", "Score")
	for _, r := range results {
		table.Append(
			strconv.FormatInt(r.ID, 10),
			r.Name,
			strconv.Itoa(r.CookingTime),
			string(r.Difficulty),
			fmt.Sprintf("%.3f", r.SimilarityScore),
		)
	}
	return table.Render()
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	id, err := strconv.ParseInt(cmd.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("show needs a numeric recipe id")
	}

	ix, err := loadIndex(ctx, cmd)
	if err != nil {
		return err
	}
	r, ok := ix.Get(id)
	if !ok {
		return fmt.Errorf("recipe %d not found", id)
	}

	calories := "-"
	if r.Calories != nil {
		calories = fmt.Sprintf("%.0f", *r.Calories)
	}

	table := tablewriter.NewWriter(cmd.Root().Writer)
	table.Header("Field", "Value")
	table.Append("ID", strconv.FormatInt(r.ID, 10))
	table.Append("Name", r.Name)
	table.Append("Description", r.Description)
	table.Append("Minutes", strconv.Itoa(r.CookingTime))
	table.Append("Difficulty", string(r.Difficulty))
	table.Append("Calories", calories)
	table.Append("Ingredients", strings.Join(r.Ingredients, ", "))
	table.Append("Dietary", strings.Join(r.DietaryTags, ", "))
	table.Append("Cuisine", strings.Join(r.CuisineTags, ", "))
	if err := table.Render(); err != nil {
		return err
	}

	for i, step := range r.Steps {
		fmt.Fprintf(cmd.Root().Writer, "%d. %s\n", i+1, step)
	}
	return nil
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	ix, err := loadIndex(ctx, cmd)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.Root().Writer)
	table.Header("Metric", "Value")
	table.Append("Recipes", strconv.Itoa(ix.Len()))
	table.Append("Vocabulary", strconv.Itoa(ix.VocabularySize()))
	table.Append("Fingerprint", ix.Fingerprint())
	return table.Render()
}
