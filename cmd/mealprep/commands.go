package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vbonduro/mealprep/internal/service"
)

var shoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Shopping list operations",
}

var (
	generateStart string
	generateEnd   string
)

var shoppingGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rebuild the generated shopping items from the meal plan",
	Long: `Rebuild the generated shopping items from the meal plan. With both
--start and --end set only meals in that range count and the list keeps
itself up to date as the plan changes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.service.GenerateShoppingList(cmd.Context(), service.GenerateRequest{
			StartDate: generateStart,
			EndDate:   generateEnd,
		})
		if err != nil {
			return err
		}
		for _, m := range res.FromFreezer {
			fmt.Fprintf(cmd.OutOrStdout(), "from freezer: %s %s (%s)\n", m.Date, m.Name, m.MealType)
		}
		return printJSON(cmd.OutOrStdout(), a.service.ShoppingOverview(cmd.Context()))
	},
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Recipe operations",
}

var recipesCheckCmd = &cobra.Command{
	Use:   "check <recipe-id>",
	Short: "Show which ingredients are missing, low or available",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		recipe, err := a.service.GetRecipe(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("recipe %s: %w", args[0], err)
		}
		avail := a.service.RecipeAvailability(cmd.Context(), recipe.ID)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d missing, %d low, %d available\n",
			recipe.Name, len(avail.Missing), len(avail.LowStock), len(avail.Available))
		for _, ing := range avail.Missing {
			fmt.Fprintf(out, "  missing  %s\n", ing.Name)
		}
		for _, ing := range avail.LowStock {
			fmt.Fprintf(out, "  low      %s\n", ing.Name)
		}
		return nil
	},
}

var importSave bool

var recipesImportCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Parse a recipe page and print the draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		recipe, err := a.service.ImportRecipe(cmd.Context(), args[0], importSave)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), recipe)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace all data with the bundled default content",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		return a.service.ResetToDefaults(cmd.Context())
	},
}

func init() {
	shoppingGenerateCmd.Flags().StringVar(&generateStart, "start", "", "First day of the range (YYYY-MM-DD)")
	shoppingGenerateCmd.Flags().StringVar(&generateEnd, "end", "", "Last day of the range (YYYY-MM-DD)")
	shoppingCmd.AddCommand(shoppingGenerateCmd)

	recipesImportCmd.Flags().BoolVar(&importSave, "save", false, "Store the imported recipe")
	recipesCmd.AddCommand(recipesCheckCmd, recipesImportCmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
