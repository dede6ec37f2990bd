package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mealprep",
	Short: "Meal planning, pantry and shopping list service",
	Long: `mealprep tracks a household's inventory, recipes, meal plan, freezer
stock and leftovers, and builds shopping lists from the plan.

Configuration is read from the environment and an optional .env file.

Examples:
  # Run the HTTP API
  mealprep serve

  # Build the shopping list for next week
  mealprep shopping generate --start 2024-05-13 --end 2024-05-19

  # Check which ingredients a recipe is missing
  mealprep recipes check 0b6f...`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, shoppingCmd, recipesCmd, resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
