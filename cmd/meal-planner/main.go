package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"meal-planner/internal/ai"
	"meal-planner/internal/app"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/dates"
	"meal-planner/internal/export"
	"meal-planner/internal/llm"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
	"meal-planner/internal/store"
	"meal-planner/internal/store/file"
	"meal-planner/internal/store/sqlite"

	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var textGen llm.TextGenerator
	var modelName string
	switch {
	case cfg.GroqAPIKey != "":
		textGen = llm.NewGroqClient(cfg.GroqAPIKey)
		modelName = "llama-3.3-70b-versatile"
	case cfg.GeminiAPIKey != "":
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
		modelName = "gemini-1.5-flash"
	}

	var planStore store.Store
	var metricsStore *metrics.Store
	switch cfg.StorageBackend {
	case "sqlite":
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		planStore = sqlite.NewStore(db.SQL)
		metricsStore = metrics.NewStore(db.SQL)
	case "file":
		fileStore, err := file.NewStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file store: %v", err)
		}
		planStore = fileStore
	}

	var recipeClipper *clipper.Clipper
	if textGen != nil {
		recipeClipper = clipper.NewClipper(textGen)
	}

	application := app.NewApp(cfg, planStore, ai.NewService(textGen), metricsStore, recipeClipper, modelName)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(ctx, application, cfg.DefaultUserID, os.Args[2:])
	case "show":
		runShow(ctx, application, cfg.DefaultUserID)
	case "shopping":
		runShopping(ctx, application, cfg.DefaultUserID)
	case "swap":
		runSwap(ctx, application, cfg.DefaultUserID, os.Args[2:])
	case "export":
		runExport(ctx, application, cfg.DefaultUserID, os.Args[2:])
	case "share":
		runShare(ctx, application, cfg.DefaultUserID)
	case "import":
		runImport(ctx, application, cfg.DefaultUserID, os.Args[2:])
	case "history":
		runHistory(ctx, application, cfg.DefaultUserID)
	case "delete":
		runDelete(ctx, application, cfg.DefaultUserID, os.Args[2:])
	case "prefs":
		runPrefs(ctx, application, cfg.DefaultUserID, os.Args[2:])
	case "metrics":
		runMetrics(application, os.Args[2:])
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := application.CleanupMetrics(*days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Removed metric records older than %d days.\n", *days)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, application *app.App, userID string, args []string) {
	genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	diet := genCmd.String("diet", "", "Diet type (balanced, vegetarian, vegan, keto, paleo, mediterranean, low-carb, high-protein)")
	servings := genCmd.Int("servings", 0, "Serving size per meal")
	available := genCmd.String("available", "", "Comma-separated ingredients you already have")
	requests := genCmd.String("requests", "", "Special requests passed to the AI")
	genCmd.Parse(args)

	req := planner.MealPlanRequest{
		AvailableIngredients: splitCSV(*available),
		SpecialRequests:      *requests,
	}
	if *diet != "" || *servings > 0 {
		prefs, err := application.Preferences(ctx, userID)
		if err != nil {
			log.Fatalf("Failed to load preferences: %v", err)
		}
		if *diet != "" {
			prefs.DietType = planner.Diet(*diet)
		}
		if *servings > 0 {
			prefs.ServingSize = *servings
		}
		req.Preferences = prefs
	}

	plan, source, err := application.GeneratePlan(ctx, userID, req)
	if err != nil {
		log.Fatalf("Plan generation failed: %v", err)
	}

	fmt.Println(export.PlanText(plan))
	if source == ai.SourceFallback {
		fmt.Println("(generated from the built-in catalog)")
	}
}

func runShow(ctx context.Context, application *app.App, userID string) {
	plan := mustCurrentPlan(ctx, application, userID)
	fmt.Println(export.PlanText(*plan))

	now := time.Now()
	window := dates.Window(plan.WeekOf)
	fmt.Printf("Covers %s.\n", dates.FormatRange(window))
	if dates.IsCurrentWeek(plan.WeekOf, now) {
		fmt.Printf("Plan is active for %d more day(s).\n", dates.DaysUntilExpiry(plan.WeekOf, now))
	} else {
		fmt.Println("This plan's week has ended. Run 'meal-planner generate' for a fresh one.")
	}
}

func runShopping(ctx context.Context, application *app.App, userID string) {
	items, err := application.ShoppingList(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to build shopping list: %v", err)
	}
	fmt.Println(shopping.ListText(items))
}

func runSwap(ctx context.Context, application *app.App, userID string, args []string) {
	swapCmd := flag.NewFlagSet("swap", flag.ExitOnError)
	day := swapCmd.String("day", "", "Day of the plan (e.g. Monday)")
	slot := swapCmd.String("slot", "", "Meal slot: breakfast, lunch, or dinner")
	hint := swapCmd.String("hint", "", "Optional search hint for alternatives")
	url := swapCmd.String("url", "", "Swap in a recipe clipped from this URL instead of an alternative")
	choice := swapCmd.Int("choice", 0, "1-based index of the alternative to use")
	swapCmd.Parse(args)

	if *day == "" || *slot == "" {
		log.Fatal("swap requires -day and -slot")
	}
	mealSlot := planner.Slot(*slot)

	if *url != "" {
		plan, err := application.SwapFromURL(ctx, userID, *day, mealSlot, *url)
		if err != nil {
			log.Fatalf("Swap from URL failed: %v", err)
		}
		fmt.Printf("Swapped %s %s for %s.\n", *day, mealSlot, plan.Meals[*day].Meal(mealSlot).Name)
		return
	}

	alternatives, err := application.Alternatives(ctx, userID, *day, mealSlot, *hint)
	if err != nil {
		log.Fatalf("Failed to fetch alternatives: %v", err)
	}

	if *choice == 0 {
		fmt.Printf("Alternatives for %s %s:\n", *day, mealSlot)
		for i, alt := range alternatives {
			fmt.Printf("  %d. %s - %s\n", i+1, alt.Name, alt.Description)
		}
		fmt.Println("Re-run with -choice N to apply one.")
		return
	}
	if *choice < 1 || *choice > len(alternatives) {
		log.Fatalf("choice must be between 1 and %d", len(alternatives))
	}

	plan, err := application.SwapMeal(ctx, userID, *day, mealSlot, alternatives[*choice-1])
	if err != nil {
		log.Fatalf("Swap failed: %v", err)
	}
	fmt.Printf("Swapped %s %s for %s.\n", *day, mealSlot, plan.Meals[*day].Meal(mealSlot).Name)
}

func runExport(ctx context.Context, application *app.App, userID string, args []string) {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	out := exportCmd.String("out", "", "Output path (defaults to the plan's canonical filename)")
	asCSV := exportCmd.Bool("csv", false, "Export as CSV instead of the portable plan format")
	exportCmd.Parse(args)

	if *asCSV {
		plan := mustCurrentPlan(ctx, application, userID)
		csv, err := export.PlanCSV(*plan)
		if err != nil {
			log.Fatalf("CSV export failed: %v", err)
		}
		path := *out
		if path == "" {
			path = strings.TrimSuffix(export.MPFileName(*plan), ".mp") + ".csv"
		}
		if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Exported plan to %s\n", path)
		return
	}

	payload, filename, err := application.ExportPlan(ctx, userID)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	path := *out
	if path == "" {
		path = filename
	}
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	fmt.Printf("Exported plan to %s\n", path)
}

func runShare(ctx context.Context, application *app.App, userID string) {
	plan := mustCurrentPlan(ctx, application, userID)
	path, err := export.SharePath(*plan)
	if err != nil {
		log.Fatalf("Failed to build share link: %v", err)
	}
	fmt.Println(path)
	fmt.Println("Anyone can import it with: meal-planner import -link <payload after /shared/>")
}

func runImport(ctx context.Context, application *app.App, userID string, args []string) {
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	in := importCmd.String("in", "", "Plan file to import")
	link := importCmd.String("link", "", "Shared plan payload to import instead of a file")
	importCmd.Parse(args)

	var plan planner.MealPlan
	var err error
	switch {
	case *link != "":
		plan, err = application.ImportShared(ctx, userID, *link)
	case *in != "":
		var data []byte
		data, err = os.ReadFile(*in)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *in, err)
		}
		plan, err = application.ImportPlan(ctx, userID, string(data))
	default:
		log.Fatal("import requires -in or -link")
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Imported plan %s (%s). It is now your current plan.\n", plan.ID, export.Summary(plan))
}

func runHistory(ctx context.Context, application *app.App, userID string) {
	entries, err := application.History(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to load history: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No stored plans.")
		return
	}
	for _, entry := range entries {
		marker := " "
		if entry.Current {
			marker = "*"
		}
		fmt.Printf("%s %s  week of %s  saved %s\n",
			marker, entry.ID,
			entry.WeekOf.Format("Jan 2, 2006"),
			entry.CreatedAt.Format("Jan 2, 2006 15:04"))
	}
}

func runDelete(ctx context.Context, application *app.App, userID string, args []string) {
	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	id := deleteCmd.String("id", "", "Plan ID to delete")
	deleteCmd.Parse(args)

	if *id == "" {
		log.Fatal("delete requires -id")
	}
	if err := application.DeletePlan(ctx, userID, *id); err != nil {
		log.Fatalf("Delete failed: %v", err)
	}
	fmt.Printf("Deleted plan %s.\n", *id)
}

func runPrefs(ctx context.Context, application *app.App, userID string, args []string) {
	prefsCmd := flag.NewFlagSet("prefs", flag.ExitOnError)
	diet := prefsCmd.String("diet", "", "Diet type")
	servings := prefsCmd.Int("servings", 0, "Serving size per meal")
	allergies := prefsCmd.String("allergies", "", "Comma-separated allergies")
	dislikes := prefsCmd.String("dislikes", "", "Comma-separated disliked foods")
	budget := prefsCmd.String("budget", "", "Budget range: low, medium, or high")
	prefsCmd.Parse(args)

	prefs, err := application.Preferences(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to load preferences: %v", err)
	}

	changed := false
	if *diet != "" {
		prefs.DietType = planner.Diet(*diet)
		changed = true
	}
	if *servings > 0 {
		prefs.ServingSize = *servings
		changed = true
	}
	if *allergies != "" {
		prefs.Allergies = splitCSV(*allergies)
		changed = true
	}
	if *dislikes != "" {
		prefs.Dislikes = splitCSV(*dislikes)
		changed = true
	}
	if *budget != "" {
		prefs.BudgetRange = planner.BudgetRange(*budget)
		changed = true
	}

	if changed {
		if err := application.SavePreferences(ctx, userID, prefs); err != nil {
			log.Fatalf("Failed to save preferences: %v", err)
		}
		fmt.Println("Preferences saved.")
	}

	fmt.Printf("Diet: %s\nServings: %d\nAllergies: %s\nDislikes: %s\nBudget: %s\n",
		prefs.DietType, prefs.ServingSize,
		joinOrNone(prefs.Allergies), joinOrNone(prefs.Dislikes), prefs.BudgetRange)
}

func runMetrics(application *app.App, args []string) {
	metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
	days := metricsCmd.Int("days", 7, "Number of days to report")
	metricsCmd.Parse(args)

	usage, health, err := application.UsageReport(*days)
	if err != nil {
		log.Fatalf("Failed to load metrics: %v", err)
	}

	fmt.Printf("Generations, last %d days:\n", *days)
	if len(usage) == 0 {
		fmt.Println("  none recorded")
	}
	for _, day := range usage {
		fmt.Printf("  %s: %d total, %d via AI, avg %d ms\n", day.Date, day.Generations, day.AIGenerated, day.AvgLatencyMS)
	}
	fmt.Printf("\nProcess: %d goroutines, %d MB allocated, %d GC cycles, data dir %s\n",
		health.Goroutines, health.AllocMB, health.NumGC, health.DataSize)
}

func mustCurrentPlan(ctx context.Context, application *app.App, userID string) *planner.MealPlan {
	plan, err := application.CurrentPlan(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to load current plan: %v", err)
	}
	if plan == nil {
		log.Fatal("No current plan. Run 'meal-planner generate' first.")
	}
	return plan
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate          Generate a new weekly plan")
	fmt.Println("  show              Print the current plan")
	fmt.Println("  shopping          Print the shopping list for the current plan")
	fmt.Println("  swap              Swap one meal for an alternative or a clipped recipe")
	fmt.Println("  export            Export the current plan to a file")
	fmt.Println("  share             Print a shareable link path for the current plan")
	fmt.Println("  import            Import a plan from a file or share link")
	fmt.Println("  history           List stored plans")
	fmt.Println("  delete            Delete a stored plan")
	fmt.Println("  prefs             Show or update dietary preferences")
	fmt.Println("  metrics           Show generation usage and process health")
	fmt.Println("  metrics-cleanup   Remove old metric records")
}
