package main

import (
	"log"
	"os"

	"companion-chat-be/internal/model"
	"companion-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedDocument struct {
	Source string
	Title  string
	Body   string
}

// Starter library of secular wellbeing material. Bodies are intentionally
// short; real deployments ingest full documents over the API so the
// consumer pipeline handles chunking and embedding.
var seedDocuments = []seedDocument{
	{
		Source: "sleep-basics",
		Title:  "Sleep and Late-Night Worry",
		Body: `Racing thoughts at night are common and usually harmless. A short wind-down ` +
			`routine before bed, keeping the same wake time every day, and writing worries ` +
			`down on paper can all reduce the time it takes to fall asleep. If a thought keeps ` +
			`returning, naming it once and setting it aside for tomorrow tends to work better ` +
			`than arguing with it.`,
	},
	{
		Source: "stress-basics",
		Title:  "Noticing Stress Early",
		Body: `Stress often shows up in the body before it shows up in words: a tight jaw, ` +
			`shallow breathing, or restlessness. Checking in with the body a few times a day ` +
			`makes it easier to catch tension early. Slowing the exhale for a minute or two ` +
			`is one of the fastest ways to settle the nervous system.`,
	},
	{
		Source: "thought-patterns",
		Title:  "Thoughts Are Not Facts",
		Body: `A difficult thought is an event in the mind, not a verdict about reality. ` +
			`Putting a little distance between yourself and a thought, for example saying ` +
			`"I notice I'm having the thought that ...", makes it easier to decide whether ` +
			`the thought deserves attention. Feelings are real, but the stories attached to ` +
			`them are often incomplete.`,
	},
	{
		Source: "routine-basics",
		Title:  "Small Routines, Steady Mood",
		Body: `Mood tends to follow behavior more than the other way around. Small, repeatable ` +
			`actions such as a short walk, a regular meal time, or a few minutes of quiet ` +
			`reflection anchor the day. Consistency matters more than intensity; a two-minute ` +
			`habit kept daily beats an hour kept once.`,
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding knowledge documents...")

	created, skipped := 0, 0
	for _, doc := range seedDocuments {
		var existing model.KnowledgeDocument
		err := db.Where("source = ?", doc.Source).First(&existing).Error
		if err == nil {
			color.Yellow("  skip: %s (already seeded)", doc.Source)
			skipped++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			color.Red("  fail: %s: %v", doc.Source, err)
			os.Exit(1)
		}

		record := model.KnowledgeDocument{
			Source: doc.Source,
			Title:  doc.Title,
			Body:   doc.Body,
		}
		if err := db.Create(&record).Error; err != nil {
			color.Red("  fail: %s: %v", doc.Source, err)
			os.Exit(1)
		}
		color.Green("  seed: %s (%s)", doc.Source, doc.Title)
		created++
	}

	color.Cyan("Done. %d created, %d skipped.", created, skipped)
	if created > 0 {
		color.Yellow("Note: chunks are built by the ingest consumer; re-ingest seeded documents over the API to embed them.")
	}
}
