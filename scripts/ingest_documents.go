package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"talentmatch/ai-service/internal/config"
	"talentmatch/ai-service/internal/repositories"
	"talentmatch/ai-service/internal/services"
)

// Bulk-loads a job description and a folder of resume text files into
// Postgres so the match endpoint has data to rank against.
func main() {
	jobFile := flag.String("job", "./reference_docs/job_description.txt", "path to the job description text file")
	jobID := flag.String("job-id", "", "identifier to store the job under (generated when empty)")
	cvDir := flag.String("cv-dir", "./reference_docs/cvs", "directory of candidate resume .txt files")
	flag.Parse()

	if *jobID == "" {
		*jobID = uuid.NewString()
	}

	log.Println("🚀 Starting document ingestion...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	candidateRepo := repositories.NewCandidateRepository(db)
	jobRepo := repositories.NewJobRepository(db)

	embedder, err := services.NewEmbeddingService(
		cfg.Gemini.APIKey,
		cfg.Gemini.EmbedModel,
		cfg.Retry.MaxAttempts,
		cfg.Retry.InitialDelay,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding service: %v", err)
	}

	ctx := context.Background()

	successCount := 0
	failCount := 0

	// Job description first so candidates have something to match against.
	log.Printf("\n📄 Processing job description: %s", *jobFile)
	jdText, err := os.ReadFile(*jobFile)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}

	jdNormalized := services.NormalizeForEmbedding(string(jdText))
	jdEmbedding, err := embedder.EmbedText(ctx, jdNormalized)
	if err != nil {
		log.Fatalf("❌ Failed to embed job description: %v", err)
	}

	if _, err := jobRepo.Upsert(*jobID, jdNormalized, jdEmbedding); err != nil {
		log.Fatalf("❌ Failed to store job description: %v", err)
	}
	log.Printf("   ✅ Stored job %s", *jobID)

	// Each resume file becomes one candidate keyed by its base name.
	cvFiles, err := filepath.Glob(filepath.Join(*cvDir, "*.txt"))
	if err != nil {
		log.Fatalf("❌ Failed to list resume files: %v", err)
	}
	if len(cvFiles) == 0 {
		log.Fatalf("❌ No .txt resume files found in %s", *cvDir)
	}

	for _, path := range cvFiles {
		userID := strings.TrimSuffix(filepath.Base(path), ".txt")
		log.Printf("\n📄 Processing candidate: %s", userID)

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			failCount++
			continue
		}

		normalized := services.NormalizeForEmbedding(string(content))
		embedding, err := embedder.EmbedText(ctx, normalized)
		if err != nil {
			log.Printf("   ❌ Failed to embed resume: %v", err)
			failCount++
			continue
		}

		if _, err := candidateRepo.Upsert(userID, normalized, embedding); err != nil {
			log.Printf("   ❌ Failed to store candidate: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored candidate %s", userID)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d candidates", successCount)
	log.Printf("   ❌ Failed: %d candidates", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some resumes failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
