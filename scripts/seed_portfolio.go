package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/internal/localstore"
)

// Seeds the site with the built-in default document, or with the JSON file
// named by the first argument.
func main() {
	fmt.Println("seeding portfolio document...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	endpoint := os.Getenv("PORTFOLIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}
	secret := os.Getenv("PORTFOLIO_API_SECRET")
	if secret == "" {
		log.Fatal("PORTFOLIO_API_SECRET is required")
	}

	body, err := portfolio.Encode(localstore.Default())
	if err != nil {
		log.Fatalf("cannot encode default document: %v", err)
	}
	if len(os.Args) > 1 {
		body, err = os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("cannot read %s: %v", os.Args[1], err)
		}
		if _, err := portfolio.Parse(body); err != nil {
			log.Fatalf("%s is not a portfolio document: %v", os.Args[1], err)
		}
	}

	req, err := http.NewRequest(http.MethodPut, endpoint+"/api/portfolio", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("cannot build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
	if err != nil {
		log.Fatalf("cannot reach %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("seed rejected: HTTP %d %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	fmt.Printf("seeded portfolio at %s successfully!\n", endpoint)
}
