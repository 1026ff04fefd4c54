// Command hooksim sends signed sample GitHub webhooks to a running receiver.
//
// Usage:
//
//	go run ./cmd/hooksim -kind all
//	go run ./cmd/hooksim -url http://localhost:8080/webhook/receiver -kind merged -author carol
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spidyshivam/webhook-repo/internal/webhook"
)

var allKinds = []string{"ping", "push", "opened", "merged", "closed"}

func main() {
	url := flag.String("url", "http://localhost:8080/webhook/receiver", "receiver endpoint")
	secret := flag.String("secret", os.Getenv("GITHUB_WEBHOOK_SECRET"), "shared webhook secret; empty sends unsigned requests")
	kind := flag.String("kind", "all", "sample to send: "+strings.Join(allKinds, ", ")+" or all")
	author := flag.String("author", "octocat", "actor login")
	from := flag.String("from", "feature", "pull request head branch")
	to := flag.String("to", "main", "target branch")
	flag.Parse()

	kinds := []string{*kind}
	if *kind == "all" {
		kinds = allKinds
	}

	client := &http.Client{Timeout: 10 * time.Second}
	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	params := sampleParams{Author: *author, From: *from, To: *to}

	failed := false
	for _, k := range kinds {
		params.Now = time.Now()
		s, err := buildSample(k, params, r)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := send(client, *url, *secret, s); err != nil {
			log.Printf("%-7s -> %v", k, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func send(client *http.Client, url, secret string, s sample) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(s.Body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	deliveryID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.EventHeader, s.Event)
	req.Header.Set("X-GitHub-Delivery", deliveryID)
	if secret != "" {
		req.Header.Set(webhook.SignatureHeader, webhook.Sign(s.Body, secret))
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	fmt.Printf("[%s] %-12s -> %d %s\n", truncate(deliveryID, 8), s.Event, resp.StatusCode, strings.TrimSpace(string(body)))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("receiver answered %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
