package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"disruption-sync/core/config"
	"disruption-sync/core/source"
	"disruption-sync/core/storage"
	"disruption-sync/feature/disruption/decode"
)

// Decodes event files without touching the database and reports what each one carries.
// Usage: debug_event <log-pattern>
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_event <log-pattern>")
	}
	pattern := os.Args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	var src source.Source = source.NewFileSource(pattern)
	if source.IsObjectPattern(pattern) {
		bucket, objects, err := source.ParseObjectPattern(pattern)
		if err != nil {
			log.Fatal(err)
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			log.Fatal(err)
		}
		src = source.NewObjectSource(client, bucket, objects)
	}

	decoder, err := decode.NewDecoder()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	fmt.Println("=== Listing event files ===")
	names, err := src.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Found %d files\n", len(names))

	fmt.Println("\n=== Decoding ===")
	byKind := map[string]int{}
	failures := map[string]string{}
	for _, name := range names {
		rc, err := src.Open(ctx, name)
		if err != nil {
			log.Fatal(err)
		}
		record, err := decoder.Decode(rc)
		rc.Close()
		if err != nil {
			fmt.Printf("FAILED %s: %v\n", name, err)
			failures[name] = err.Error()
			continue
		}
		byKind[record.Kind.String()]++
		fmt.Printf("%s: kind=%s organization=%s industry=%d segments=%d competitors=%d\n",
			name, record.Kind, record.OrganizationID, record.IndustryID, len(record.SegmentIDs), len(record.CompetitorIDs))
	}

	output := map[string]interface{}{
		"files":    len(names),
		"by_kind":  byKind,
		"failures": failures,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_event.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_event.json for details.")
}
