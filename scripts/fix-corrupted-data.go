package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/petbot/internal/entities"
)

// repair is one pending fix: a whole key to delete, hash fields to drop, or
// leaderboard members to remove
type repair struct {
	key     string
	fields  []string
	members []string
	reason  string
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted pet data...")

	var repairs []repair
	checked := 0

	iter := client.Scan(ctx, 0, "pet:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		checked++

		var found []repair
		switch {
		case strings.Contains(key, ":state:"):
			found = checkState(ctx, client, key)
		case strings.Contains(key, ":inv:"):
			found = checkInventory(ctx, client, key)
		case strings.HasSuffix(key, ":weights"):
			found = checkLeaderboard(ctx, client, key)
		}
		repairs = append(repairs, found...)
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d problems\n", checked, len(repairs))

	if len(repairs) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nProblems:")
	for _, r := range repairs {
		fmt.Printf("  - %s: %s\n", r.key, r.reason)
	}

	// Ask for confirmation before repairing
	fmt.Print("\nDo you want to REPAIR these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, r := range repairs {
		var err error
		switch {
		case len(r.fields) > 0:
			err = client.HDel(ctx, r.key, r.fields...).Err()
		case len(r.members) > 0:
			members := make([]interface{}, len(r.members))
			for i, m := range r.members {
				members[i] = m
			}
			err = client.ZRem(ctx, r.key, members...).Err()
		default:
			err = client.Del(ctx, r.key).Err()
		}
		if err != nil {
			fmt.Printf("Failed to repair %s: %v\n", r.key, err)
			continue
		}
		fmt.Printf("Repaired %s\n", r.key)
	}
	fmt.Println("\nCleanup complete!")
}

// checkState flags state documents that no longer decode
func checkState(ctx context.Context, client *redis.Client, key string) []repair {
	data, err := client.Get(ctx, key).Result()
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", key, err)
		return nil
	}

	var state entities.PlayerState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		fmt.Printf("✗ Corrupted JSON in %s\n", key)
		return []repair{{key: key, reason: "state is not valid JSON"}}
	}
	return nil
}

// checkInventory flags quantities that are not positive integers; the store
// refuses to load such inventories
func checkInventory(ctx context.Context, client *redis.Client, key string) []repair {
	fields, err := client.HGetAll(ctx, key).Result()
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", key, err)
		return nil
	}

	var bad []string
	for item, raw := range fields {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 1 {
			fmt.Printf("✗ Bad quantity in %s: %s=%q\n", key, item, raw)
			bad = append(bad, item)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return []repair{{key: key, fields: bad, reason: fmt.Sprintf("%d bad item quantities", len(bad))}}
}

// checkLeaderboard flags members whose creature is dead or missing
func checkLeaderboard(ctx context.Context, client *redis.Client, key string) []repair {
	members, err := client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", key, err)
		return nil
	}

	prefix := strings.TrimSuffix(key, "weights")
	var stale []string
	for _, member := range members {
		data, err := client.Get(ctx, prefix+"state:"+member).Result()
		if err != nil {
			stale = append(stale, member)
			continue
		}
		var state entities.PlayerState
		if err := json.Unmarshal([]byte(data), &state); err != nil || !state.Alive() {
			stale = append(stale, member)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	fmt.Printf("✗ Stale leaderboard members in %s: %v\n", key, stale)
	return []repair{{key: key, members: stale, reason: fmt.Sprintf("%d dead or missing creatures ranked", len(stale))}}
}
