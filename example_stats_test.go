package mpd_test

import (
	"context"
	"fmt"

	"github.com/pior/mpd"
	"github.com/pior/mpd/sticker"
)

// Example collecting client stats, for CLI tools
func ExampleClient_Stats() {
	client, err := mpd.NewClient(mpd.NewStaticServers("localhost:6600"), mpd.Config{})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	ctx := context.Background()

	_ = client.StickerSet(ctx, sticker.Song("a.flac"), "rating", "5")
	_, _, _ = client.StickerGet(ctx, sticker.Song("a.flac"), "rating")
	_, _, _ = client.StickerGet(ctx, sticker.Song("b.flac"), "rating") // no such sticker

	stats := client.Stats()

	fmt.Printf("Operations:\n")
	fmt.Printf("  Gets: %d\n", stats.Gets)
	fmt.Printf("  Sets: %d\n", stats.Sets)
	fmt.Printf("  Deletes: %d\n", stats.Deletes)
	fmt.Printf("  Finds: %d\n", stats.Finds)
	if stats.Gets > 0 {
		fmt.Printf("  Hit Rate: %.2f%%\n", float64(stats.GetHits)/float64(stats.Gets)*100)
	}
	fmt.Printf("  Errors: %d\n", stats.Errors)
}

// Example collecting pool stats
func ExampleClient_AllPoolStats() {
	client, err := mpd.NewClient(mpd.NewStaticServers("localhost:6600"), mpd.Config{MaxSize: 8})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	_ = client.Ping(context.Background())

	for _, serverStats := range client.AllPoolStats() {
		poolStats := serverStats.PoolStats
		fmt.Printf("Server: %s\n", serverStats.Addr)
		fmt.Printf("  Total Connections: %d\n", poolStats.TotalConns)
		fmt.Printf("  Idle Connections: %d\n", poolStats.IdleConns)
		fmt.Printf("  Connections Created: %d\n", poolStats.CreatedConns)
		fmt.Printf("  Connections Destroyed: %d\n", poolStats.DestroyedConns)
		if poolStats.AcquireWaitCount > 0 {
			fmt.Printf("  Average Wait: %dns\n", poolStats.AcquireWaitTimeNs/poolStats.AcquireWaitCount)
		}
	}
}
