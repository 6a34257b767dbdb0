package mpd_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pior/mpd"
	"github.com/pior/mpd/sticker"
)

func ExampleNewClient() {
	client, err := mpd.NewClient(mpd.NewStaticServers("localhost:6600"), mpd.Config{
		MaxSize:             4,
		MaxConnIdleTime:     5 * time.Minute,
		HealthCheckInterval: time.Minute,
		Logger:              slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	song := sticker.Song("Artist/Album/01 Track.flac")

	if err := client.StickerSet(ctx, song, "rating", "5"); err != nil {
		log.Fatal(err)
	}

	rating, found, err := client.StickerGet(ctx, song, "rating")
	if err != nil {
		log.Fatal(err)
	}
	if found {
		fmt.Println("rating:", rating)
	}
}

func ExampleClient_StickerFindValue() {
	client, err := mpd.NewClient(mpd.NewStaticServers("/run/mpd/socket"), mpd.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	// Songs under Jazz/ rated above 3
	found, err := client.StickerFindValue(context.Background(), sticker.TypeSong, "Jazz", "rating", sticker.OpIntGreater, "3")
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range found {
		fmt.Println(f.URI, f.Value)
	}
}

// Example using circuit breakers, one per server
func ExampleNewCircuitBreakerConfig() {
	servers := mpd.NewStaticServers("mpd1:6600", "mpd2:6600")

	client, err := mpd.NewClient(servers, mpd.Config{
		NewCircuitBreaker: mpd.NewCircuitBreakerConfig(
			3,              // requests allowed in half-open state
			time.Minute,    // interval to reset failure counts
			10*time.Second, // open state duration before half-open
		),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	_ = client.StickerInc(context.Background(), sticker.Song("a.flac"), "plays", 1)

	for _, serverStats := range client.AllPoolStats() {
		fmt.Printf("Server: %s\n", serverStats.Addr)
		fmt.Printf("  Circuit Breaker: %s\n", serverStats.CircuitBreakerState)
		fmt.Printf("  Total Connections: %d\n", serverStats.PoolStats.TotalConns)
	}
}

// Example driving a single connection with the sticker package
func ExampleDial() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := mpd.Dial(ctx, "localhost:6600")
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := sticker.SendList(conn, sticker.Song("a.flac")); err != nil {
		log.Fatal(err)
	}
	for s, err := range sticker.All(conn) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s.Name, s.Value)
	}
}
