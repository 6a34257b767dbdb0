package mpd

import (
	"context"
	"testing"

	"github.com/pior/mpd/internal/testutils"
)

func benchConstructor(ctx context.Context) (*Connection, error) {
	return NewConnection(testutils.NewConnectionMock()), nil
}

// BenchmarkPool_Acquire_Creation benchmarks acquiring from an empty pool (creation path)
func BenchmarkPool_Acquire_Creation(b *testing.B) {
	for name, factory := range poolFactories {
		b.Run(name, func(b *testing.B) {
			ctx := context.Background()

			for b.Loop() {
				pool, err := factory(benchConstructor, 1)
				if err != nil {
					b.Fatal(err)
				}

				res, err := pool.Acquire(ctx)
				if err != nil {
					b.Fatal(err)
				}

				res.Destroy()
				pool.Close()
			}
		})
	}
}

// BenchmarkPool_Acquire_FastPath benchmarks acquiring an idle connection (fast path)
func BenchmarkPool_Acquire_FastPath(b *testing.B) {
	for name, factory := range poolFactories {
		b.Run(name, func(b *testing.B) {
			ctx := context.Background()

			pool, err := factory(benchConstructor, 1)
			if err != nil {
				b.Fatal(err)
			}
			defer pool.Close()

			res, err := pool.Acquire(ctx)
			if err != nil {
				b.Fatal(err)
			}
			res.Release()

			for b.Loop() {
				res, err := pool.Acquire(ctx)
				if err != nil {
					b.Fatal(err)
				}
				res.Release()
			}
		})
	}
}

// BenchmarkPool_Acquire_Parallel benchmarks contention on a small pool
func BenchmarkPool_Acquire_Parallel(b *testing.B) {
	for name, factory := range poolFactories {
		b.Run(name, func(b *testing.B) {
			ctx := context.Background()

			pool, err := factory(benchConstructor, 4)
			if err != nil {
				b.Fatal(err)
			}
			defer pool.Close()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					res, err := pool.Acquire(ctx)
					if err != nil {
						b.Fatal(err)
					}
					res.Release()
				}
			})
		})
	}
}
