package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bayleafwalker/operator-upgradepath/internal/service"
)

func main() {
	var target string
	var requests int
	var concurrency int
	var req service.Request

	flag.StringVar(&target, "target", "127.0.0.1:50051", "gRPC server address")
	flag.IntVar(&requests, "requests", 100, "Number of Compute requests to send")
	flag.IntVar(&concurrency, "concurrency", 10, "Requests in flight at once")
	flag.StringVar(&req.Catalog, "catalog", "", "catalog image reference")
	flag.StringVar(&req.Package, "package", "", "package name")
	flag.StringVar(&req.FromVersion, "from-version", "", "installed version")
	flag.Parse()

	if concurrency < 1 {
		concurrency = 1
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Error dialing %s: %v", target, err)
	}
	defer conn.Close()
	client := service.NewClient(conn)

	fmt.Printf("Starting load test: %d requests, %d concurrent, package %s\n", requests, concurrency, req.Package)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	latencies := make(chan time.Duration, requests)
	failures := make(chan error, requests)
	start := time.Now()

	for i := 0; i < requests; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			callStart := time.Now()
			if _, err := client.Compute(ctx, req); err != nil {
				failures <- err
				return
			}
			latencies <- time.Since(callStart)
		}()
	}

	wg.Wait()
	close(latencies)
	close(failures)
	totalDuration := time.Since(start)

	var samples []time.Duration
	for l := range latencies {
		samples = append(samples, l)
	}
	failed := 0
	for err := range failures {
		if failed == 0 {
			fmt.Printf("First error: %v\n", err)
		}
		failed++
	}

	if len(samples) == 0 {
		fmt.Printf("Load test completed in %v. No request succeeded (%d failed).\n", totalDuration, failed)
		return
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	var total time.Duration
	for _, l := range samples {
		total += l
	}
	fmt.Printf("Load test completed in %v. ok=%d failed=%d avg=%v p50=%v p99=%v\n",
		totalDuration, len(samples), failed,
		total/time.Duration(len(samples)),
		samples[len(samples)/2],
		samples[(len(samples)*99)/100],
	)
}
