package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bayleafwalker/operator-upgradepath/internal/service"
)

func main() {
	var target string
	var req service.Request
	flag.StringVar(&target, "target", "127.0.0.1:50051", "gRPC server address")
	flag.StringVar(&req.Catalog, "catalog", "", "catalog image reference")
	flag.StringVar(&req.Package, "package", "", "package name")
	flag.StringVar(&req.Channel, "channel", "", "channel name (default all channels)")
	flag.StringVar(&req.FromVersion, "from-version", "", "installed version")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Errorf("dial %s: %w", target, err))
	}
	defer conn.Close()

	resp, err := service.NewClient(conn).Compute(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compute error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("operator '%s'\n", resp.Package)
	fmt.Printf("  defaultChannel %s\n", resp.DefaultChannel)
	for _, ch := range resp.Channels {
		fmt.Printf("  channel name %s\n", ch.Name)
		fmt.Printf("    from %s\n", ch.Path)
		if len(ch.SkipRanges) > 0 {
			fmt.Printf("    skip_range [%s]\n", strings.Join(ch.SkipRanges, ", "))
		}
	}
}
