package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/spf13/afero"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/operator-upgradepath/internal/catalog"
	"github.com/bayleafwalker/operator-upgradepath/internal/config"
	"github.com/bayleafwalker/operator-upgradepath/internal/frontier"
	"github.com/bayleafwalker/operator-upgradepath/internal/planner"
	"github.com/bayleafwalker/operator-upgradepath/internal/report"
	"github.com/bayleafwalker/operator-upgradepath/internal/service"
)

var setupLog = ctrl.Log.WithName("setup")

func main() {
	var listenAddr string
	var workingDir string

	flag.StringVar(&listenAddr, "listen", ":50051", "address to listen on")
	flag.StringVar(&workingDir, "working-dir", config.DefaultWorkingDir(), "directory holding extracted catalogs")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		setupLog.Error(err, "unable to listen", "address", listenAddr)
		os.Exit(1)
	}

	fsys := afero.NewOsFs()
	p := planner.New(
		fsys,
		catalog.NewCache(fsys, workingDir),
		frontier.NewDefault(),
		report.NewReporter(os.Stdout, false),
		ctrl.Log.WithName("planner"),
		planner.Options{SkipManifest: true},
	)
	grpcServer, _ := service.NewGRPCServer(service.NewServer(p, ctrl.Log.WithName("service")))

	ctx := ctrl.SetupSignalHandler()
	go func() {
		<-ctx.Done()
		setupLog.Info("shutting down")
		grpcServer.GracefulStop()
	}()

	setupLog.Info("serving", "address", lis.Addr().String(), "workingDir", workingDir)
	if err := grpcServer.Serve(lis); err != nil {
		setupLog.Error(fmt.Errorf("grpc serve: %w", err), "problem running server")
		os.Exit(1)
	}
}
