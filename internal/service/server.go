// Package service exposes frontier computation over gRPC so other tools can
// query an upgrade path without reading the catalog cache themselves.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-logr/logr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bayleafwalker/operator-upgradepath/api/v1alpha1"
	"github.com/bayleafwalker/operator-upgradepath/internal/catalog"
	"github.com/bayleafwalker/operator-upgradepath/internal/frontier"
	"github.com/bayleafwalker/operator-upgradepath/internal/planner"
	"github.com/bayleafwalker/operator-upgradepath/internal/semver"
)

// Evaluator computes the frontiers of one package.
type Evaluator interface {
	Evaluate(catalogRef string, spec frontier.Spec) (*planner.Evaluation, error)
}

// Server implements UpgradePathServer on top of an Evaluator.
type Server struct {
	eval Evaluator
	log  logr.Logger
}

func NewServer(eval Evaluator, log logr.Logger) *Server {
	return &Server{eval: eval, log: log}
}

// NewGRPCServer returns a grpc.Server serving srv and the standard health
// service, with the UpgradePath service reported as SERVING.
func NewGRPCServer(srv UpgradePathServer, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	gs := grpc.NewServer(opts...)
	RegisterUpgradePathServer(gs, srv)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs, hs
}

func (s *Server) Compute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "request is nil")
	}
	req, err := RequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if strings.TrimSpace(req.Catalog) == "" {
		return nil, status.Error(codes.InvalidArgument, "catalog is required")
	}
	if strings.TrimSpace(req.Package) == "" {
		return nil, status.Error(codes.InvalidArgument, "package is required")
	}
	if req.FromVersion != "" {
		if _, err := semver.ParseLenient(req.FromVersion); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	spec := frontier.Spec{
		Name:        strings.TrimSpace(req.Package),
		Channel:     strings.TrimSpace(req.Channel),
		FromVersion: strings.TrimSpace(req.FromVersion),
	}
	log := s.log.WithValues("catalog", req.Catalog, "package", spec.Name, "channel", spec.Channel)

	ev, err := s.eval.Evaluate(req.Catalog, spec)
	if err != nil {
		log.Error(err, "compute failed")
		return nil, toStatus(err)
	}
	if !ev.ChannelFound {
		return nil, status.Errorf(codes.NotFound, "package %q has no channel %q", spec.Name, spec.Channel)
	}
	log.V(1).Info("computed", "channels", len(ev.Report.Channels))

	out, err := ResponseFromEvaluation(ev).Struct()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, catalog.ErrCatalogNotCached), errors.Is(err, catalog.ErrPackageNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, v1alpha1.ErrInvalidCatalogRef), errors.Is(err, frontier.ErrInvalidFromVersion):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
