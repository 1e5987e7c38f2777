package service

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bayleafwalker/operator-upgradepath/internal/planner"
)

// Request selects one package of one catalog.
type Request struct {
	Catalog     string
	Package     string
	Channel     string
	FromVersion string
}

func (r Request) Struct() (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		"catalog":     r.Catalog,
		"package":     r.Package,
		"channel":     r.Channel,
		"fromVersion": r.FromVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return s, nil
}

// RequestFromStruct decodes a request. Fields that are present must be strings.
func RequestFromStruct(s *structpb.Struct) (Request, error) {
	var r Request
	for key, dst := range map[string]*string{
		"catalog":     &r.Catalog,
		"package":     &r.Package,
		"channel":     &r.Channel,
		"fromVersion": &r.FromVersion,
	} {
		v, ok := s.GetFields()[key]
		if !ok {
			continue
		}
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return Request{}, fmt.Errorf("field %q must be a string", key)
		}
		*dst = sv.StringValue
	}
	return r, nil
}

// ChannelResult is the frontier of one channel.
type ChannelResult struct {
	Name       string
	Frontier   []string
	Path       string
	SkipRanges []string
}

// Response carries the frontiers computed for a package.
type Response struct {
	Package        string
	DefaultChannel string
	Channels       []ChannelResult
}

// ResponseFromEvaluation converts a planner evaluation.
func ResponseFromEvaluation(ev *planner.Evaluation) *Response {
	resp := &Response{
		Package:        ev.Report.Name,
		DefaultChannel: ev.Report.DefaultChannel,
	}
	for _, ch := range ev.Report.Channels {
		resp.Channels = append(resp.Channels, ChannelResult{
			Name:       ch.Frontier.Channel,
			Frontier:   ch.Frontier.Names(),
			Path:       ch.Frontier.Path(),
			SkipRanges: ch.Frontier.SkipRanges,
		})
	}
	return resp
}

func (r *Response) Struct() (*structpb.Struct, error) {
	channels := make([]interface{}, 0, len(r.Channels))
	for _, ch := range r.Channels {
		channels = append(channels, map[string]interface{}{
			"name":       ch.Name,
			"frontier":   stringList(ch.Frontier),
			"path":       ch.Path,
			"skipRanges": stringList(ch.SkipRanges),
		})
	}
	s, err := structpb.NewStruct(map[string]interface{}{
		"package":        r.Package,
		"defaultChannel": r.DefaultChannel,
		"channels":       channels,
	})
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return s, nil
}

// ResponseFromStruct decodes a response. Missing fields decode as zero values.
func ResponseFromStruct(s *structpb.Struct) *Response {
	f := s.GetFields()
	resp := &Response{
		Package:        f["package"].GetStringValue(),
		DefaultChannel: f["defaultChannel"].GetStringValue(),
	}
	for _, v := range f["channels"].GetListValue().GetValues() {
		cf := v.GetStructValue().GetFields()
		resp.Channels = append(resp.Channels, ChannelResult{
			Name:       cf["name"].GetStringValue(),
			Frontier:   fromList(cf["frontier"]),
			Path:       cf["path"].GetStringValue(),
			SkipRanges: fromList(cf["skipRanges"]),
		})
	}
	return resp
}

func stringList(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func fromList(v *structpb.Value) []string {
	values := v.GetListValue().GetValues()
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, item := range values {
		out[i] = item.GetStringValue()
	}
	return out
}
