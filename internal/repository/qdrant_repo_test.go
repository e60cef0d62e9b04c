package repository

import (
	"errors"
	"testing"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestParsePayload(t *testing.T) {
	payload := map[string]*pb.Value{
		"description":  {Kind: &pb.Value_StringValue{StringValue: "a cat on a sofa"}},
		"source_path":  {Kind: &pb.Value_StringValue{StringValue: "/data/photos/cat.jpg"}},
		"display_name": {Kind: &pb.Value_StringValue{StringValue: "cat.jpg"}},
	}

	p := parsePayload(payload)
	if p == nil {
		t.Fatal("expected payload, got nil")
	}
	if p.Description != "a cat on a sofa" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.SourcePath != "/data/photos/cat.jpg" {
		t.Errorf("SourcePath = %q", p.SourcePath)
	}
	if p.DisplayName != "cat.jpg" {
		t.Errorf("DisplayName = %q", p.DisplayName)
	}
}

func TestParsePayloadPartial(t *testing.T) {
	p := parsePayload(map[string]*pb.Value{
		"description": {Kind: &pb.Value_StringValue{StringValue: "only description"}},
	})
	if p.Description != "only description" || p.SourcePath != "" || p.DisplayName != "" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestParsePayloadNil(t *testing.T) {
	if p := parsePayload(nil); p != nil {
		t.Errorf("expected nil, got %+v", p)
	}
}

func TestClassifyLookupError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "not found means create",
			err:  status.Error(codes.NotFound, "collection not found"),
			want: nil,
		},
		{
			name: "permission denied",
			err:  status.Error(codes.PermissionDenied, "forbidden"),
			want: domain.ErrCollectionAccessDenied,
		},
		{
			name: "unauthenticated",
			err:  status.Error(codes.Unauthenticated, "bad api key"),
			want: domain.ErrCollectionAccessDenied,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyLookupError(tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("classifyLookupError = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("other codes stay unclassified", func(t *testing.T) {
		got := classifyLookupError(status.Error(codes.Unavailable, "connection refused"))
		if got == nil {
			t.Fatal("expected error")
		}
		if errors.Is(got, domain.ErrCollectionAccessDenied) {
			t.Errorf("Unavailable should not classify as access denied: %v", got)
		}
	})
}
